package tui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Waiting shows msg behind a spinner on w, followed by the time spent so far,
// until the returned stop function is called. It covers the nuget.exe check
// and download that precede the restore table. stop clears the line and is
// safe to call more than once.
func Waiting(w io.Writer, msg string) (stop func()) {
	start := time.Now()
	quit := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		ticker := time.NewTicker(spinner.Dot.FPS)
		defer ticker.Stop()
		frames := spinner.Dot.Frames
		for i := 0; ; i++ {
			select {
			case <-quit:
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r\033[K%s %s %s", frames[i%len(frames)], msg, FormatDuration(time.Since(start)))
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(quit)
			<-exited
			fmt.Fprint(w, "\r\033[K")
		})
	}
}
