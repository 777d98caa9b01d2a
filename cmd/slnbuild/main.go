package main

import "slnbuild/internal/cli"

func main() {
	cli.Execute()
}
