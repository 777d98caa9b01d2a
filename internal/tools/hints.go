package tools

func installHints(tool string) []string {
	switch tool {
	case MSBuild:
		return []string{
			"Install the Visual Studio 2022 Build Tools: winget install Microsoft.VisualStudio.2022.BuildTools",
			"or add its MSBuild/Current/Bin directory to msbuild.candidates in slnbuild.yaml",
		}
	case NuGet:
		return []string{
			"Run `slnbuild tools install nuget` to download nuget.exe into the workspace",
		}
	default:
		return nil
	}
}
