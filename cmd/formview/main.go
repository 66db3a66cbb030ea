package main

import (
	"runtime"

	"github.com/bnema/formview/internal/cli/cmd"
	"github.com/bnema/formview/internal/domain/build"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	// GTK must run on the thread that started the process.
	runtime.LockOSThread()
	enableCrashForensics()

	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})
	cmd.Execute()
}
