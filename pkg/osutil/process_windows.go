//go:build windows

package osutil

import (
	"os"
	"os/exec"
)

// SetProcessGroup configures the command to run in its own process group.
// On Windows this is a no-op; there is no Setpgid equivalent for
// foreground processes.
func SetProcessGroup(_ *exec.Cmd) {
}

// SetProcessGroupKill sets up a cancel function that terminates the
// process. Only the main process is killed; Windows has no Unix-style
// process groups, so children may continue running.
func SetProcessGroupKill(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Kill)
	}
}
