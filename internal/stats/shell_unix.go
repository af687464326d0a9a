//go:build unix

package stats

import (
	"os/exec"
	"syscall"
)

// killGroup runs cmd in its own process group and kills the group on cancellation,
// so children of the shell holding stdout do not outlive it.
func killGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
