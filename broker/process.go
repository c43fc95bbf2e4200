package broker

import (
	"os"
	"os/exec"
	"syscall"
)

// Launcher spawns the kafka server process. An interface so the
// manager can be exercised without forking anything.
type Launcher interface {
	Spawn(bin string, args ...string) (Process, error)
}

// Process is the handle of one supervised os process.
type Process interface {
	Terminate() error
	Wait() error
}

type execLauncher struct{}

func NewExecLauncher() Launcher {
	return execLauncher{}
}

func (execLauncher) Spawn(bin string, args ...string) (Process, error) {
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return &execProcess{cmd: cmd}, nil
}

type execProcess struct {
	cmd *exec.Cmd
}

// Terminate asks kafka to shut down cleanly, same as kafka-server-stop.
func (this *execProcess) Terminate() error {
	return this.cmd.Process.Signal(syscall.SIGTERM)
}

func (this *execProcess) Wait() error {
	return this.cmd.Wait()
}
