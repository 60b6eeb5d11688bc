package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning is returned when another alarm clock process is alive.
var ErrAlreadyRunning = errors.New("another alarm clock is already running")

// Guard checks the process table for other instances.
type Guard struct {
	// executable is the process name to look for.
	executable string
	// pid is this process, excluded from the check.
	pid int
	// processes lists the running processes.
	processes func() ([]ps.Process, error)
}

// NewGuard creates a guard for the current executable.
func NewGuard() (*Guard, error) {
	path, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}

	return &Guard{
		executable: filepath.Base(path),
		pid:        os.Getpid(),
		processes:  ps.Processes,
	}, nil
}

// Check fails with ErrAlreadyRunning if another process has the same executable name.
func (g *Guard) Check() error {
	processList, err := g.processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	for _, process := range processList {
		if process.Pid() == g.pid {
			continue
		}

		if !sameExecutable(process.Executable(), g.executable) {
			continue
		}

		return fmt.Errorf("pid %d: %w", process.Pid(), ErrAlreadyRunning)
	}

	return nil
}

// sameExecutable compares names; Linux truncates them to 15 bytes in /proc/<pid>/stat.
func sameExecutable(listed, own string) bool {
	const procCommLen = 15

	if strings.EqualFold(listed, own) {
		return true
	}

	return len(own) > procCommLen && len(listed) == procCommLen && strings.HasPrefix(own, listed)
}
