package instance

import (
	"errors"
	"testing"

	ps "github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"
)

// errNoProc simulates an unreadable process table.
var errNoProc = errors.New("proc not mounted")

// fakeProcess is a minimal ps.Process.
type fakeProcess struct {
	pid  int
	name string
}

// Pid returns the process id.
func (p fakeProcess) Pid() int { return p.pid }

// PPid returns a fixed parent id.
func (p fakeProcess) PPid() int { return 1 }

// Executable returns the process name.
func (p fakeProcess) Executable() string { return p.name }

// newTestGuard builds a guard over a fixed process list.
func newTestGuard(list []ps.Process, err error) *Guard {
	return &Guard{
		executable: "alarm-clock",
		pid:        100,
		processes: func() ([]ps.Process, error) {
			return list, err
		},
	}
}

// TestGuard_Check detects other instances and ignores itself.
func TestGuard_Check(t *testing.T) {
	t.Parallel()

	alone := newTestGuard([]ps.Process{
		fakeProcess{pid: 1, name: "init"},
		fakeProcess{pid: 100, name: "alarm-clock"},
	}, nil)
	require.NoError(t, alone.Check())

	twice := newTestGuard([]ps.Process{
		fakeProcess{pid: 100, name: "alarm-clock"},
		fakeProcess{pid: 200, name: "alarm-clock"},
	}, nil)
	require.ErrorIs(t, twice.Check(), ErrAlreadyRunning)

	broken := newTestGuard(nil, errNoProc)
	require.ErrorIs(t, broken.Check(), errNoProc)
}

// TestSameExecutable handles case and the Linux comm truncation.
func TestSameExecutable(t *testing.T) {
	t.Parallel()

	require.True(t, sameExecutable("alarm-clock", "alarm-clock"))
	require.True(t, sameExecutable("ALARM-CLOCK.EXE", "alarm-clock.exe"))
	require.True(t, sameExecutable("alarm-clock-deb", "alarm-clock-debug"))
	require.False(t, sameExecutable("alarm", "alarm-clock"))
}

// TestNewGuard inspects the real process table.
func TestNewGuard(t *testing.T) {
	t.Parallel()

	guard, err := NewGuard()
	require.NoError(t, err)
	require.NotEmpty(t, guard.executable)

	processList, err := guard.processes()
	require.NoError(t, err)
	require.NotEmpty(t, processList)
}
