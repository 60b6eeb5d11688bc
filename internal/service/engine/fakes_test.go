package engine

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/sound"
)

// testTick keeps the loop fast in tests.
const testTick = 5 * time.Millisecond

// fakeClock returns a settable time, optionally panicking once.
type fakeClock struct {
	mu         sync.Mutex
	now        time.Time
	panicsLeft int
}

// Now returns the configured time.
func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.panicsLeft > 0 {
		c.panicsLeft--
		panic("clock failure")
	}

	return c.now
}

// Set moves the clock.
func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
}

// fakePlayback counts Stop calls.
type fakePlayback struct {
	stops atomic.Int32
}

// Stop records the release.
func (p *fakePlayback) Stop() {
	p.stops.Add(1)
}

// fakePlayer records Play calls and returns playErr or a fakePlayback.
type fakePlayer struct {
	mu         sync.Mutex
	playErr    error
	references []string
	playbacks  []*fakePlayback
}

// Play records the reference.
func (p *fakePlayer) Play(reference string) (sound.Playback, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.references = append(p.references, reference)
	if p.playErr != nil {
		return nil, p.playErr
	}

	playback := new(fakePlayback)
	p.playbacks = append(p.playbacks, playback)

	return playback, nil
}

// Plays returns how many times Play was called.
func (p *fakePlayer) Plays() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.references)
}

// Playback returns the i-th successful playback.
func (p *fakePlayer) Playback(i int) *fakePlayback {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.playbacks[i]
}

// fakeCue counts rings.
type fakeCue struct {
	rings atomic.Int32
}

// Ring records the cue.
func (c *fakeCue) Ring() {
	c.rings.Add(1)
}

// readResult is one scripted ReadLine outcome.
type readResult struct {
	text string
	err  error
}

// scriptedUI records output and serves ReadLine from a channel.
type scriptedUI struct {
	mu       sync.Mutex
	messages []string
	inline   []string
	inputs   chan readResult
}

// newScriptedUI creates a UI whose ReadLine blocks until the test sends input.
func newScriptedUI() *scriptedUI {
	return &scriptedUI{
		inputs: make(chan readResult),
	}
}

// Display records a message.
func (u *scriptedUI) Display(message string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.messages = append(u.messages, message)
}

// DisplayInline records inline text.
func (u *scriptedUI) DisplayInline(text string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.inline = append(u.inline, text)
}

// ReadLine waits for scripted input or cancellation.
func (u *scriptedUI) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-u.inputs:
		return r.text, r.err
	}
}

// InlineCount returns how many clock updates were shown.
func (u *scriptedUI) InlineCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	return len(u.inline)
}

// Shown reports whether any message contains text.
func (u *scriptedUI) Shown(text string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, m := range u.messages {
		if strings.Contains(m, text) {
			return true
		}
	}

	return false
}

// send delivers one ReadLine result or fails the test.
func (u *scriptedUI) send(t *testing.T, r readResult) {
	t.Helper()

	select {
	case u.inputs <- r:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "engine did not ask for input")
	}
}

// runAsync starts Run on its own goroutine.
func runAsync(ctx context.Context, e *Engine) <-chan State {
	done := make(chan State, 1)

	go func() {
		done <- e.Run(ctx)
	}()

	return done
}

// waitResult returns the terminal state or fails the test.
func waitResult(t *testing.T, done <-chan State) State {
	t.Helper()

	select {
	case s := <-done:
		return s
	case <-time.After(2 * time.Second):
		require.FailNow(t, "engine did not stop")

		return Idle
	}
}
