package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/sound"
	"github.com/oshokin/alarm-clock/internal/ui"
)

// Messages shown to the user.
const (
	msgClockHeader       = "--- Clock ---\n"
	msgAlarmPrompt       = "\n--- Alarm!! ---\nTo turn off the alarm, enter any key: "
	msgAlarmOff          = "--- Alarm turned off ---"
	msgStopped           = "The alarm clock was stopped."
	msgInterrupted       = "The alarm clock was interrupted."
	msgDismissFailed     = "Something went wrong turning off the alarm."
	msgTickFailed        = "Something went wrong running the alarm clock."
	msgAssetNotFound     = "Could not locate audio file."
	msgUnsupportedFormat = "Audio file is not supported."
	msgDeviceUnavailable = "Unable to access audio file."
	msgPlaybackFailed    = "Something went wrong playing the audio."
)

// DefaultTickInterval is how often the loop checks the time unless WithTickInterval says otherwise.
const DefaultTickInterval = time.Second

// ErrNotArmed is returned by Start while the alarm time is not set.
var ErrNotArmed = errors.New("alarm time is not set")

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// systemClock reads the wall clock.
type systemClock struct{}

// Now returns time.Now.
func (systemClock) Now() time.Time {
	return time.Now()
}

// Option configures the engine.
type Option func(*Engine)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(clock Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithTickInterval sets how often the loop checks the time.
func WithTickInterval(interval time.Duration) Option {
	return func(e *Engine) {
		if interval > 0 {
			e.tick = interval
		}
	}
}

// WithCue sets the redundant alert rung on activation.
func WithCue(cue sound.Cue) Option {
	return func(e *Engine) {
		if cue != nil {
			e.cue = cue
		}
	}
}

// Engine waits for the alarm time, plays the sound and waits for dismissal.
type Engine struct {
	// configuration is replaced as a whole by the update methods.
	configuration atomic.Pointer[alarm.Configuration]
	// running is cleared by Stop or by a dismissal.
	running atomic.Bool
	// triggered is set between activate and dismiss.
	triggered atomic.Bool
	// state is the observable State.
	state atomic.Int32
	// wake interrupts a pending sleep or read after Stop.
	wake chan struct{}

	// playback is owned by the loop goroutine; nil when nothing plays.
	playback sound.Playback

	player sound.Player
	cue    sound.Cue
	ui     ui.UserInterface
	clock  Clock
	tick   time.Duration
}

// New creates an engine with an unset alarm time and the given default sound.
func New(soundReference string, player sound.Player, userInterface ui.UserInterface, opts ...Option) *Engine {
	e := &Engine{
		wake:   make(chan struct{}, 1),
		player: player,
		cue:    noCue{},
		ui:     userInterface,
		clock:  systemClock{},
		tick:   DefaultTickInterval,
	}

	e.configuration.Store(alarm.NewConfiguration(soundReference))

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Configuration returns a copy of the current alarm configuration.
func (e *Engine) Configuration() *alarm.Configuration {
	return e.configuration.Load().Clone()
}

// UpdateTargetTime sets a new alarm time; a running loop sees it on the next tick.
func (e *Engine) UpdateTargetTime(t alarm.TimeOfDay) {
	e.configuration.Store(e.configuration.Load().WithTargetTime(t))
}

// UpdateSound sets a new sound asset for the next activation.
func (e *Engine) UpdateSound(reference string) {
	e.configuration.Store(e.configuration.Load().WithSound(reference))
}

// Start arms the loop. It fails with ErrNotArmed while the alarm time is unset.
func (e *Engine) Start() error {
	if !e.configuration.Load().Armed() {
		return ErrNotArmed
	}

	// Drop a wake left over from a Stop that raced a previous run.
	select {
	case <-e.wake:
	default:
	}

	e.running.Store(true)

	return nil
}

// Stop asks the loop to exit and wakes it. Safe to call from any goroutine.
func (e *Engine) Stop() {
	e.running.Store(false)

	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Running reports whether the loop should keep iterating.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// Triggered reports whether the alarm is ringing.
func (e *Engine) Triggered() bool {
	return e.triggered.Load()
}

// State returns the current phase.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Run executes the tick loop until dismissal, Stop or ctx cancellation
// and returns the terminal state. Start must have succeeded before.
func (e *Engine) Run(ctx context.Context) State {
	ctx = logger.WithName(ctx, "engine")

	loopCtx, cancel := context.WithCancel(ctx)
	watcherDone := make(chan struct{})

	go func() {
		defer close(watcherDone)

		select {
		case <-e.wake:
			cancel()
		case <-loopCtx.Done():
		}
	}()

	// The watcher must be gone before a later run can send a wake.
	defer func() {
		cancel()
		<-watcherDone
	}()

	// Playback must never outlive the loop.
	defer e.dismiss(ctx)

	e.setState(ctx, Waiting)
	e.ui.Display(msgClockHeader)

	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		if !e.running.Load() {
			return e.stopped(ctx)
		}

		select {
		case <-loopCtx.Done():
			return e.canceled(ctx)
		case <-ticker.C:
		}

		if !e.running.Load() {
			return e.stopped(ctx)
		}

		if e.safeTick(loopCtx) {
			return e.setState(ctx, Dismissed)
		}
	}
}

// safeTick runs one iteration and turns a panic into a reported, skipped tick.
func (e *Engine) safeTick(ctx context.Context) (dismissed bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorKV(ctx, "Tick failed", "panic", fmt.Sprint(r))
			e.ui.Display(msgTickFailed)

			dismissed = false
		}
	}()

	return e.tickOnce(ctx)
}

// tickOnce compares the clock with the alarm or waits for dismissal.
// It reports whether the user dismissed the alarm.
func (e *Engine) tickOnce(ctx context.Context) bool {
	now := e.clock.Now()

	if !e.triggered.Load() {
		e.ui.DisplayInline("\r" + alarm.FormatClock(now))

		cfg := e.configuration.Load()
		if cfg.TargetTime.SameMinute(alarm.FromTime(now)) {
			logger.InfoKV(ctx, "Alarm time reached", "target", cfg.TargetDisplay, "now", alarm.FormatClock(now))
			e.activate(ctx, cfg.SoundReference)
		}

		return false
	}

	e.ui.Display(msgAlarmPrompt)

	input, err := e.ui.ReadLine(ctx)
	if err != nil {
		// Cancellation is handled at the next tick boundary.
		if ctx.Err() != nil {
			return false
		}

		logger.WarnKV(ctx, "Dismissal input failed", "error", err)
		e.ui.Display(msgDismissFailed)

		return false
	}

	if input == "" {
		return false
	}

	e.dismiss(ctx)
	e.ui.Display(msgAlarmOff)
	e.running.Store(false)

	return true
}

// activate marks the alarm as triggered, starts the sound and rings the cue.
// A playback failure is reported but never aborts the activation.
func (e *Engine) activate(ctx context.Context, reference string) {
	e.triggered.Store(true)
	e.setState(ctx, Triggered)

	playback, err := e.player.Play(reference)
	if err != nil {
		logger.ErrorKV(ctx, "Playback failed", "sound", reference, "error", err)
		e.ui.Display(playbackMessage(err))
	} else {
		e.playback = playback
	}

	e.cue.Ring()
}

// dismiss clears the trigger and releases playback. Calling it twice is a no-op.
func (e *Engine) dismiss(ctx context.Context) {
	e.triggered.Store(false)

	if e.playback == nil {
		return
	}

	e.playback.Stop()
	e.playback = nil

	logger.Debug(ctx, "Playback released")
}

// stopped reports a Stop request and finishes the run.
func (e *Engine) stopped(ctx context.Context) State {
	e.ui.Display(msgStopped)

	return e.setState(ctx, Stopped)
}

// canceled distinguishes Stop from cancellation of the caller's context.
func (e *Engine) canceled(ctx context.Context) State {
	if ctx.Err() == nil {
		return e.stopped(ctx)
	}

	e.running.Store(false)
	e.ui.Display(msgInterrupted)

	return e.setState(ctx, Stopped)
}

// setState publishes and logs a transition.
func (e *Engine) setState(ctx context.Context, s State) State {
	e.state.Store(int32(s))
	logger.DebugKV(ctx, "Engine state changed", "state", s.String())

	return s
}

// playbackMessage maps playback errors to user-facing messages.
func playbackMessage(err error) string {
	switch {
	case errors.Is(err, sound.ErrAssetNotFound):
		return msgAssetNotFound
	case errors.Is(err, sound.ErrUnsupportedFormat):
		return msgUnsupportedFormat
	case errors.Is(err, sound.ErrDeviceUnavailable):
		return msgDeviceUnavailable
	default:
		return msgPlaybackFailed
	}
}

// noCue is used when no cue is configured.
type noCue struct{}

// Ring does nothing.
func (noCue) Ring() {}
