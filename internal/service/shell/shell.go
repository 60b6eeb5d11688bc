package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	library "github.com/oshokin/alarm-clock/internal/repository/sound"
	"github.com/oshokin/alarm-clock/internal/service/engine"
	"github.com/oshokin/alarm-clock/internal/ui"
)

// Menu options.
const (
	optionSetTime = iota + 1
	optionSetSong
	optionStart
	optionExit
)

// keepCurrentSong is the answer that skips the song prompt.
const keepCurrentSong = "no"

// Messages shown to the user.
const (
	msgWelcome     = "--- Welcome to the Go Alarm Clock! ---"
	msgGoodbye     = "--- Goodbye ---"
	msgTurnedOff   = "Alarm clock has been turned off. Thank you!"
	msgNotArmed    = "Please make sure to set the alarm time before starting the alarm."
	msgNotInteger  = "Please only use an integer number to represent the options."
	msgInvalidOpt  = "That was not a valid option!"
	msgMenuFailed  = "Something went wrong on the selection menu."
	msgSetTime     = "--- Set the Alarm Time ---"
	msgTimePrompt  = "Enter an alarm time in standard 12-hour format (HH:MM AM/PM, 12:00 AM): "
	msgTimeFormat  = "Please use the correct format for standard time (HH:MM AM/PM, 12:00 AM)."
	msgSetSong     = "--- Set the Alarm Song ---"
	msgSongPrompt  = "Enter the file path for a custom alarm song (.wav audio), or enter no to use the current song: "
	msgOnlyWAV     = "Please only upload .wav files."
	msgClockEnded  = "Clock stopped: %s."
	msgAssetExists = "Audio File already exists at: %s"
	msgAssetSaved  = "File saved successfully to: %s"
	msgSongSet     = "Alarm song set to: %s"
	msgTimeSet     = "Alarm time set for: %s"
	msgSaveError   = "Error saving file: %v"
	menuTemplate   = "\nPlease select one of the following options: " +
		"\n1. Set the alarm time. Current Alarm Time: %s" +
		"\n2. Set the alarm song. Current Alarm Song: %s" +
		"\n3. Start the clock and alarm." +
		"\n4. Stop the clock and exit. " +
		"\nEnter: "
)

// Engine is what the shell needs from the alarm engine.
type Engine interface {
	Configuration() *alarm.Configuration
	UpdateTargetTime(t alarm.TimeOfDay)
	UpdateSound(reference string)
	Start() error
	Stop()
	Run(ctx context.Context) engine.State
}

// Shell drives the menu on the foreground goroutine.
type Shell struct {
	engine  Engine
	ui      ui.UserInterface
	library library.Library
}

// New creates a shell.
func New(alarmEngine Engine, userInterface ui.UserInterface, soundLibrary library.Library) *Shell {
	return &Shell{
		engine:  alarmEngine,
		ui:      userInterface,
		library: soundLibrary,
	}
}

// Loop shows the menu until the user exits, the input ends or ctx is canceled.
func (s *Shell) Loop(ctx context.Context) error {
	ctx = logger.WithName(ctx, "shell")

	s.ui.Display(msgWelcome)

	defer s.ui.Display(msgTurnedOff)

	for {
		s.ui.Display(s.menu())

		input, err := s.ui.ReadLine(ctx)
		if err != nil {
			return s.finish(ctx, err)
		}

		option, err := strconv.Atoi(input)
		if err != nil {
			s.ui.Display(msgNotInteger)

			continue
		}

		done, err := s.handle(ctx, option)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, ui.ErrInput) {
				return s.finish(ctx, err)
			}

			logger.ErrorKV(ctx, "Menu option failed", "option", option, "error", err)
			s.ui.Display(msgMenuFailed)
		}

		if done {
			return nil
		}
	}
}

// handle executes a menu option and reports whether the user chose to exit.
func (s *Shell) handle(ctx context.Context, option int) (bool, error) {
	switch option {
	case optionSetTime:
		return false, s.setTime(ctx)
	case optionSetSong:
		return false, s.setSong(ctx)
	case optionStart:
		return false, s.startClock(ctx)
	case optionExit:
		s.ui.Display(msgGoodbye)
		s.engine.Stop()

		return true, nil
	default:
		s.ui.Display(msgInvalidOpt)

		return false, nil
	}
}

// menu renders the options with the current settings.
func (s *Shell) menu() string {
	cfg := s.engine.Configuration()

	return fmt.Sprintf(menuTemplate, cfg.TargetDisplay, cfg.SoundName())
}

// setTime prompts until a valid 12-hour time is entered.
func (s *Shell) setTime(ctx context.Context) error {
	s.ui.Display(msgSetTime)

	for {
		s.ui.Display(msgTimePrompt)

		input, err := s.ui.ReadLine(ctx)
		if err != nil {
			return err
		}

		if input == "" {
			continue
		}

		target, err := alarm.ParseTimeOfDay(input)
		if err != nil {
			s.ui.Display(msgTimeFormat)

			continue
		}

		s.engine.UpdateTargetTime(target)
		s.ui.Display(fmt.Sprintf(msgTimeSet, target))
		logger.InfoKV(ctx, "Alarm time set", "target", target.String())

		return nil
	}
}

// setSong prompts for a .wav file, imports it and hands it to the engine.
func (s *Shell) setSong(ctx context.Context) error {
	s.ui.Display(msgSetSong)

	for {
		s.ui.Display(msgSongPrompt)

		input, err := s.ui.ReadLine(ctx)
		if err != nil {
			return err
		}

		if strings.EqualFold(input, keepCurrentSong) {
			return nil
		}

		if !library.IsWAV(input) {
			s.ui.Display(msgOnlyWAV)

			continue
		}

		asset, err := s.library.Import(input)
		if err != nil {
			logger.WarnKV(ctx, "Sound import failed", "source", input, "error", err)

			s.ui.Display(fmt.Sprintf(msgSaveError, err))

			continue
		}

		if asset.Reused {
			s.ui.Display(fmt.Sprintf(msgAssetExists, asset.Path))
		}

		s.ui.Display(fmt.Sprintf(msgAssetSaved, asset.Path))
		s.engine.UpdateSound(asset.Path)
		s.ui.Display(fmt.Sprintf(msgSongSet, asset.Name()))
		logger.InfoKV(ctx, "Alarm sound set", "sound", asset.Path, "reused", asset.Reused)

		return nil
	}
}

// startClock runs the engine on its own goroutine and waits for it to finish.
func (s *Shell) startClock(ctx context.Context) error {
	if err := s.engine.Start(); err != nil {
		if errors.Is(err, engine.ErrNotArmed) {
			s.ui.Display(msgNotArmed)

			return nil
		}

		return fmt.Errorf("start engine: %w", err)
	}

	logger.Info(ctx, "Clock started")

	done := make(chan engine.State, 1)

	go func() {
		done <- s.engine.Run(ctx)
	}()

	state := <-done

	logger.InfoKV(ctx, "Clock finished", "state", state.String())
	s.ui.Display(fmt.Sprintf(msgClockEnded, state))

	return ctx.Err()
}

// finish ends the loop on closed input or cancellation; neither is an error for the process.
func (s *Shell) finish(ctx context.Context, cause error) error {
	logger.InfoKV(ctx, "Leaving menu", "reason", cause.Error())
	s.ui.Display(msgGoodbye)
	s.engine.Stop()

	return nil
}
