package sound

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const (
	// defaultSampleRate is the rate the speaker is opened with.
	defaultSampleRate beep.SampleRate = 44100
	// speakerBuffer is the latency of the speaker buffer.
	speakerBuffer = 100 * time.Millisecond
	// resampleQuality trades CPU for fidelity when the asset rate differs.
	resampleQuality = 4
)

var (
	// ErrAssetNotFound is returned when the sound reference does not resolve to a file.
	ErrAssetNotFound = errors.New("audio asset not found")
	// ErrUnsupportedFormat is returned when the asset cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrDeviceUnavailable is returned when no audio output can be claimed.
	ErrDeviceUnavailable = errors.New("audio device unavailable")
)

// Player starts looping playback of a sound asset.
type Player interface {
	Play(reference string) (Playback, error)
}

// Playback is an owned handle to a sound that is playing.
// Stop halts it and releases the device; further calls are no-ops.
type Playback interface {
	Stop()
}

// device abstracts the global beep speaker.
type device interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Clear()
}

// systemSpeaker is the device backed by the real speaker package.
type systemSpeaker struct{}

// Init claims the audio output. The speaker allows a single successful call per process.
func (systemSpeaker) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

// Play starts streaming s.
func (systemSpeaker) Play(s beep.Streamer) {
	speaker.Play(s)
}

// Clear drops every stream from the speaker.
func (systemSpeaker) Clear() {
	speaker.Clear()
}

// SpeakerPlayer plays WAV assets on the system speaker.
type SpeakerPlayer struct {
	// device is the audio output; the real one is process-global.
	device device
	// sampleRate is the device rate; assets in other rates are resampled.
	sampleRate beep.SampleRate
	// ready is set once the device has been claimed.
	ready bool
	// mu serializes device ownership between playbacks.
	mu sync.Mutex
}

// NewSpeakerPlayer creates a player using the system speaker.
func NewSpeakerPlayer() *SpeakerPlayer {
	return &SpeakerPlayer{
		device:     systemSpeaker{},
		sampleRate: defaultSampleRate,
	}
}

// Play opens, decodes and loops the asset until the returned Playback is stopped.
func (p *SpeakerPlayer) Play(reference string) (Playback, error) {
	file, err := os.Open(filepath.Clean(reference))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", reference, ErrAssetNotFound)
		}

		return nil, fmt.Errorf("open %s: %w", reference, err)
	}

	stream, format, err := wav.Decode(file)
	if err != nil {
		_ = file.Close()

		return nil, fmt.Errorf("decode %s: %w: %w", reference, ErrUnsupportedFormat, err)
	}

	looped, err := beep.Loop2(stream)
	if err != nil {
		_ = stream.Close()

		return nil, fmt.Errorf("loop %s: %w", reference, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err = p.claim(); err != nil {
		_ = stream.Close()

		return nil, err
	}

	var output beep.Streamer = looped
	if format.SampleRate != p.sampleRate {
		output = beep.Resample(resampleQuality, format.SampleRate, p.sampleRate, looped)
	}

	p.device.Play(output)

	return &speakerPlayback{
		player: p,
		stream: stream,
	}, nil
}

// claim initializes the device on first use. A failed attempt is retried on the next Play.
func (p *SpeakerPlayer) claim() error {
	if p.ready {
		return nil
	}

	if err := p.device.Init(p.sampleRate, p.sampleRate.N(speakerBuffer)); err != nil {
		return fmt.Errorf("init speaker: %w: %w", ErrDeviceUnavailable, err)
	}

	p.ready = true

	return nil
}

// speakerPlayback releases the stream and the decoder exactly once.
type speakerPlayback struct {
	player *SpeakerPlayer
	stream io.Closer
	once   sync.Once
}

// Stop halts playback immediately, with no fade-out, and closes the asset.
func (s *speakerPlayback) Stop() {
	s.once.Do(func() {
		s.player.mu.Lock()
		defer s.player.mu.Unlock()

		s.player.device.Clear()
		_ = s.stream.Close()
	})
}
