package sound

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/ui"
)

// errNoOutput simulates a missing sound card.
var errNoOutput = errors.New("no output device")

// fakeDevice records speaker calls instead of producing sound.
type fakeDevice struct {
	mu      sync.Mutex
	initErr error
	inits   int
	plays   int
	clears  int
	rate    beep.SampleRate
}

// Init records the sample rate or fails with initErr.
func (d *fakeDevice) Init(sampleRate beep.SampleRate, _ int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.inits++
	d.rate = sampleRate

	return d.initErr
}

// Play records a started stream.
func (d *fakeDevice) Play(beep.Streamer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.plays++
}

// Clear records a release.
func (d *fakeDevice) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.clears++
}

// writeWAV writes a short 16-bit mono PCM file.
func writeWAV(t *testing.T, path string) {
	t.Helper()

	const (
		sampleRate = 8000
		samples    = 800
	)

	var buf bytes.Buffer

	dataSize := uint32(samples * 2)

	buf.WriteString("RIFF")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, 36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")

	fmtChunk := []any{
		uint32(16),             // chunk size
		uint16(1),              // PCM
		uint16(1),              // channels
		uint32(sampleRate),     // sample rate
		uint32(sampleRate * 2), // byte rate
		uint16(2),              // block align
		uint16(16),             // bits per sample
	}
	for _, field := range fmtChunk {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, field))
	}

	buf.WriteString("data")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, dataSize))

	for i := range samples {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, int16((i%40)*500)))
	}

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

// TestSpeakerPlayer_AssetNotFound maps a missing file to ErrAssetNotFound.
func TestSpeakerPlayer_AssetNotFound(t *testing.T) {
	t.Parallel()

	dev := new(fakeDevice)
	player := &SpeakerPlayer{device: dev, sampleRate: defaultSampleRate}

	playback, err := player.Play(filepath.Join(t.TempDir(), "missing.wav"))
	require.ErrorIs(t, err, ErrAssetNotFound)
	require.Nil(t, playback)
	require.Zero(t, dev.inits)
}

// TestSpeakerPlayer_UnsupportedFormat maps decoding failures to ErrUnsupportedFormat.
func TestSpeakerPlayer_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "song.wav")
	require.NoError(t, os.WriteFile(path, []byte("ID3 definitely an mp3"), 0o600))

	dev := new(fakeDevice)
	player := &SpeakerPlayer{device: dev, sampleRate: defaultSampleRate}

	_, err := player.Play(path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	require.Zero(t, dev.inits)
}

// TestSpeakerPlayer_DeviceUnavailable maps speaker init failures to ErrDeviceUnavailable.
func TestSpeakerPlayer_DeviceUnavailable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "beep.wav")
	writeWAV(t, path)

	dev := &fakeDevice{initErr: errNoOutput}
	player := &SpeakerPlayer{device: dev, sampleRate: defaultSampleRate}

	_, err := player.Play(path)
	require.ErrorIs(t, err, ErrDeviceUnavailable)
	require.ErrorIs(t, err, errNoOutput)
	require.Zero(t, dev.plays)

	// A later attempt retries the device.
	dev.initErr = nil

	playback, err := player.Play(path)
	require.NoError(t, err)
	require.Equal(t, 2, dev.inits)

	playback.Stop()
}

// TestSpeakerPlayer_PlayStop starts a loop and releases the device exactly once.
func TestSpeakerPlayer_PlayStop(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "beep.wav")
	writeWAV(t, path)

	dev := new(fakeDevice)
	player := &SpeakerPlayer{device: dev, sampleRate: defaultSampleRate}

	playback, err := player.Play(path)
	require.NoError(t, err)
	require.Equal(t, 1, dev.inits)
	require.Equal(t, 1, dev.plays)
	require.Equal(t, defaultSampleRate, dev.rate)

	playback.Stop()
	playback.Stop()

	require.Equal(t, 1, dev.clears)

	// The device is claimed once per process.
	second, err := player.Play(path)
	require.NoError(t, err)
	second.Stop()

	require.Equal(t, 1, dev.inits)
	require.Equal(t, 2, dev.plays)
	require.Equal(t, 2, dev.clears)
}

// TestTerminalBell_Ring writes a BEL character through the console.
func TestTerminalBell_Ring(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	console := ui.NewConsole(strings.NewReader(""), &out)
	bell := NewTerminalBell(console)

	console.DisplayInline("\r7:29:59 AM")
	bell.Ring()
	console.Display("done")

	require.Equal(t, "\r7:29:59 AM\a\ndone", out.String())
}
