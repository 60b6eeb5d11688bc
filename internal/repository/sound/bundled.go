package sound

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// BundledName is the file name of the alarm sound shipped inside the binary.
const BundledName = "alarm.wav"

// bundledAlarm is a short 16-bit mono PCM beep pattern.
//
//go:embed assets/alarm.wav
var bundledAlarm []byte

// BundledPath returns where InstallBundled puts the shipped sound.
func (l *FileLibrary) BundledPath() string {
	return filepath.Join(l.dir, BundledName)
}

// InstallBundled writes the shipped alarm sound into the asset directory.
// A file already stored under that name is kept and reported as reused.
func (l *FileLibrary) InstallBundled() (*Asset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	destination := l.BundledPath()

	if err := os.MkdirAll(l.dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("create asset directory: %w", err)
	}

	err := writeAsset(destination, bytes.NewReader(bundledAlarm))
	switch {
	case err == nil:
		return &Asset{Path: destination}, nil
	case errors.Is(err, os.ErrExist):
		return &Asset{Path: destination, Reused: true}, nil
	default:
		return nil, fmt.Errorf("install bundled sound: %w", err)
	}
}
