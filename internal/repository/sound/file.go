package sound

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Library imports sound files into the asset directory.
type Library interface {
	Import(source string) (*Asset, error)
}

// Asset is a sound stored in the library.
type Asset struct {
	// Path is the location inside the asset directory.
	Path string
	// Reused is true when a file with the same name was already present.
	Reused bool
}

// Name returns the file name for display.
func (a *Asset) Name() string {
	return filepath.Base(a.Path)
}

const (
	// wavExtension is the only accepted extension, compared case-insensitively.
	wavExtension = ".wav"
	// dirPermissions is used when the asset directory is created.
	dirPermissions = 0o750
	// filePermissions is used for copied assets.
	filePermissions = 0o600
)

var (
	// ErrNotWAV is returned for files without a .wav extension.
	ErrNotWAV = errors.New("only .wav files are supported")
	// ErrSourceNotFound is returned when the file to import does not exist.
	ErrSourceNotFound = errors.New("source file not found")
)

// FileLibrary stores sounds as files in a directory.
type FileLibrary struct {
	// dir is the asset directory.
	dir string
	// mu serializes imports.
	mu sync.Mutex
}

// NewFileLibrary creates a library rooted at dir.
func NewFileLibrary(dir string) *FileLibrary {
	return &FileLibrary{
		dir: filepath.Clean(dir),
	}
}

// Dir returns the asset directory.
func (l *FileLibrary) Dir() string {
	return l.dir
}

// IsWAV reports whether the path has a .wav extension in any case.
func IsWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), wavExtension)
}

// Import copies source into the asset directory unless a file with the same
// name is already there, in which case the existing asset is returned.
func (l *FileLibrary) Import(source string) (*Asset, error) {
	source = filepath.Clean(strings.TrimSpace(source))
	if !IsWAV(source) {
		return nil, fmt.Errorf("%s: %w", source, ErrNotWAV)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	destination := filepath.Join(l.dir, filepath.Base(source))

	if _, err := os.Stat(destination); err == nil {
		return &Asset{Path: destination, Reused: true}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat asset: %w", err)
	}

	if err := os.MkdirAll(l.dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("create asset directory: %w", err)
	}

	if err := copyFile(source, destination); err != nil {
		return nil, err
	}

	return &Asset{Path: destination}, nil
}

// copyFile copies src to dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", src, ErrSourceNotFound)
		}

		return fmt.Errorf("open source: %w", err)
	}

	defer func() {
		_ = in.Close()
	}()

	return writeAsset(dst, in)
}

// writeAsset creates dst from r, removing a partial dst on failure.
// It fails with os.ErrExist when dst is already present.
func writeAsset(dst string, r io.Reader) (err error) {
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePermissions)
	if err != nil {
		return fmt.Errorf("create asset: %w", err)
	}

	defer func() {
		if closeErr := out.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close asset: %w", closeErr)
		}

		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, r); err != nil {
		return fmt.Errorf("copy asset: %w", err)
	}

	return nil
}
