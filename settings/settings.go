package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"go.jacobcolvin.com/lootfilter/filter"
)

const appName = "lootfilter"

// Sentinel errors.
var (
	ErrLoad    = errors.New("load settings")
	ErrSave    = errors.New("save settings")
	ErrInvalid = errors.New("invalid setting")
)

// LineEnding selects the newline written by the serializer.
type LineEnding string

// Line endings.
const (
	LF   LineEnding = "lf"
	CRLF LineEnding = "crlf"
)

// Newline returns the newline sequence for e.
func (e LineEnding) Newline() string {
	if e == CRLF {
		return "\r\n"
	}

	return "\n"
}

// IDSource selects how new block IDs are generated.
type IDSource string

// ID sources.
const (
	IDsUUID    IDSource = "uuid"
	IDsCounter IDSource = "counter"
)

// Generator returns a fresh [filter.IDGenerator] for s.
func (s IDSource) Generator() filter.IDGenerator {
	if s == IDsCounter {
		return filter.NewCounter("b")
	}

	return filter.UUIDGenerator{}
}

// LineEndings returns all line ending names.
func LineEndings() []string {
	return []string{string(LF), string(CRLF)}
}

// IDSources returns all ID source names.
func IDSources() []string {
	return []string{string(IDsUUID), string(IDsCounter)}
}

// Settings are the persisted preferences.
type Settings struct {
	// Root is the directory holding filter files.
	Root string `toml:"root"`
	// Extension is the filter file extension, including the dot.
	Extension string `toml:"extension"`
	// LineEnding is used when writing files.
	LineEnding LineEnding `toml:"line_ending"`
	// IDs selects the block ID generator.
	IDs IDSource `toml:"ids"`
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		Root:       filepath.Join(xdg.DataHome, appName, "filters"),
		Extension:  ".filter",
		LineEnding: LF,
		IDs:        IDsUUID,
	}
}

// DefaultPath returns the default settings file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "settings.toml")
}

// Validate checks every field.
func (s Settings) Validate() error {
	if s.Root == "" {
		return fmt.Errorf("%w: root is empty", ErrInvalid)
	}

	if s.Extension == "" {
		return fmt.Errorf("%w: extension is empty", ErrInvalid)
	}

	if !slices.Contains(LineEndings(), string(s.LineEnding)) {
		return fmt.Errorf("%w: line_ending %q, want one of %v", ErrInvalid, s.LineEnding, LineEndings())
	}

	if !slices.Contains(IDSources(), string(s.IDs)) {
		return fmt.Errorf("%w: ids %q, want one of %v", ErrInvalid, s.IDs, IDSources())
	}

	return nil
}

// Load reads settings from path. A missing file yields [Default].
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}

	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	err = toml.Unmarshal(data, &s)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}

	err = s.Validate()
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}

	return s, nil
}

// Save writes s to path, creating parent directories as needed.
func (s Settings) Save(path string) error {
	err := s.Validate()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	return nil
}
