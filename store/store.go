package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExtension is the extension of filter files.
const DefaultExtension = ".filter"

// Sentinel errors.
var (
	ErrReadFile    = errors.New("read file")
	ErrWriteFile   = errors.New("write file")
	ErrExists      = errors.New("already exists")
	ErrNotExist    = errors.New("does not exist")
	ErrInvalidPath = errors.New("invalid path")
)

// Store reads and writes filter files under a root directory.
type Store struct {
	logger *slog.Logger
	root   string
	ext    string
}

// Option configures a [Store].
type Option func(*Store)

// WithExtension sets the extension [Store.Scan] looks for. A missing leading
// dot is added.
func WithExtension(ext string) Option {
	return func(s *Store) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		s.ext = ext
	}
}

// WithLogger sets the logger for file operations.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// New creates a [Store] rooted at root.
func New(root string, opts ...Option) *Store {
	s := &Store{
		root: filepath.Clean(root),
		ext:  DefaultExtension,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Root returns the root directory.
func (s *Store) Root() string {
	return s.root
}

// Extension returns the extension [Store.Scan] looks for.
func (s *Store) Extension() string {
	return s.ext
}

// Scan returns the names of all files under the root with the configured
// extension, sorted.
func (s *Store) Scan() ([]string, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: root %s: %w", ErrNotExist, s.root, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: root %s is not a directory", ErrInvalidPath, s.root)
	}

	pattern := "**/*" + s.ext

	var names []string

	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)

		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return err
		}

		if ok {
			names = append(names, rel)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scanning %s: %w", ErrReadFile, s.root, err)
	}

	slices.Sort(names)

	s.logger.Debug("scanned filters",
		slog.String("root", s.root),
		slog.Int("count", len(names)),
	)

	return names, nil
}

// Read returns the content of name.
func (s *Store) Read(name string) (string, error) {
	path, err := s.path(name)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadFile, err)
	}

	s.logger.Debug("read filter", slog.String("name", name), slog.Int("bytes", len(data)))

	return string(data), nil
}

// Write replaces the content of name, creating parent directories as needed.
func (s *Store) Write(name, text string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	err = os.WriteFile(path, []byte(text), 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	s.logger.Debug("wrote filter", slog.String("name", name), slog.Int("bytes", len(text)))

	return nil
}

// Exists reports whether name exists.
func (s *Store) Exists(name string) (bool, error) {
	path, err := s.path(name)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrReadFile, err)
	}

	return true, nil
}

// Rename moves oldName to newName. It refuses to replace an existing file.
func (s *Store) Rename(oldName, newName string) error {
	oldPath, err := s.path(oldName)
	if err != nil {
		return err
	}

	newPath, err := s.path(newName)
	if err != nil {
		return err
	}

	exists, err := s.Exists(newName)
	if err != nil {
		return err
	}

	if exists {
		return fmt.Errorf("%w: %s", ErrExists, newName)
	}

	err = os.Rename(oldPath, newPath)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotExist, oldName)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	s.logger.Debug("renamed filter", slog.String("from", oldName), slog.String("to", newName))

	return nil
}

// Remove deletes the file name.
func (s *Store) Remove(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotExist, name)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	s.logger.Debug("removed filter", slog.String("name", name))

	return nil
}

// CreateFolder creates the directory name and any missing parents.
func (s *Store) CreateFolder(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	err = os.MkdirAll(path, 0o755)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	s.logger.Debug("created folder", slog.String("name", name))

	return nil
}

// RemoveFolder deletes the directory name and everything in it.
func (s *Store) RemoveFolder(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	exists, err := s.Exists(name)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("%w: %s", ErrNotExist, name)
	}

	err = os.RemoveAll(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	s.logger.Debug("removed folder", slog.String("name", name))

	return nil
}

// CopyFile copies the file at src, which may live anywhere, to destName
// under the root. It is used to bundle custom alert sounds with a filter.
func (s *Store) CopyFile(src, destName string) error {
	dest, err := s.path(destName)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	defer in.Close()

	err = os.MkdirAll(filepath.Dir(dest), 0o755)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	_, err = io.Copy(out, in)
	if err != nil {
		_ = out.Close()

		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	err = out.Close()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	s.logger.Debug("copied file", slog.String("src", src), slog.String("dest", destName))

	return nil
}

// path resolves name below the root. The root itself is not a valid name.
func (s *Store) path(name string) (string, error) {
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) || filepath.Clean(local) == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}

	return filepath.Join(s.root, local), nil
}
