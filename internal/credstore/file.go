package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrCorrupt marks a credentials file that exists but is not a JSON object.
var ErrCorrupt = errors.New("corrupt credentials file")

// FileStore keeps values in a JSON object on disk, readable only by the owner.
// A corrupt file fails reads, but writes and clears replace it so a damaged
// file never keeps the user from logging out or in again.
type FileStore struct {
	path string
	mu   sync.Mutex
	log  *logrus.Entry
}

// NewFileStore creates a FileStore at path. The file is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, log: discardEntry()}
}

// WithLogger sets where corrupt-file recoveries are reported.
func (f *FileStore) WithLogger(log *logrus.Logger) *FileStore {
	f.log = log.WithFields(logrus.Fields{"component": "credstore", "path": f.path})
	return f
}

// Path returns the file the store writes to.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if errors.Is(err, ErrCorrupt) {
		f.log.WithError(err).Warn("overwriting corrupt credentials file")
		values, err = map[string]string{}, nil
	}
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *FileStore) Clear(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if errors.Is(err, ErrCorrupt) {
		f.log.WithError(err).Warn("removing corrupt credentials file")
		if rmErr := os.Remove(f.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return &Error{Op: "clear", Message: "failed to remove " + f.path, Cause: rmErr}
		}
		return nil
	}
	if err != nil {
		return err
	}
	changed := false
	for _, k := range keys {
		if _, ok := values[k]; ok {
			delete(values, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return f.write(values)
}

func (f *FileStore) read() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, &Error{Op: "read", Message: f.path, Cause: err}
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, &Error{Op: "read", Message: f.path, Cause: fmt.Errorf("%w: %w", ErrCorrupt, err)}
	}
	return values, nil
}

// write replaces the file atomically via a temp file in the same directory.
func (f *FileStore) write(values map[string]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return &Error{Op: "write", Message: "failed to create directory", Cause: err}
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return &Error{Op: "write", Message: "failed to encode values", Cause: err}
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*.tmp")
	if err != nil {
		return &Error{Op: "write", Message: "failed to create temp file", Cause: err}
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return &Error{Op: "write", Message: "failed to restrict permissions", Cause: err}
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &Error{Op: "write", Message: "failed to write temp file", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &Error{Op: "write", Message: "failed to close temp file", Cause: err}
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return &Error{Op: "write", Message: "failed to replace " + f.path, Cause: err}
	}
	return nil
}

func discardEntry() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}
