package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File keeps all keys in one JSON object on disk. Every Set rewrites the file.
type File struct {
	path string
	data map[string]string
}

// NewFile loads the store at path. A missing file is an empty store.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("file storage requires a path")
	}

	f := &File{
		path: path,
		data: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return f, nil
	}

	if err := json.Unmarshal(data, &f.data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if f.data == nil {
		f.data = make(map[string]string)
	}
	return f, nil
}

// Get implements KV
func (f *File) Get(key string) (string, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

// Set implements KV
func (f *File) Set(key, value string) error {
	prev, had := f.data[key]
	f.data[key] = value
	if err := f.flush(); err != nil {
		// keep memory and disk in agreement
		if had {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

// Delete implements KV
func (f *File) Delete(key string) error {
	if _, ok := f.data[key]; !ok {
		return nil
	}
	delete(f.data, key)
	return f.flush()
}

// Keys implements KV
func (f *File) Keys() ([]string, error) {
	return sortedKeys(f.data), nil
}

func (f *File) flush() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	data, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	// write-then-rename so a crash never leaves a truncated file
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}
