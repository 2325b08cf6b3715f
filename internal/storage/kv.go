// Package storage provides the string-keyed persistence backends used for
// reader preferences.
package storage

import (
	"fmt"
	"io"
	"sort"
)

// Backend names accepted by Open
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// KV is a string-keyed store that survives process restarts
type KV interface {
	// Get returns the stored value and whether the key exists
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)
}

// Open creates the backend named by kind. path is ignored for memory.
func Open(kind, path string) (KV, error) {
	switch kind {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendFile:
		return NewFile(path)
	case BackendSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

// Close releases the backend if it holds resources
func Close(kv KV) error {
	if c, ok := kv.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Memory is an in-process KV, used for tests and --ephemeral sessions
type Memory struct {
	data map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get implements KV
func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements KV
func (m *Memory) Set(key, value string) error {
	m.data[key] = value
	return nil
}

// Delete implements KV
func (m *Memory) Delete(key string) error {
	delete(m.data, key)
	return nil
}

// Keys implements KV
func (m *Memory) Keys() ([]string, error) {
	return sortedKeys(m.data), nil
}

func sortedKeys(data map[string]string) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
