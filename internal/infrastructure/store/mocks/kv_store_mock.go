package mocks

import (
	"context"
	"sync"
)

// MockKeyValueStore is a mock implementation of store.KeyValueStore for testing
type MockKeyValueStore struct {
	mu   sync.RWMutex
	data map[string]string

	// For tracking calls in tests
	GetCalls []string
	SetCalls []SetCall
	GetErr   error
	SetErr   error
}

// SetCall records parameters passed to Set
type SetCall struct {
	Key   string
	Value string
}

// NewMockKeyValueStore creates a new MockKeyValueStore
func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{
		data:     make(map[string]string),
		GetCalls: make([]string, 0),
		SetCalls: make([]SetCall, 0),
	}
}

// Get returns the stored value or GetErr
func (m *MockKeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, key)
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	value, ok := m.data[key]
	return value, ok, nil
}

// Set records the call and stores the value unless SetErr is set
func (m *MockKeyValueStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls = append(m.SetCalls, SetCall{Key: key, Value: value})
	if m.SetErr != nil {
		return m.SetErr
	}
	m.data[key] = value
	return nil
}

// Seed sets a value directly without recording a call
func (m *MockKeyValueStore) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Value returns the stored value for key
func (m *MockKeyValueStore) Value(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	return value, ok
}
