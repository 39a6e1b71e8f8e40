package mocks

import (
	"context"
	"sync"

	"github.com/example/cart-store/internal/notification"
)

// MockNotifier records every notification it receives
type MockNotifier struct {
	mu            sync.Mutex
	Notifications []notification.Notification
}

// NewMockNotifier creates a new MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{Notifications: make([]notification.Notification, 0)}
}

// Notify records the notification
func (m *MockNotifier) Notify(_ context.Context, n notification.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = append(m.Notifications, n)
}

// Kinds returns the kinds received, in order
func (m *MockNotifier) Kinds() []notification.Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	kinds := make([]notification.Kind, len(m.Notifications))
	for i, n := range m.Notifications {
		kinds[i] = n.Kind
	}
	return kinds
}

// Reset clears recorded notifications
func (m *MockNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = make([]notification.Notification, 0)
}

// MockPublisher records Publish calls
type MockPublisher struct {
	mu         sync.Mutex
	Calls      []notification.Notification
	PublishErr error
}

// Publish records the notification and returns PublishErr
func (m *MockPublisher) Publish(_ context.Context, n notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, n)
	return m.PublishErr
}
