package pushmock

import (
	"context"
	"sync"

	"brickdeals/internal/notify"
)

// MockPushClient records batches and optionally fails selected calls.
// It lives in its own package so that testutil itself does not import
// notify, which would create an import cycle in store's tests
// (store_test -> testutil -> notify -> store).
type MockPushClient struct {
	mu      sync.Mutex
	Batches [][]notify.PushMessage
	FailOn  map[int]error // batch index -> error
}

func (m *MockPushClient) SendBatch(_ context.Context, messages []notify.PushMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := len(m.Batches)
	m.Batches = append(m.Batches, messages)
	if m.FailOn != nil {
		if err, ok := m.FailOn[idx]; ok {
			return err
		}
	}
	return nil
}
