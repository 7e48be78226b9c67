package history

import (
	"context"
	"sync"
)

type mockRepo struct {
	mu   sync.Mutex
	blob []byte

	GetCalls int
	SetCalls int
}

func NewMockStateRepo() *mockRepo {
	return &mockRepo{}
}

func (m *mockRepo) Get(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.blob == nil {
		return nil, ErrStateNotFound
	}
	return m.blob, nil
}

func (m *mockRepo) Set(_ context.Context, stateJson []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	m.blob = stateJson
	return nil
}

// Seed puts raw content in the mock repo, bypassing Set bookkeeping.
func (m *mockRepo) Seed(blob []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = blob
}
