//go:build !production

package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/cardtable/doudizhu-server/internal/server/storage"
)

// MockResolver 令牌解析 mock
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, token string) (storage.Identity, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(storage.Identity), args.Error(1)
}

// FakeResolver 基于内存 map 的令牌解析器，不使用 testify
type FakeResolver struct {
	Tokens map[string]storage.Identity
}

func (f *FakeResolver) Resolve(_ context.Context, token string) (storage.Identity, error) {
	id, ok := f.Tokens[token]
	if !ok {
		return storage.Identity{}, storage.ErrTokenNotFound
	}
	return id, nil
}

// FakeRecorder 记录对局结果的 fake
type FakeRecorder struct {
	mu      sync.Mutex
	Results []storage.MatchResult
}

func (f *FakeRecorder) RecordResult(_ context.Context, result storage.MatchResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Results = append(f.Results, result)
	return nil
}

// Recorded 返回已记录结果的快照
func (f *FakeRecorder) Recorded() []storage.MatchResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]storage.MatchResult, len(f.Results))
	copy(out, f.Results)
	return out
}
