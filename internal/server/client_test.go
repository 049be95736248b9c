package server

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardtable/doudizhu-server/internal/protocol"
	"github.com/cardtable/doudizhu-server/internal/protocol/codec"
)

// SendMessage 和 Close 都不碰底层连接，可以不建 WebSocket 直接测

func TestClient_SendMessage_AfterClose(t *testing.T) {
	t.Parallel()

	c := NewClient(nil, nil)
	c.Close()

	// 已关闭的连接只是丢弃消息，不能 panic
	assert.NotPanics(t, func() {
		c.SendMessage(codec.NewErrorMessage(protocol.ErrCodeUnknown))
	})
}

func TestClient_Close_Idempotent(t *testing.T) {
	t.Parallel()

	c := NewClient(nil, nil)
	assert.NotPanics(t, func() {
		c.Close()
		c.Close()
	})
}

// TestClient_SendMessage_ConcurrentClose 并发发送时关闭连接，
// 不能出现向已关闭通道写入的 panic
func TestClient_SendMessage_ConcurrentClose(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		c := NewClient(nil, nil)
		msg := codec.NewErrorMessage(protocol.ErrCodeUnknown)

		var wg sync.WaitGroup
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 20; j++ {
					c.SendMessage(msg)
				}
			}()
		}
		c.Close()
		wg.Wait()
	}
}
