//go:build !production

package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/cardtable/doudizhu-server/internal/protocol"
)

// MockClient 实现 types.ClientInterface 的 mock
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetUserID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetIdentity(userID, name string) {
	m.Called(userID, name)
}

func (m *MockClient) IsAuthenticated() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Called(msg)
}

func (m *MockClient) Close() {
	m.Called()
}

// SimpleClient 简单的 mock 客户端，不使用 testify（用于不需要断言的测试）。
// 收到的消息按顺序记录，供测试检查广播内容。
type SimpleClient struct {
	ID     string
	UserID string
	Name   string
	Closed bool

	mu       sync.Mutex
	messages []*protocol.Message
}

func (c *SimpleClient) GetID() string     { return c.ID }
func (c *SimpleClient) GetUserID() string { return c.UserID }
func (c *SimpleClient) GetName() string   { return c.Name }

func (c *SimpleClient) SetIdentity(userID, name string) {
	c.UserID = userID
	c.Name = name
}

func (c *SimpleClient) IsAuthenticated() bool { return c.UserID != "" }

func (c *SimpleClient) SendMessage(msg *protocol.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

func (c *SimpleClient) Close() { c.Closed = true }

// Messages 返回已收到消息的快照
func (c *SimpleClient) Messages() []*protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*protocol.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// LastMessage 返回最后一条消息，没有时返回 nil
func (c *SimpleClient) LastMessage() *protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		return nil
	}
	return c.messages[len(c.messages)-1]
}

// MessagesOfType 返回指定类型的所有消息
func (c *SimpleClient) MessagesOfType(msgType protocol.MessageType) []*protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*protocol.Message
	for _, msg := range c.messages {
		if msg.Type == msgType {
			out = append(out, msg)
		}
	}
	return out
}
