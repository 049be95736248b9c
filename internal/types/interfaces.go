package types

import (
	"github.com/cardtable/doudizhu-server/internal/protocol"
)

// ClientInterface 抽象一条已接入的连接。
// 管理器只通过它发消息和读取身份，便于测试时替换。
type ClientInterface interface {
	GetID() string     // 连接 ID，接入时生成
	GetUserID() string // 认证后的用户 ID，未认证为空
	GetName() string   // 认证后的昵称
	SetIdentity(userID, name string)
	IsAuthenticated() bool

	// SendMessage 尽力投递，失败只记录日志，不影响其他连接
	SendMessage(msg *protocol.Message)
	Close()
}
