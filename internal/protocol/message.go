package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型。游戏子系统与同一条连接上的其他业务共用
// 消息通道，因此所有类型都带 "game:" 前缀作为私有命名空间。
type MessageType string

// Namespace 游戏消息的类型前缀
const Namespace = "game:"

// 客户端 → 服务端 消息类型
const (
	MsgAuth      MessageType = Namespace + "auth"  // 身份认证
	MsgJoin      MessageType = Namespace + "join"  // 加入匹配队列
	MsgLeave     MessageType = Namespace + "leave" // 离开匹配队列
	MsgBid       MessageType = Namespace + "bid"   // 叫地主
	MsgPlayCards MessageType = Namespace + "play"  // 出牌
	MsgPass      MessageType = Namespace + "pass"  // 不出
)

// 服务端 → 客户端 消息类型
const (
	MsgAuthOK       MessageType = Namespace + "auth_ok"       // 认证成功
	MsgWaiting      MessageType = Namespace + "waiting"       // 队列位置更新
	MsgGameStart    MessageType = Namespace + "game_start"    // 游戏开始（发牌）
	MsgBidUpdate    MessageType = Namespace + "bid_update"    // 叫地主进展
	MsgBidFinalized MessageType = Namespace + "bid_finalized" // 地主确定
	MsgRedeal       MessageType = Namespace + "redeal"        // 无人叫地主，重新发牌
	MsgPlayUpdate   MessageType = Namespace + "play_update"   // 有人出牌
	MsgPassUpdate   MessageType = Namespace + "pass_update"   // 有人不出
	MsgGameOver     MessageType = Namespace + "game_over"     // 游戏结束
	MsgPlayerLeft   MessageType = Namespace + "player_left"   // 玩家离开（房间解散）
	MsgError        MessageType = Namespace + "error"         // 错误消息
)

// Encode 将消息编码为 JSON 字节
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode 从 JSON 字节解码消息
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
