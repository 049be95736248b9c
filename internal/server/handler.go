package server

import (
	"encoding/json"
	"log"

	"github.com/cardtable/doudizhu-server/internal/protocol"
	"github.com/cardtable/doudizhu-server/internal/protocol/codec"
	"github.com/cardtable/doudizhu-server/internal/types"
)

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// Handler 消息处理器：固定的消息类型集合，未知类型一律拒绝
type Handler struct {
	manager  *Manager
	handlers map[protocol.MessageType]handlerFunc
}

// NewHandler 创建处理器
func NewHandler(manager *Manager) *Handler {
	h := &Handler{manager: manager}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		protocol.MsgAuth:      h.handleAuth,
		protocol.MsgJoin:      func(c types.ClientInterface, _ *protocol.Message) { h.manager.JoinQueue(c) },
		protocol.MsgLeave:     func(c types.ClientInterface, _ *protocol.Message) { h.manager.LeaveQueue(c) },
		protocol.MsgBid:       h.handleBid,
		protocol.MsgPlayCards: h.handlePlayCards,
		protocol.MsgPass:      func(c types.ClientInterface, _ *protocol.Message) { h.manager.HandlePass(c) },
	}
}

// Handle 处理一条入站消息。除认证外的所有操作都要求已认证。
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	handler, ok := h.handlers[msg.Type]
	if !ok {
		log.Printf("⚠️ 未知消息类型: '%s' (连接: %s)", msg.Type, client.GetID())
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if msg.Type != protocol.MsgAuth && !client.IsAuthenticated() {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeNotAuthed))
		return
	}

	handler(client, msg)
}

func (h *Handler) handleAuth(client types.ClientInterface, msg *protocol.Message) {
	var payload protocol.AuthPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	h.manager.Authenticate(client, payload.Token)
}

func (h *Handler) handleBid(client types.ClientInterface, msg *protocol.Message) {
	var payload protocol.BidPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	h.manager.HandleBid(client, payload.Bid)
}

func (h *Handler) handlePlayCards(client types.ClientInterface, msg *protocol.Message) {
	var payload protocol.PlayCardsPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}
	h.manager.HandlePlayCards(client, payload.CardIDs)
}
