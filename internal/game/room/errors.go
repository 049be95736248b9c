package room

import (
	"github.com/cardtable/doudizhu-server/internal/protocol"
)

// GameError 游戏规则错误，带协议错误码，只发给出错的连接
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrWrongPhase   = &GameError{Code: protocol.ErrCodeGameNotStart, Message: "当前阶段不能执行该操作"}
	ErrNotYourTurn  = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrInvalidCards = &GameError{Code: protocol.ErrCodeInvalidCards, Message: "无效的牌型"}
	ErrCannotBeat   = &GameError{Code: protocol.ErrCodeCannotBeat, Message: "您的牌大不过上家"}
	ErrMustPlay     = &GameError{Code: protocol.ErrCodeMustPlay, Message: "您必须出牌"}
)
