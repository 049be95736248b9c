package protocol

// 错误码
const (
	ErrCodeUnknown      = 1000
	ErrCodeInvalidMsg   = 1001
	ErrCodeAuthFailed   = 1002 // 令牌无效
	ErrCodeNotAuthed    = 1003 // 未认证就发游戏消息
	ErrCodeReauth       = 1004 // 已认证的连接重复认证
	ErrCodeAlreadyQueue = 2001 // 已在队列中
	ErrCodeAlreadySeat  = 2002 // 已在房间中
	ErrCodeNotInRoom    = 2003
	ErrCodeGameNotStart = 3001
	ErrCodeNotYourTurn  = 3002
	ErrCodeInvalidCards = 3003
	ErrCodeCannotBeat   = 3004
	ErrCodeMustPlay     = 3005
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:      "未知错误",
	ErrCodeInvalidMsg:   "无效的消息格式",
	ErrCodeAuthFailed:   "认证失败",
	ErrCodeNotAuthed:    "请先完成认证",
	ErrCodeReauth:       "连接已绑定身份，不能重复认证",
	ErrCodeAlreadyQueue: "您已在匹配队列中",
	ErrCodeAlreadySeat:  "您已在游戏中",
	ErrCodeNotInRoom:    "您不在房间中",
	ErrCodeGameNotStart: "游戏尚未开始",
	ErrCodeNotYourTurn:  "还没轮到您",
	ErrCodeInvalidCards: "无效的牌型",
	ErrCodeCannotBeat:   "您的牌大不过上家",
	ErrCodeMustPlay:     "您必须出牌",
}
