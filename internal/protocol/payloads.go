package protocol

// --- 客户端请求 Payloads ---

// AuthPayload 身份认证请求。令牌由外部登录系统签发，
// 本服务只负责把它换成 (用户 ID, 昵称)。
type AuthPayload struct {
	Token string `json:"token"`
}

// BidPayload 叫地主请求
type BidPayload struct {
	Bid bool `json:"bid"` // true = 叫地主, false = 不叫
}

// PlayCardsPayload 出牌请求，按牌的 ID 指定
type PlayCardsPayload struct {
	CardIDs []string `json:"card_ids"`
}

// --- 服务端响应 Payloads ---

// AuthOKPayload 认证成功响应
type AuthOKPayload struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// WaitingPayload 队列位置更新
type WaitingPayload struct {
	Position int `json:"position"` // 从 1 开始
	Total    int `json:"total"`
}

// GameStartPayload 游戏开始通知。
// 底牌在地主确定前对所有人保密，这里只发占位牌。
type GameStartPayload struct {
	RoomID        string     `json:"room_id"`
	MyCards       []CardInfo `json:"my_cards"`
	LandlordCards []CardInfo `json:"landlord_cards"` // 3 张占位，bid_finalized 时揭示
	MyIndex       int        `json:"my_index"`
	PlayerNames   [3]string  `json:"player_names"`
	FirstBidder   int        `json:"first_bidder"`
	HandSizes     [3]int     `json:"hand_sizes"`
}

// BidUpdatePayload 叫地主进展通知
type BidUpdatePayload struct {
	PlayerIndex int    `json:"player_index"`
	Bid         bool   `json:"bid"`
	DisplayText string `json:"display_text"` // "叫地主" / "不叫"
	HighestBid  int    `json:"highest_bid"`
	Done        bool   `json:"done"`        // 叫地主阶段是否结束
	NextBidder  int    `json:"next_bidder"` // Done 时为 -1
}

// BidFinalizedPayload 地主确定通知
type BidFinalizedPayload struct {
	LandlordIndex int        `json:"landlord_index"`
	LandlordCards []CardInfo `json:"landlord_cards"` // 真实底牌，此刻才揭示
	HandSizes     [3]int     `json:"hand_sizes"`
	MyCards       []CardInfo `json:"my_cards,omitempty"` // 仅发给地主：并入底牌后的 20 张
}

// RedealPayload 无人叫地主，重新发牌
type RedealPayload struct {
	MyCards       []CardInfo `json:"my_cards"`
	LandlordCards []CardInfo `json:"landlord_cards"` // 仍是占位牌
	FirstBidder   int        `json:"first_bidder"`
	HandSizes     [3]int     `json:"hand_sizes"`
}

// PlayUpdatePayload 出牌通知
type PlayUpdatePayload struct {
	PlayerIndex    int        `json:"player_index"`
	Cards          []CardInfo `json:"cards"`
	HandType       string     `json:"hand_type"`
	HandSize       int        `json:"hand_size"` // 出牌者剩余手牌数
	NextPlayer     int        `json:"next_player"`
	BombMultiplier int        `json:"bomb_multiplier"`
	CanBeat        bool       `json:"can_beat"`  // 下家是否有牌能压
	MustPlay       bool       `json:"must_play"` // 下家是否必须出牌
}

// PassUpdatePayload 不出通知
type PassUpdatePayload struct {
	PlayerIndex int  `json:"player_index"`
	NextPlayer  int  `json:"next_player"`
	IsNewRound  bool `json:"is_new_round"` // 两家连续不出，新一轮开始
	PassCount   int  `json:"pass_count"`
	CanBeat     bool `json:"can_beat"`
	MustPlay    bool `json:"must_play"`
}

// GameOverPayload 游戏结束通知
type GameOverPayload struct {
	WinnerIndex    int        `json:"winner_index"`
	LandlordIndex  int        `json:"landlord_index"`
	IsLandlordWin  bool       `json:"is_landlord_win"`
	LastCards      []CardInfo `json:"last_cards"`
	LastHandType   string     `json:"last_hand_type"`
	BombMultiplier int        `json:"bomb_multiplier"`
}

// PlayerLeftPayload 玩家离开通知。游戏结束前有人断线即解散房间。
type PlayerLeftPayload struct {
	PlayerIndex int `json:"player_index"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- 通用数据结构 ---

// CardInfo 牌信息
type CardInfo struct {
	Suit  int    `json:"suit"`  // 花色: 0=黑桃, 1=红心, 2=梅花, 3=方块, 4=王
	Rank  int    `json:"rank"`  // 点数: 3-17 (3-2, 小王=16, 大王=17)
	Color int    `json:"color"` // 颜色: 0=黑, 1=红
	ID    string `json:"id"`    // 一副牌内唯一的标识
}
