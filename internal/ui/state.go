package ui

import (
	"github.com/cardtable/doudizhu-server/internal/game/card"
	"github.com/cardtable/doudizhu-server/internal/protocol"
	"github.com/cardtable/doudizhu-server/internal/protocol/convert"
)

// GameState 客户端视角的对局状态，由服务端广播逐步更新
type GameState struct {
	RoomID    string
	MyIndex   int
	Names     [3]string
	HandSizes [3]int

	Hand   []card.Card
	Bottom []card.Card // 揭示前为空

	LandlordIndex int // -1 = 未确定
	BidTurn       int
	HighestBid    int

	CurrentTurn  int // -1 = 不在出牌阶段
	LastPlayed   []card.Card
	LastPlayedBy int
	LastHandType string
	Multiplier   int

	// 仅当轮到自己时有意义
	CanBeat  bool
	MustPlay bool

	WinnerIndex int
	LandlordWin bool

	Counter *CardCounter
}

// NewGameState 创建空白对局状态
func NewGameState() *GameState {
	return &GameState{
		LandlordIndex: -1,
		BidTurn:       -1,
		CurrentTurn:   -1,
		LastPlayedBy:  -1,
		WinnerIndex:   -1,
		Multiplier:    1,
		Counter:       NewCardCounter(),
	}
}

// IsLandlord 自己是否是地主
func (s *GameState) IsLandlord() bool {
	return s.LandlordIndex == s.MyIndex
}

// ApplyGameStart 处理发牌
func (s *GameState) ApplyGameStart(p *protocol.GameStartPayload) {
	s.RoomID = p.RoomID
	s.MyIndex = p.MyIndex
	s.Names = p.PlayerNames
	s.HandSizes = p.HandSizes
	s.Hand = convert.InfosToCards(p.MyCards)
	s.Bottom = nil
	s.LandlordIndex = -1
	s.BidTurn = p.FirstBidder
	s.HighestBid = 0
	s.CurrentTurn = -1
	s.LastPlayed = nil
	s.LastPlayedBy = -1
	s.LastHandType = ""
	s.Multiplier = 1
	s.WinnerIndex = -1
	s.Counter.Reset()
	s.Counter.DeductCards(s.Hand)
}

// ApplyRedeal 处理重新发牌
func (s *GameState) ApplyRedeal(p *protocol.RedealPayload) {
	s.Hand = convert.InfosToCards(p.MyCards)
	s.Bottom = nil
	s.HandSizes = p.HandSizes
	s.BidTurn = p.FirstBidder
	s.HighestBid = 0
	s.Counter.Reset()
	s.Counter.DeductCards(s.Hand)
}

// ApplyBidUpdate 处理叫地主进展
func (s *GameState) ApplyBidUpdate(p *protocol.BidUpdatePayload) {
	s.HighestBid = p.HighestBid
	s.BidTurn = p.NextBidder
}

// ApplyBidFinalized 处理地主确定。底牌此刻才揭示；
// 地主本人会收到并入底牌后的完整手牌。
func (s *GameState) ApplyBidFinalized(p *protocol.BidFinalizedPayload) {
	s.LandlordIndex = p.LandlordIndex
	s.Bottom = convert.InfosToCards(p.LandlordCards)
	s.HandSizes = p.HandSizes
	s.BidTurn = -1
	s.CurrentTurn = p.LandlordIndex
	if len(p.MyCards) > 0 {
		s.Hand = convert.InfosToCards(p.MyCards)
	}
	// 底牌已公开，从记牌器里扣掉不属于自己的那份
	if !s.IsLandlord() {
		s.Counter.DeductCards(s.Bottom)
	} else {
		s.Counter.Reset()
		s.Counter.DeductCards(s.Hand)
	}
}

// ApplyPlayUpdate 处理出牌
func (s *GameState) ApplyPlayUpdate(p *protocol.PlayUpdatePayload) {
	played := convert.InfosToCards(p.Cards)
	s.LastPlayed = played
	s.LastPlayedBy = p.PlayerIndex
	s.LastHandType = p.HandType
	s.HandSizes[p.PlayerIndex] = p.HandSize
	s.Multiplier = p.BombMultiplier
	s.CurrentTurn = p.NextPlayer
	s.CanBeat = p.CanBeat
	s.MustPlay = p.MustPlay

	if p.PlayerIndex == s.MyIndex {
		s.Hand = card.RemoveCards(s.Hand, played)
	} else {
		s.Counter.DeductCards(played)
	}
}

// ApplyPassUpdate 处理不出
func (s *GameState) ApplyPassUpdate(p *protocol.PassUpdatePayload) {
	s.CurrentTurn = p.NextPlayer
	s.CanBeat = p.CanBeat
	s.MustPlay = p.MustPlay
	if p.IsNewRound {
		s.LastPlayed = nil
		s.LastPlayedBy = -1
		s.LastHandType = ""
	}
}

// ApplyGameOver 处理游戏结束
func (s *GameState) ApplyGameOver(p *protocol.GameOverPayload) {
	s.WinnerIndex = p.WinnerIndex
	s.LandlordIndex = p.LandlordIndex
	s.LandlordWin = p.IsLandlordWin
	s.Multiplier = p.BombMultiplier
	s.CurrentTurn = -1
}

// CardCounter 记牌器，跟踪自己看不到的牌还剩多少
type CardCounter struct {
	remaining map[card.Rank]int
}

// NewCardCounter 创建记牌器
func NewCardCounter() *CardCounter {
	cc := &CardCounter{remaining: make(map[card.Rank]int)}
	cc.Reset()
	return cc
}

// Reset 重置为一整副牌
func (cc *CardCounter) Reset() {
	for rank := card.Rank3; rank <= card.Rank2; rank++ {
		cc.remaining[rank] = 4
	}
	cc.remaining[card.RankBlackJoker] = 1
	cc.remaining[card.RankRedJoker] = 1
}

// DeductCards 扣掉已经见过的牌
func (cc *CardCounter) DeductCards(cards []card.Card) {
	for _, c := range cards {
		if cc.remaining[c.Rank] > 0 {
			cc.remaining[c.Rank]--
		}
	}
}

// Remaining 返回剩余计数
func (cc *CardCounter) Remaining() map[card.Rank]int {
	return cc.remaining
}
