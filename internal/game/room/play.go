package room

import (
	"sort"

	"github.com/cardtable/doudizhu-server/internal/game/card"
	"github.com/cardtable/doudizhu-server/internal/game/rule"
)

// PlayResult 出牌操作的结果
type PlayResult struct {
	Seat       int
	Cards      []card.Card // 按点数从大到小排好，用于展示
	Hand       rule.ParsedHand
	HandSize   int // 出牌者剩余手牌数
	Multiplier int

	GameOver    bool
	WinnerSeat  int
	LandlordWin bool

	NextPlayer   int  // 游戏未结束时有效
	NextCanBeat  bool // 下家是否有牌能压
	NextMustPlay bool
}

// PassResult 不出操作的结果
type PassResult struct {
	Seat       int
	NextPlayer int
	NewRound   bool // 两家连续不出，本轮结束
	PassCount  int

	NextCanBeat  bool
	NextMustPlay bool
}

// Play 处理一次出牌：解析 ID、识别牌型、按压制规则校验，
// 全部通过才变更状态。任何一步失败都原样保留手牌。
func (r *Room) Play(seat int, cardIDs []string) (*PlayResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhasePlaying {
		return nil, ErrWrongPhase
	}
	if seat != r.currentPlayer {
		return nil, ErrNotYourTurn
	}

	// 根据 ID 找牌，不在手里的 ID 直接拒绝
	cards, err := card.FindByIDs(r.hands[seat], cardIDs)
	if err != nil {
		return nil, ErrInvalidCards
	}

	// 解析牌型
	hand, err := rule.ParseHand(cards)
	if err != nil {
		return nil, ErrInvalidCards
	}

	// 非新一轮必须压过上家
	if !r.isNewTrick() && !rule.CanBeat(hand, r.last.hand) {
		return nil, ErrCannotBeat
	}

	// 出牌成功，更新状态
	r.hands[seat] = card.RemoveCards(r.hands[seat], cards)
	r.last = &lastPlay{hand: hand, seat: seat}
	r.passCount = 0

	if hand.Type == rule.Bomb || hand.Type == rule.Rocket {
		r.multiplier *= 2
	}

	// 对出的牌从大到小排序，确保展示顺序一致
	sortedCards := make([]card.Card, len(cards))
	copy(sortedCards, cards)
	sort.Slice(sortedCards, func(i, j int) bool {
		return sortedCards[i].Rank > sortedCards[j].Rank
	})

	result := &PlayResult{
		Seat:       seat,
		Cards:      sortedCards,
		Hand:       hand,
		HandSize:   len(r.hands[seat]),
		Multiplier: r.multiplier,
	}

	// 手牌出完即获胜
	if len(r.hands[seat]) == 0 {
		r.phase = PhaseGameOver
		r.winner = seat
		r.landlordWin = seat == r.landlord
		result.GameOver = true
		result.WinnerSeat = seat
		result.LandlordWin = r.landlordWin
		result.NextPlayer = -1
		return result, nil
	}

	r.currentPlayer = (r.currentPlayer + 1) % 3
	result.NextPlayer = r.currentPlayer
	result.NextCanBeat = rule.CanBeatWithHand(r.hands[r.currentPlayer], hand)
	result.NextMustPlay = false
	return result, nil
}

// Pass 处理一次不出。新一轮必须出牌，不允许不出。
func (r *Room) Pass(seat int) (*PassResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhasePlaying {
		return nil, ErrWrongPhase
	}
	if seat != r.currentPlayer {
		return nil, ErrNotYourTurn
	}
	if r.isNewTrick() {
		return nil, ErrMustPlay
	}

	r.passCount++

	result := &PassResult{
		Seat:      seat,
		PassCount: r.passCount,
	}

	// 两家连续不出，清掉参照牌，本轮由下家重新领出
	if r.passCount >= 2 {
		r.last = nil
		result.NewRound = true
	}

	r.currentPlayer = (r.currentPlayer + 1) % 3
	result.NextPlayer = r.currentPlayer
	if result.NewRound {
		result.NextMustPlay = true
		result.NextCanBeat = true
	} else {
		result.NextCanBeat = rule.CanBeatWithHand(r.hands[r.currentPlayer], r.last.hand)
	}
	return result, nil
}

// Winner 获胜座位与是否地主获胜，仅在 gameOver 阶段有意义
func (r *Room) Winner() (seat int, landlordWin bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.winner, r.landlordWin
}
