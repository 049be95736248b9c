package room

import (
	"github.com/cardtable/doudizhu-server/internal/game/card"
)

// BidOutcome 一次叫地主操作的结局
type BidOutcome int

const (
	BidContinue  BidOutcome = iota // 轮到下一家叫
	BidFinalized                   // 地主确定，进入出牌阶段
	BidRedeal                      // 三家都不叫，重新发牌
)

// BidResult 叫地主操作的结果，管理器据此广播
type BidResult struct {
	Seat       int
	Bid        bool
	HighestBid int
	Outcome    BidOutcome

	NextBidder    int // Outcome == BidContinue 时有效
	LandlordIndex int // Outcome == BidFinalized 时有效
}

// Bid 处理一次叫地主。抢到 3 分或三家都表过态后结算：
// 有人叫过就确定地主并并入底牌，否则重新发牌。
func (r *Room) Bid(seat int, want bool) (*BidResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseBidding {
		return nil, ErrWrongPhase
	}
	if seat != r.currentBidder {
		return nil, ErrNotYourTurn
	}

	r.bidCount++
	if want {
		r.highestBid++
		r.highestBidder = seat
	}

	result := &BidResult{
		Seat:       seat,
		Bid:        want,
		HighestBid: r.highestBid,
	}

	// 结算条件：抢到封顶分，或三家都已表态
	if (want && r.highestBid >= maxBid) || r.bidCount >= 3 {
		if r.highestBidder >= 0 {
			r.setLandlord(r.highestBidder)
			result.Outcome = BidFinalized
			result.LandlordIndex = r.highestBidder
		} else {
			// 无人叫地主，重新发牌
			r.deal()
			result.Outcome = BidRedeal
		}
		return result, nil
	}

	r.currentBidder = (r.currentBidder + 1) % 3
	result.Outcome = BidContinue
	result.NextBidder = r.currentBidder
	return result, nil
}

// setLandlord 把底牌并入地主手牌并进入出牌阶段，地主先出
func (r *Room) setLandlord(seat int) {
	r.landlord = seat
	r.hands[seat] = append(r.hands[seat], r.bottom...)
	card.Sort(r.hands[seat])

	r.phase = PhasePlaying
	r.currentPlayer = seat
	r.last = nil
	r.passCount = 0
}
