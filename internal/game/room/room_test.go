package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/doudizhu-server/internal/game/card"
)

func testSeats() [3]Seat {
	return [3]Seat{
		{UserID: "u0", Name: "甲"},
		{UserID: "u1", Name: "乙"},
		{UserID: "u2", Name: "丙"},
	}
}

func TestNewRoom_Deal(t *testing.T) {
	t.Parallel()

	r := NewRoom("room-1", testSeats())

	assert.Equal(t, PhaseBidding, r.Phase())
	assert.Equal(t, 0, r.CurrentBidder()) // 座位 0 先叫
	assert.Equal(t, -1, r.Landlord())
	assert.Equal(t, [3]int{17, 17, 17}, r.HandSizes())
	assert.Len(t, r.Bottom(), 3)

	// 三手牌加底牌必须正好是一整副牌
	ids := make(map[string]bool, 54)
	for seat := 0; seat < 3; seat++ {
		for _, c := range r.Hand(seat) {
			assert.False(t, ids[c.ID], "card %s dealt twice", c.ID)
			ids[c.ID] = true
		}
	}
	for _, c := range r.Bottom() {
		assert.False(t, ids[c.ID], "card %s dealt twice", c.ID)
		ids[c.ID] = true
	}
	assert.Len(t, ids, 54)

	// 手牌升序排好
	for seat := 0; seat < 3; seat++ {
		hand := r.Hand(seat)
		for i := 1; i < len(hand); i++ {
			assert.LessOrEqual(t, hand[i-1].Rank, hand[i].Rank)
		}
	}
}

func TestRoom_Bid_AllPass_Redeals(t *testing.T) {
	t.Parallel()

	r := NewRoom("room-1", testSeats())
	oldHand := card.IDs(r.Hand(0))

	res, err := r.Bid(0, false)
	require.NoError(t, err)
	assert.Equal(t, BidContinue, res.Outcome)
	assert.Equal(t, 1, res.NextBidder)

	res, err = r.Bid(1, false)
	require.NoError(t, err)
	assert.Equal(t, BidContinue, res.Outcome)
	assert.Equal(t, 2, res.NextBidder)

	res, err = r.Bid(2, false)
	require.NoError(t, err)
	assert.Equal(t, BidRedeal, res.Outcome)

	// 重新发牌后回到叫地主阶段，座位 0 重新先叫
	assert.Equal(t, PhaseBidding, r.Phase())
	assert.Equal(t, 0, r.CurrentBidder())
	assert.Equal(t, [3]int{17, 17, 17}, r.HandSizes())
	assert.NotEqual(t, oldHand, card.IDs(r.Hand(0)), "redeal should reshuffle")
}

func TestRoom_Bid_SingleBidderWins(t *testing.T) {
	t.Parallel()

	r := NewRoom("room-1", testSeats())

	res, err := r.Bid(0, false)
	require.NoError(t, err)
	assert.Equal(t, BidContinue, res.Outcome)

	res, err = r.Bid(1, true)
	require.NoError(t, err)
	assert.Equal(t, BidContinue, res.Outcome)
	assert.Equal(t, 1, res.HighestBid)

	res, err = r.Bid(2, false)
	require.NoError(t, err)
	assert.Equal(t, BidFinalized, res.Outcome)
	assert.Equal(t, 1, res.LandlordIndex)

	// 地主并入底牌，先出牌
	assert.Equal(t, PhasePlaying, r.Phase())
	assert.Equal(t, 1, r.Landlord())
	assert.Equal(t, [3]int{17, 20, 17}, r.HandSizes())
	assert.Equal(t, 1, r.CurrentPlayer())
}

func TestRoom_Bid_ThreeBidsCapsAtMax(t *testing.T) {
	t.Parallel()

	r := NewRoom("room-1", testSeats())

	res, err := r.Bid(0, true)
	require.NoError(t, err)
	assert.Equal(t, BidContinue, res.Outcome)
	assert.Equal(t, 1, res.HighestBid)

	res, err = r.Bid(1, true)
	require.NoError(t, err)
	assert.Equal(t, BidContinue, res.Outcome)
	assert.Equal(t, 2, res.HighestBid)

	// 第三次叫价到达封顶，立即结算
	res, err = r.Bid(2, true)
	require.NoError(t, err)
	assert.Equal(t, BidFinalized, res.Outcome)
	assert.Equal(t, 3, res.HighestBid)
	assert.Equal(t, 2, res.LandlordIndex)
}

func TestRoom_Bid_Errors(t *testing.T) {
	t.Parallel()

	r := NewRoom("room-1", testSeats())

	// 没轮到的座位
	_, err := r.Bid(1, true)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	// 出牌阶段不能叫地主
	_, err = r.Bid(0, true)
	require.NoError(t, err)
	_, err = r.Bid(1, false)
	require.NoError(t, err)
	_, err = r.Bid(2, false)
	require.NoError(t, err)
	require.Equal(t, PhasePlaying, r.Phase())

	_, err = r.Bid(0, true)
	assert.ErrorIs(t, err, ErrWrongPhase)
}
