package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/doudizhu-server/internal/game/card"
	"github.com/cardtable/doudizhu-server/internal/protocol"
	"github.com/cardtable/doudizhu-server/internal/protocol/convert"
)

// pickCards 从一副新牌里按输入取牌
func pickCards(t *testing.T, input string) []card.Card {
	t.Helper()
	deck := card.NewDeck()
	cards, err := card.FindCardsInHand(deck, input)
	require.NoError(t, err)
	return cards
}

func startPayload(myIndex int, myCards []card.Card) *protocol.GameStartPayload {
	return &protocol.GameStartPayload{
		RoomID:        "room-1",
		MyCards:       convert.CardsToInfos(myCards),
		LandlordCards: convert.HiddenCards(3),
		MyIndex:       myIndex,
		PlayerNames:   [3]string{"甲", "乙", "丙"},
		FirstBidder:   0,
		HandSizes:     [3]int{17, 17, 17},
	}
}

func TestGameState_ApplyGameStart(t *testing.T) {
	t.Parallel()

	s := NewGameState()
	hand := pickCards(t, "334455")
	s.ApplyGameStart(startPayload(1, hand))

	assert.Equal(t, "room-1", s.RoomID)
	assert.Equal(t, 1, s.MyIndex)
	assert.Equal(t, [3]string{"甲", "乙", "丙"}, s.Names)
	assert.Equal(t, 0, s.BidTurn)
	assert.Equal(t, -1, s.LandlordIndex)
	assert.Equal(t, -1, s.CurrentTurn)
	assert.Len(t, s.Hand, 6)
	assert.Empty(t, s.Bottom)
	assert.Equal(t, 1, s.Multiplier)

	// 记牌器扣掉了自己的手牌
	assert.Equal(t, 2, s.Counter.Remaining()[card.Rank3])
	assert.Equal(t, 4, s.Counter.Remaining()[card.RankA])
}

func TestGameState_ApplyBidUpdate(t *testing.T) {
	t.Parallel()

	s := NewGameState()
	s.ApplyGameStart(startPayload(0, pickCards(t, "3")))

	s.ApplyBidUpdate(&protocol.BidUpdatePayload{
		PlayerIndex: 0,
		Bid:         true,
		HighestBid:  1,
		NextBidder:  1,
	})

	assert.Equal(t, 1, s.HighestBid)
	assert.Equal(t, 1, s.BidTurn)
}

func TestGameState_ApplyBidFinalized_Farmer(t *testing.T) {
	t.Parallel()

	s := NewGameState()
	s.ApplyGameStart(startPayload(0, pickCards(t, "334455")))

	bottom := pickCards(t, "66J")
	s.ApplyBidFinalized(&protocol.BidFinalizedPayload{
		LandlordIndex: 2,
		LandlordCards: convert.CardsToInfos(bottom),
		HandSizes:     [3]int{17, 17, 20},
	})

	assert.Equal(t, 2, s.LandlordIndex)
	assert.False(t, s.IsLandlord())
	assert.Equal(t, -1, s.BidTurn)
	assert.Equal(t, 2, s.CurrentTurn) // 地主先出
	assert.Len(t, s.Bottom, 3)
	assert.Len(t, s.Hand, 6) // 农民手牌不变

	// 底牌公开后记牌器也要扣掉
	assert.Equal(t, 2, s.Counter.Remaining()[card.Rank6])
	assert.Equal(t, 3, s.Counter.Remaining()[card.RankJ])
}

func TestGameState_ApplyBidFinalized_Landlord(t *testing.T) {
	t.Parallel()

	s := NewGameState()
	s.ApplyGameStart(startPayload(0, pickCards(t, "334455")))

	bottom := pickCards(t, "66J")
	merged := append(pickCards(t, "334455"), bottom...)
	s.ApplyBidFinalized(&protocol.BidFinalizedPayload{
		LandlordIndex: 0,
		LandlordCards: convert.CardsToInfos(bottom),
		HandSizes:     [3]int{20, 17, 17},
		MyCards:       convert.CardsToInfos(merged),
	})

	assert.True(t, s.IsLandlord())
	assert.Len(t, s.Hand, 9) // 并入底牌后的完整手牌

	// 地主的记牌器按新手牌重算
	assert.Equal(t, 2, s.Counter.Remaining()[card.Rank6])
	assert.Equal(t, 2, s.Counter.Remaining()[card.Rank3])
}

func TestGameState_ApplyPlayUpdate_OwnPlay(t *testing.T) {
	t.Parallel()

	s := NewGameState()
	s.ApplyGameStart(startPayload(0, pickCards(t, "334455")))

	played, err := card.FindCardsInHand(s.Hand, "33")
	require.NoError(t, err)
	require.Len(t, played, 2)

	before := s.Counter.Remaining()[card.Rank3]
	s.ApplyPlayUpdate(&protocol.PlayUpdatePayload{
		PlayerIndex:    0,
		Cards:          convert.CardsToInfos(played),
		HandType:       "对子",
		HandSize:       4,
		NextPlayer:     1,
		BombMultiplier: 1,
	})

	assert.Len(t, s.Hand, 4) // 自己的出牌从手里扣除
	assert.Equal(t, 4, s.HandSizes[0])
	assert.Equal(t, 1, s.CurrentTurn)
	assert.Equal(t, "对子", s.LastHandType)
	// 自己的牌开局就扣过了，不能重复扣
	assert.Equal(t, before, s.Counter.Remaining()[card.Rank3])
}

func TestGameState_ApplyPlayUpdate_OpponentPlay(t *testing.T) {
	t.Parallel()

	s := NewGameState()
	s.ApplyGameStart(startPayload(0, pickCards(t, "334455")))

	played := pickCards(t, "KK")
	s.ApplyPlayUpdate(&protocol.PlayUpdatePayload{
		PlayerIndex:    1,
		Cards:          convert.CardsToInfos(played),
		HandType:       "对子",
		HandSize:       15,
		NextPlayer:     2,
		BombMultiplier: 1,
	})

	assert.Len(t, s.Hand, 6) // 自己的手牌不动
	assert.Equal(t, 15, s.HandSizes[1])
	assert.Equal(t, played, s.LastPlayed)
	assert.Equal(t, 1, s.LastPlayedBy)
	// 别人出的牌进记牌器
	assert.Equal(t, 2, s.Counter.Remaining()[card.RankK])
}

func TestGameState_ApplyPassUpdate(t *testing.T) {
	t.Parallel()

	s := NewGameState()
	s.ApplyGameStart(startPayload(0, pickCards(t, "334455")))
	s.LastPlayed = pickCards(t, "KK")
	s.LastPlayedBy = 1

	s.ApplyPassUpdate(&protocol.PassUpdatePayload{
		PlayerIndex: 2,
		NextPlayer:  0,
		PassCount:   1,
		CanBeat:     false,
	})
	assert.Equal(t, 0, s.CurrentTurn)
	assert.NotEmpty(t, s.LastPlayed) // 一家不出，参照牌还在

	s.ApplyPassUpdate(&protocol.PassUpdatePayload{
		PlayerIndex: 0,
		NextPlayer:  1,
		IsNewRound:  true,
		PassCount:   2,
		MustPlay:    true,
	})
	assert.Empty(t, s.LastPlayed) // 两家不出，新一轮
	assert.Equal(t, -1, s.LastPlayedBy)
	assert.True(t, s.MustPlay)
}

func TestGameState_ApplyGameOver(t *testing.T) {
	t.Parallel()

	s := NewGameState()
	s.ApplyGameStart(startPayload(0, pickCards(t, "3")))

	s.ApplyGameOver(&protocol.GameOverPayload{
		WinnerIndex:    2,
		LandlordIndex:  2,
		IsLandlordWin:  true,
		BombMultiplier: 4,
	})

	assert.Equal(t, 2, s.WinnerIndex)
	assert.True(t, s.LandlordWin)
	assert.Equal(t, 4, s.Multiplier)
	assert.Equal(t, -1, s.CurrentTurn)
}

func TestCardCounter(t *testing.T) {
	t.Parallel()

	cc := NewCardCounter()
	assert.Equal(t, 4, cc.Remaining()[card.Rank3])
	assert.Equal(t, 1, cc.Remaining()[card.RankBlackJoker])
	assert.Equal(t, 1, cc.Remaining()[card.RankRedJoker])

	cc.DeductCards(pickCards(t, "33"))
	cc.DeductCards(pickCards(t, "JOKER"))
	assert.Equal(t, 2, cc.Remaining()[card.Rank3])
	assert.Equal(t, 0, cc.Remaining()[card.RankBlackJoker])
	assert.Equal(t, 0, cc.Remaining()[card.RankRedJoker])

	// 计数不会变成负数
	cc.DeductCards(pickCards(t, "JOKER"))
	assert.Equal(t, 0, cc.Remaining()[card.RankBlackJoker])

	cc.Reset()
	assert.Equal(t, 4, cc.Remaining()[card.Rank3])
	assert.Equal(t, 1, cc.Remaining()[card.RankRedJoker])
}
