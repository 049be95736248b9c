package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	require.Len(t, deck, 54)

	// Every ID must be unique
	ids := make(map[string]bool, 54)
	for _, c := range deck {
		assert.False(t, ids[c.ID], "duplicate ID %s", c.ID)
		ids[c.ID] = true
	}

	// 13 ranks x 4 suits + 2 jokers
	rankCounts := make(map[Rank]int)
	for _, c := range deck {
		rankCounts[c.Rank]++
	}
	for r := Rank3; r <= Rank2; r++ {
		assert.Equal(t, 4, rankCounts[r], "rank %s", r)
	}
	assert.Equal(t, 1, rankCounts[RankBlackJoker])
	assert.Equal(t, 1, rankCounts[RankRedJoker])
}

func TestNewDeck_Colors(t *testing.T) {
	t.Parallel()

	for _, c := range NewDeck() {
		switch c.Suit {
		case Heart, Diamond:
			assert.Equal(t, Red, c.Color, "card %s", c.ID)
		case Spade, Club:
			assert.Equal(t, Black, c.Color, "card %s", c.ID)
		}
	}

	deck := NewDeck()
	assert.Equal(t, Black, deck[52].Color) // 小王
	assert.Equal(t, Red, deck[53].Color)   // 大王
}

func TestDeck_Shuffle(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	deck.Shuffle()

	// Shuffling must not add or lose cards
	require.Len(t, deck, 54)
	ids := make(map[string]bool, 54)
	for _, c := range deck {
		ids[c.ID] = true
	}
	assert.Len(t, ids, 54)
}

func TestCard_Value(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rank     Rank
		expected int
	}{
		{Rank3, 3},
		{Rank10, 10},
		{RankJ, 11},
		{RankA, 14},
		{Rank2, 15},
		{RankBlackJoker, 16},
		{RankRedJoker, 17},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Card{Rank: tt.rank}.Value())
	}
}

func TestSort(t *testing.T) {
	t.Parallel()

	cards := []Card{
		{Rank: RankRedJoker, Suit: Joker},
		{Rank: Rank3, Suit: Heart},
		{Rank: Rank2, Suit: Spade},
		{Rank: Rank3, Suit: Spade},
		{Rank: RankK, Suit: Diamond},
	}
	Sort(cards)

	assert.Equal(t, Rank3, cards[0].Rank)
	assert.Equal(t, Spade, cards[0].Suit) // 同点数按花色
	assert.Equal(t, Rank3, cards[1].Rank)
	assert.Equal(t, Heart, cards[1].Suit)
	assert.Equal(t, RankK, cards[2].Rank)
	assert.Equal(t, Rank2, cards[3].Rank)
	assert.Equal(t, RankRedJoker, cards[4].Rank)
}

func TestFindByIDs(t *testing.T) {
	t.Parallel()

	hand := []Card{
		newCard(Spade, Rank3),
		newCard(Heart, Rank3),
		newCard(Spade, Rank10),
		newCard(Joker, RankRedJoker),
	}

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		cards, err := FindByIDs(hand, []string{"S3", "H3"})
		require.NoError(t, err)
		require.Len(t, cards, 2)
		assert.Equal(t, "S3", cards[0].ID)
		assert.Equal(t, "H3", cards[1].ID)
	})

	t.Run("joker id", func(t *testing.T) {
		t.Parallel()
		cards, err := FindByIDs(hand, []string{"RJ"})
		require.NoError(t, err)
		assert.Equal(t, RankRedJoker, cards[0].Rank)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		_, err := FindByIDs(hand, []string{"D9"})
		assert.Error(t, err)
	})

	t.Run("duplicate id", func(t *testing.T) {
		t.Parallel()
		_, err := FindByIDs(hand, []string{"S3", "S3"})
		assert.Error(t, err)
	})

	t.Run("empty ids", func(t *testing.T) {
		t.Parallel()
		_, err := FindByIDs(hand, nil)
		assert.Error(t, err)
	})
}

func TestRemoveCards(t *testing.T) {
	t.Parallel()

	hand := []Card{
		newCard(Spade, Rank3),
		newCard(Heart, Rank3),
		newCard(Spade, Rank10),
	}

	rest := RemoveCards(hand, []Card{newCard(Heart, Rank3)})
	require.Len(t, rest, 2)
	assert.Equal(t, "S3", rest[0].ID)
	assert.Equal(t, "S10", rest[1].ID)

	// 原手牌不受影响
	assert.Len(t, hand, 3)
}
