package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/doudizhu-server/internal/game/card"
)

// makeCards builds cards from ranks, assigning suits round-robin so the
// same rank never repeats a suit within one hand.
func makeCards(ranks ...card.Rank) []card.Card {
	suits := []card.Suit{card.Spade, card.Heart, card.Club, card.Diamond}
	seen := make(map[card.Rank]int)
	cards := make([]card.Card, 0, len(ranks))
	for _, r := range ranks {
		suit := suits[seen[r]%4]
		if r == card.RankBlackJoker || r == card.RankRedJoker {
			suit = card.Joker
		}
		seen[r]++
		cards = append(cards, card.Card{Suit: suit, Rank: r})
	}
	return cards
}

func TestParseHand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    []card.Card
		wantType HandType
		wantKey  card.Rank
		wantLen  int
	}{
		{
			name:     "single",
			cards:    makeCards(card.Rank7),
			wantType: Single,
			wantKey:  card.Rank7,
			wantLen:  1,
		},
		{
			name:     "pair",
			cards:    makeCards(card.RankK, card.RankK),
			wantType: Pair,
			wantKey:  card.RankK,
			wantLen:  2,
		},
		{
			name:     "trio",
			cards:    makeCards(card.Rank9, card.Rank9, card.Rank9),
			wantType: Trio,
			wantKey:  card.Rank9,
			wantLen:  3,
		},
		{
			name:     "trio with single",
			cards:    makeCards(card.Rank9, card.Rank9, card.Rank9, card.Rank3),
			wantType: TrioWithSingle,
			wantKey:  card.Rank9,
			wantLen:  4,
		},
		{
			name:     "trio with pair",
			cards:    makeCards(card.Rank9, card.Rank9, card.Rank9, card.Rank4, card.Rank4),
			wantType: TrioWithPair,
			wantKey:  card.Rank9,
			wantLen:  5,
		},
		{
			name:     "straight 3 to 7",
			cards:    makeCards(card.Rank3, card.Rank4, card.Rank5, card.Rank6, card.Rank7),
			wantType: Straight,
			wantKey:  card.Rank7,
			wantLen:  5,
		},
		{
			name: "straight 10 to A",
			cards: makeCards(card.Rank10, card.RankJ, card.RankQ,
				card.RankK, card.RankA),
			wantType: Straight,
			wantKey:  card.RankA,
			wantLen:  5,
		},
		{
			name: "pair straight",
			cards: makeCards(card.Rank5, card.Rank5, card.Rank6, card.Rank6,
				card.Rank7, card.Rank7),
			wantType: PairStraight,
			wantKey:  card.Rank7,
			wantLen:  6,
		},
		{
			name: "plane",
			cards: makeCards(card.Rank8, card.Rank8, card.Rank8,
				card.Rank9, card.Rank9, card.Rank9),
			wantType: Plane,
			wantKey:  card.Rank9,
			wantLen:  6,
		},
		{
			name: "plane with singles",
			cards: makeCards(card.Rank8, card.Rank8, card.Rank8,
				card.Rank9, card.Rank9, card.Rank9,
				card.Rank3, card.Rank5),
			wantType: PlaneWithSingles,
			wantKey:  card.Rank9,
			wantLen:  8,
		},
		{
			name: "plane with pairs",
			cards: makeCards(card.Rank8, card.Rank8, card.Rank8,
				card.Rank9, card.Rank9, card.Rank9,
				card.Rank3, card.Rank3, card.Rank5, card.Rank5),
			wantType: PlaneWithPairs,
			wantKey:  card.Rank9,
			wantLen:  10,
		},
		{
			name:     "bomb of twos",
			cards:    makeCards(card.Rank2, card.Rank2, card.Rank2, card.Rank2),
			wantType: Bomb,
			wantKey:  card.Rank2,
			wantLen:  4,
		},
		{
			name: "four with two singles",
			cards: makeCards(card.Rank6, card.Rank6, card.Rank6, card.Rank6,
				card.Rank3, card.Rank9),
			wantType: FourWithTwo,
			wantKey:  card.Rank6,
			wantLen:  6,
		},
		{
			name: "four with one pair counts as four with two",
			cards: makeCards(card.Rank6, card.Rank6, card.Rank6, card.Rank6,
				card.Rank3, card.Rank3),
			wantType: FourWithTwo,
			wantKey:  card.Rank6,
			wantLen:  6,
		},
		{
			name: "four with two pairs",
			cards: makeCards(card.Rank6, card.Rank6, card.Rank6, card.Rank6,
				card.Rank3, card.Rank3, card.Rank9, card.Rank9),
			wantType: FourWithTwoPairs,
			wantKey:  card.Rank6,
			wantLen:  8,
		},
		{
			name:     "rocket",
			cards:    makeCards(card.RankBlackJoker, card.RankRedJoker),
			wantType: Rocket,
			wantKey:  card.RankRedJoker,
			wantLen:  2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hand, err := ParseHand(tt.cards)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, hand.Type)
			assert.Equal(t, tt.wantKey, hand.KeyRank)
			assert.Equal(t, tt.wantLen, hand.Length)
		})
	}
}

func TestParseHand_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cards []card.Card
	}{
		{
			name:  "empty",
			cards: nil,
		},
		{
			name:  "two different singles",
			cards: makeCards(card.Rank3, card.Rank5),
		},
		{
			name:  "straight too short",
			cards: makeCards(card.Rank3, card.Rank4, card.Rank5, card.Rank6),
		},
		{
			name: "straight across two",
			cards: makeCards(card.RankJ, card.RankQ, card.RankK,
				card.RankA, card.Rank2),
		},
		{
			name:  "pair straight too short",
			cards: makeCards(card.Rank5, card.Rank5, card.Rank6, card.Rank6),
		},
		{
			name: "pair straight with two",
			cards: makeCards(card.RankA, card.RankA, card.Rank2, card.Rank2,
				card.RankK, card.RankK),
		},
		{
			name: "plane not continuous",
			cards: makeCards(card.Rank5, card.Rank5, card.Rank5,
				card.Rank9, card.Rank9, card.Rank9),
		},
		{
			name:  "two jokers plus card",
			cards: makeCards(card.RankBlackJoker, card.RankRedJoker, card.Rank3),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseHand(tt.cards)
			assert.Error(t, err)
		})
	}
}
