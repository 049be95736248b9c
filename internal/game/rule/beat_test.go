package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/doudizhu-server/internal/game/card"
)

func mustParse(t *testing.T, ranks ...card.Rank) ParsedHand {
	t.Helper()
	hand, err := ParseHand(makeCards(ranks...))
	require.NoError(t, err)
	return hand
}

func TestCanBeat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		newHand  []card.Rank
		lastHand []card.Rank
		expected bool
	}{
		{
			name:     "higher single beats lower",
			newHand:  []card.Rank{card.Rank8},
			lastHand: []card.Rank{card.Rank5},
			expected: true,
		},
		{
			name:     "equal single cannot beat",
			newHand:  []card.Rank{card.Rank5},
			lastHand: []card.Rank{card.Rank5},
			expected: false,
		},
		{
			name:     "two beats ace",
			newHand:  []card.Rank{card.Rank2},
			lastHand: []card.Rank{card.RankA},
			expected: true,
		},
		{
			name:     "pair cannot beat single",
			newHand:  []card.Rank{card.Rank8, card.Rank8},
			lastHand: []card.Rank{card.Rank5},
			expected: false,
		},
		{
			name:     "higher pair beats lower pair",
			newHand:  []card.Rank{card.Rank8, card.Rank8},
			lastHand: []card.Rank{card.Rank5, card.Rank5},
			expected: true,
		},
		{
			name:    "longer straight cannot beat shorter",
			newHand: []card.Rank{card.Rank4, card.Rank5, card.Rank6, card.Rank7, card.Rank8, card.Rank9},
			lastHand: []card.Rank{
				card.Rank3, card.Rank4, card.Rank5, card.Rank6, card.Rank7,
			},
			expected: false,
		},
		{
			name:    "higher straight of same length beats",
			newHand: []card.Rank{card.Rank4, card.Rank5, card.Rank6, card.Rank7, card.Rank8},
			lastHand: []card.Rank{
				card.Rank3, card.Rank4, card.Rank5, card.Rank6, card.Rank7,
			},
			expected: true,
		},
		{
			name:     "bomb beats any normal hand",
			newHand:  []card.Rank{card.Rank4, card.Rank4, card.Rank4, card.Rank4},
			lastHand: []card.Rank{card.Rank2, card.Rank2, card.Rank2},
			expected: true,
		},
		{
			name:     "higher bomb beats lower bomb",
			newHand:  []card.Rank{card.Rank9, card.Rank9, card.Rank9, card.Rank9},
			lastHand: []card.Rank{card.Rank4, card.Rank4, card.Rank4, card.Rank4},
			expected: true,
		},
		{
			name:     "lower bomb cannot beat higher bomb",
			newHand:  []card.Rank{card.Rank4, card.Rank4, card.Rank4, card.Rank4},
			lastHand: []card.Rank{card.Rank9, card.Rank9, card.Rank9, card.Rank9},
			expected: false,
		},
		{
			name:     "rocket beats bomb",
			newHand:  []card.Rank{card.RankBlackJoker, card.RankRedJoker},
			lastHand: []card.Rank{card.Rank2, card.Rank2, card.Rank2, card.Rank2},
			expected: true,
		},
		{
			name:     "bomb cannot beat rocket",
			newHand:  []card.Rank{card.Rank2, card.Rank2, card.Rank2, card.Rank2},
			lastHand: []card.Rank{card.RankBlackJoker, card.RankRedJoker},
			expected: false,
		},
		{
			name:     "trio with single compares trio rank",
			newHand:  []card.Rank{card.RankQ, card.RankQ, card.RankQ, card.Rank3},
			lastHand: []card.Rank{card.RankJ, card.RankJ, card.RankJ, card.RankA},
			expected: true,
		},
		{
			name:     "trio with single cannot beat trio with pair",
			newHand:  []card.Rank{card.RankQ, card.RankQ, card.RankQ, card.Rank3},
			lastHand: []card.Rank{card.RankJ, card.RankJ, card.RankJ, card.Rank4, card.Rank4},
			expected: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			newHand := mustParse(t, tt.newHand...)
			lastHand := mustParse(t, tt.lastHand...)
			assert.Equal(t, tt.expected, CanBeat(newHand, lastHand))
		})
	}
}

func TestCanBeatWithHand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hand     []card.Rank
		opponent []card.Rank
		expected bool
	}{
		{
			name:     "has higher single",
			hand:     []card.Rank{card.Rank3, card.RankK},
			opponent: []card.Rank{card.RankQ},
			expected: true,
		},
		{
			name:     "no higher single",
			hand:     []card.Rank{card.Rank3, card.Rank4},
			opponent: []card.Rank{card.Rank2},
			expected: false,
		},
		{
			name:     "bomb saves a losing hand",
			hand:     []card.Rank{card.Rank3, card.Rank5, card.Rank5, card.Rank5, card.Rank5},
			opponent: []card.Rank{card.Rank2},
			expected: true,
		},
		{
			name:     "rocket beats everything",
			hand:     []card.Rank{card.RankBlackJoker, card.RankRedJoker},
			opponent: []card.Rank{card.Rank2, card.Rank2, card.Rank2, card.Rank2},
			expected: true,
		},
		{
			name: "higher pair in trio",
			hand: []card.Rank{card.RankK, card.RankK, card.RankK},
			opponent: []card.Rank{
				card.RankQ, card.RankQ,
			},
			expected: true,
		},
		{
			name: "no straight long enough",
			hand: []card.Rank{card.Rank8, card.Rank9, card.Rank10, card.RankJ},
			opponent: []card.Rank{
				card.Rank3, card.Rank4, card.Rank5, card.Rank6, card.Rank7,
			},
			expected: false,
		},
		{
			name: "higher straight window",
			hand: []card.Rank{
				card.Rank5, card.Rank6, card.Rank7, card.Rank8, card.Rank9, card.RankK,
			},
			opponent: []card.Rank{
				card.Rank3, card.Rank4, card.Rank5, card.Rank6, card.Rank7,
			},
			expected: true,
		},
		{
			name:     "empty reference always playable",
			hand:     []card.Rank{card.Rank3},
			opponent: nil,
			expected: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var opponent ParsedHand
			if tt.opponent != nil {
				opponent = mustParse(t, tt.opponent...)
			}
			assert.Equal(t, tt.expected, CanBeatWithHand(makeCards(tt.hand...), opponent))
		})
	}
}
