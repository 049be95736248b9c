package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCardsInHand(t *testing.T) {
	t.Parallel()

	hand := []Card{
		newCard(Spade, Rank3),
		newCard(Heart, Rank3),
		newCard(Club, Rank3),
		newCard(Spade, Rank4),
		newCard(Spade, Rank10),
		newCard(Heart, Rank10),
		newCard(Joker, RankBlackJoker),
		newCard(Joker, RankRedJoker),
	}

	tests := []struct {
		name      string
		input     string
		wantRanks []Rank
		wantErr   bool
	}{
		{
			name:      "trio with single",
			input:     "3334",
			wantRanks: []Rank{Rank3, Rank3, Rank3, Rank4},
		},
		{
			name:      "ten uses two digits",
			input:     "1010",
			wantRanks: []Rank{Rank10, Rank10},
		},
		{
			name:      "rocket keyword",
			input:     "JOKER",
			wantRanks: []Rank{RankBlackJoker, RankRedJoker},
		},
		{
			name:    "not enough cards",
			input:   "44",
			wantErr: true,
		},
		{
			name:    "unknown char",
			input:   "3X",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cards, err := FindCardsInHand(hand, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, cards, len(tt.wantRanks))

			got := make(map[Rank]int)
			for _, c := range cards {
				got[c.Rank]++
			}
			want := make(map[Rank]int)
			for _, r := range tt.wantRanks {
				want[r]++
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestFindCardsInHand_NoRocket(t *testing.T) {
	t.Parallel()

	hand := []Card{newCard(Joker, RankBlackJoker)} // 只有小王
	_, err := FindCardsInHand(hand, "JOKER")
	assert.Error(t, err)
}

func TestIDs(t *testing.T) {
	t.Parallel()

	cards := []Card{newCard(Spade, Rank3), newCard(Heart, RankK)}
	assert.Equal(t, []string{"S3", "HK"}, IDs(cards))
	assert.Empty(t, IDs(nil))
}
