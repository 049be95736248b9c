package card

import (
	"fmt"
	"math/rand"
	"slices"
	"strconv"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

// CardColor 定义牌的颜色
type CardColor int

const (
	Black CardColor = iota
	Red
)

const (
	Spade   Suit = iota // 黑桃
	Heart               // 红心
	Club                // 梅花
	Diamond             // 方块
	Joker               // 王牌
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Heart:   "♥",
	Club:    "♣",
	Diamond: "♦",
	Joker:   "",
}

// suitLetters 花色字母，用于构造牌的唯一 ID
var suitLetters = map[Suit]string{
	Spade:   "S",
	Heart:   "H",
	Club:    "C",
	Diamond: "D",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

const (
	Rank3 Rank = iota + 3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
	RankA // Ace
	Rank2
	RankBlackJoker // 小王
	RankRedJoker   // 大王
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	Rank3:          "3",
	Rank4:          "4",
	Rank5:          "5",
	Rank6:          "6",
	Rank7:          "7",
	Rank8:          "8",
	Rank9:          "9",
	Rank10:         "10",
	RankJ:          "J",
	RankQ:          "Q",
	RankK:          "K",
	RankA:          "A",
	Rank2:          "2",
	RankBlackJoker: "B",
	RankRedJoker:   "R",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// charToRank 用于快速查找字符对应的 Rank
var charToRank = map[rune]Rank{
	'3': Rank3,
	'4': Rank4,
	'5': Rank5,
	'6': Rank6,
	'7': Rank7,
	'8': Rank8,
	'9': Rank9,
	'T': Rank10,
	'J': RankJ,
	'Q': RankQ,
	'K': RankK,
	'A': RankA,
	'2': Rank2,
	'B': RankBlackJoker,
	'R': RankRedJoker,
}

func RankFromChar(char rune) (Rank, error) {
	if rank, ok := charToRank[char]; ok {
		return rank, nil
	}
	return -1, fmt.Errorf("无法识别的点数: %c", char)
}

// Card 定义一张牌。ID 在一副 54 张牌内唯一且稳定，
// 客户端出牌时通过 ID 指定具体的牌。
type Card struct {
	Suit  Suit
	Rank  Rank
	Color CardColor
	ID    string
}

// Value 返回比较值，3-17，小王 16，大王 17。
func (c Card) Value() int {
	return int(c.Rank)
}

func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

func newCard(s Suit, r Rank) Card {
	color := Black
	if s == Heart || s == Diamond {
		color = Red
	}
	id := suitLetters[s] + r.String()
	switch r {
	case RankBlackJoker:
		id, color = "BJ", Black
	case RankRedJoker:
		id, color = "RJ", Red
	}
	return Card{Suit: s, Rank: r, Color: color, ID: id}
}

// Deck 定义一副牌
type Deck []Card

// NewDeck 按固定顺序构造一副 54 张的牌：
// 依次为每种花色的 3-2，最后是大小王。
func NewDeck() Deck {
	deck := make(Deck, 0, 54)
	for s := Spade; s <= Diamond; s++ {
		for r := Rank3; r <= Rank2; r++ {
			deck = append(deck, newCard(s, r))
		}
	}
	deck = append(deck, newCard(Joker, RankBlackJoker), newCard(Joker, RankRedJoker))
	return deck
}

// Shuffle 原地洗牌。公平性依赖均匀的随机源，
// 休闲游戏不要求密码学级别的不可预测性。
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Sort 按比较值升序排序，同点数按花色排序。仅用于展示。
func Sort(cards []Card) {
	slices.SortFunc(cards, func(a, b Card) int {
		if a.Rank != b.Rank {
			return int(a.Rank) - int(b.Rank)
		}
		return int(a.Suit) - int(b.Suit)
	})
}

// FindByIDs 根据 ID 列表从手牌中找出对应的牌。
// 任何一个 ID 不在手牌中或重复出现都返回错误。
func FindByIDs(hand []Card, ids []string) ([]Card, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("不能出空牌")
	}

	byID := make(map[string]Card, len(hand))
	for _, c := range hand {
		byID[c.ID] = c
	}

	result := make([]Card, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("手牌中没有 %s", id)
		}
		delete(byID, id)
		result = append(result, c)
	}
	return result, nil
}

// RemoveCards 从手牌中移除指定的牌
func RemoveCards(hand, toRemove []Card) []Card {
	removed := make(map[string]bool, len(toRemove))
	for _, c := range toRemove {
		removed[c.ID] = true
	}

	var result []Card
	for _, c := range hand {
		if !removed[c.ID] {
			result = append(result, c)
		}
	}
	return result
}
