package rule

import (
	"fmt"
	"slices"

	"github.com/cardtable/doudizhu-server/internal/game/card"
)

// HandType 定义牌型
type HandType int

const (
	Invalid        HandType = iota
	Single                  // 单张
	Pair                    // 对子
	Trio                    // 三张不带
	TrioWithSingle          // 三带一
	TrioWithPair            // 三带二

	Straight         // 顺子（5张或以上连续单张）
	PairStraight     // 连对（3对或以上）
	Plane            // 飞机不带翅膀（2个或以上连续三张）
	PlaneWithSingles // 飞机带单
	PlaneWithPairs   // 飞机带对

	Bomb             // 炸弹（四张相同）
	FourWithTwo      // 四带二（带两张相同或不同的单牌）
	FourWithTwoPairs // 四带两对（带两对）

	Rocket // 王炸（双王）
)

// handTypeNames 牌型名称映射表
var handTypeNames = map[HandType]string{
	Single:           "单张",
	Pair:             "对子",
	Trio:             "三张",
	TrioWithSingle:   "三带一",
	TrioWithPair:     "三带二",
	Straight:         "顺子",
	PairStraight:     "连对",
	Plane:            "飞机",
	PlaneWithSingles: "飞机带单",
	PlaneWithPairs:   "飞机带对",
	Bomb:             "炸弹",
	FourWithTwo:      "四带二",
	FourWithTwoPairs: "四带两对",
	Rocket:           "王炸",
}

func (h HandType) String() string {
	if name, ok := handTypeNames[h]; ok {
		return name
	}
	return "无效"
}

// ParsedHand 解析后的手牌，用于比较
type ParsedHand struct {
	Type    HandType
	KeyRank card.Rank   // 决定大小的关键点数（顺子、连对、飞机取最高的一组）
	Length  int         // 牌的张数
	Cards   []card.Card // 这手牌包含的卡牌
}

func (p ParsedHand) IsEmpty() bool {
	return p.Type == Invalid
}

// HandAnalysis 对一手牌进行预分析，统计不同点数的牌出现了几次
type HandAnalysis struct {
	counts map[card.Rank]int // 每种点数牌的数量
	// 为了方便，提前将不同数量的牌分组
	fours []card.Rank
	trios []card.Rank
	pairs []card.Rank
	ones  []card.Rank
}

// analyzeCards 分析手牌，返回一个包含所有统计信息的结构
func analyzeCards(cards []card.Card) HandAnalysis {
	analysis := HandAnalysis{
		counts: make(map[card.Rank]int),
	}
	for _, c := range cards {
		analysis.counts[c.Rank]++
	}

	for r, count := range analysis.counts {
		switch count {
		case 4:
			analysis.fours = append(analysis.fours, r)
		case 3:
			analysis.trios = append(analysis.trios, r)
		case 2:
			analysis.pairs = append(analysis.pairs, r)
		case 1:
			analysis.ones = append(analysis.ones, r)
		}
	}

	// 对结果进行排序，方便后续判断连续性
	slices.Sort(analysis.fours)
	slices.Sort(analysis.trios)
	slices.Sort(analysis.pairs)
	slices.Sort(analysis.ones)

	return analysis
}

// isContinuous 检查给定的点数切片是否连续，并且不能包含 2 和大小王
func isContinuous(ranks []card.Rank) bool {
	if len(ranks) == 0 {
		return false
	}
	for i, r := range ranks {
		if r >= card.Rank2 { // 顺子、连对、飞机不能包含2和王
			return false
		}
		if i > 0 && ranks[i-1]+1 != r {
			return false
		}
	}
	return true
}

// ParseHand 解析牌型。无法匹配任何已知牌型时返回错误，由调用方拒绝这手牌。
func ParseHand(cards []card.Card) (ParsedHand, error) {
	if len(cards) == 0 {
		return ParsedHand{}, fmt.Errorf("不能出空牌")
	}

	analysis := analyzeCards(cards)

	// 按优先级检查各种牌型，王炸最先（两张牌优先识别为王炸）
	checks := []func(HandAnalysis, []card.Card) (ParsedHand, bool){
		isRocket,          // 王炸
		isBomb,            // 炸弹
		isFourWithKickers, // 四带二/四带两对
		isTrioWithKickers, // 三带X
		isPlane,           // 飞机
		isStraight,        // 顺子
		isPairStraight,    // 连对
		isSimpleType,      // 简单牌型（单、对、三）
	}

	for _, check := range checks {
		if hand, ok := check(analysis, cards); ok {
			return hand, nil
		}
	}

	return ParsedHand{}, fmt.Errorf("不支持的牌型: %v", cards)
}

// isRocket 双王
func isRocket(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	if len(cards) == 2 && a.counts[card.RankBlackJoker] == 1 && a.counts[card.RankRedJoker] == 1 {
		return ParsedHand{Type: Rocket, KeyRank: card.RankRedJoker, Length: 2, Cards: cards}, true
	}
	return ParsedHand{}, false
}

// isBomb 四张相同
func isBomb(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	if len(cards) == 4 && len(a.fours) == 1 {
		return ParsedHand{Type: Bomb, KeyRank: a.fours[0], Length: 4, Cards: cards}, true
	}
	return ParsedHand{}, false
}

// isFourWithKickers 四带二（两张单牌）或四带两对
func isFourWithKickers(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	if len(a.fours) != 1 {
		return ParsedHand{}, false
	}
	quad := a.fours[0]

	switch len(cards) {
	case 6:
		// 带的两张可以相同也可以不同，但不能是拆开的王炸之外的非法组合
		return ParsedHand{Type: FourWithTwo, KeyRank: quad, Length: 6, Cards: cards}, true
	case 8:
		// 剩下的四张必须正好是两个对子
		if len(a.pairs) == 2 && len(a.ones) == 0 && len(a.trios) == 0 {
			return ParsedHand{Type: FourWithTwoPairs, KeyRank: quad, Length: 8, Cards: cards}, true
		}
	}
	return ParsedHand{}, false
}

// isTrioWithKickers 三带一、三带二
func isTrioWithKickers(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	if len(a.trios) != 1 {
		return ParsedHand{}, false
	}
	trio := a.trios[0]

	switch len(cards) {
	case 4:
		return ParsedHand{Type: TrioWithSingle, KeyRank: trio, Length: 4, Cards: cards}, true
	case 5:
		if len(a.pairs) == 1 {
			return ParsedHand{Type: TrioWithPair, KeyRank: trio, Length: 5, Cards: cards}, true
		}
	}
	return ParsedHand{}, false
}

// isPlane 飞机（带或不带翅膀）。要求所有三张连续，
// 翅膀数量与三张组数一致。
func isPlane(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	n := len(a.trios)
	if n < 2 || !isContinuous(a.trios) {
		return ParsedHand{}, false
	}
	key := a.trios[n-1]

	switch len(cards) {
	case n * 3:
		return ParsedHand{Type: Plane, KeyRank: key, Length: n * 3, Cards: cards}, true
	case n * 4:
		// 每组三张带一张单牌
		return ParsedHand{Type: PlaneWithSingles, KeyRank: key, Length: n * 4, Cards: cards}, true
	case n * 5:
		// 每组三张带一个对子
		if len(a.pairs) == n && len(a.ones) == 0 && len(a.fours) == 0 {
			return ParsedHand{Type: PlaneWithPairs, KeyRank: key, Length: n * 5, Cards: cards}, true
		}
	}
	return ParsedHand{}, false
}

// isStraight 顺子：5 张或以上连续单张，不含 2 和王
func isStraight(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	if len(cards) < 5 || len(a.ones) != len(cards) {
		return ParsedHand{}, false
	}
	if !isContinuous(a.ones) {
		return ParsedHand{}, false
	}
	return ParsedHand{Type: Straight, KeyRank: a.ones[len(a.ones)-1], Length: len(cards), Cards: cards}, true
}

// isPairStraight 连对：3 对或以上连续对子，不含 2 和王
func isPairStraight(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	if len(a.pairs) < 3 || len(a.pairs)*2 != len(cards) {
		return ParsedHand{}, false
	}
	if !isContinuous(a.pairs) {
		return ParsedHand{}, false
	}
	return ParsedHand{Type: PairStraight, KeyRank: a.pairs[len(a.pairs)-1], Length: len(cards), Cards: cards}, true
}

// isSimpleType 单张、对子、三张不带
func isSimpleType(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	switch len(cards) {
	case 1:
		return ParsedHand{Type: Single, KeyRank: cards[0].Rank, Length: 1, Cards: cards}, true
	case 2:
		if len(a.pairs) == 1 {
			return ParsedHand{Type: Pair, KeyRank: a.pairs[0], Length: 2, Cards: cards}, true
		}
	case 3:
		if len(a.trios) == 1 {
			return ParsedHand{Type: Trio, KeyRank: a.trios[0], Length: 3, Cards: cards}, true
		}
	}
	return ParsedHand{}, false
}
