package rule

import (
	"slices"

	"github.com/cardtable/doudizhu-server/internal/game/card"
)

// CanBeat 判断 newHand 是否能大过 lastHand。
// 只有在本轮已有参照牌时才会被调用；新一轮首出不受限制。
func CanBeat(newHand, lastHand ParsedHand) bool {
	// 王炸最大
	if newHand.Type == Rocket {
		return true
	}
	if lastHand.Type == Rocket {
		return false
	}

	// 炸弹可以大过任何非炸弹和非王炸的牌
	if newHand.Type == Bomb && lastHand.Type != Bomb {
		return true
	}

	// 其余情况：牌型和张数都必须一致
	if newHand.Type != lastHand.Type || newHand.Length != lastHand.Length {
		return false
	}

	return newHand.KeyRank > lastHand.KeyRank
}

// handChecker 牌型检查函数类型
type handChecker func(HandAnalysis, ParsedHand) bool

// handCheckers 牌型检查函数映射表
var handCheckers = map[HandType]handChecker{
	Single:           findWinningSingle,
	Pair:             findWinningPair,
	Trio:             func(a HandAnalysis, h ParsedHand) bool { return findWinningTrio(a, h, 0) },
	TrioWithSingle:   func(a HandAnalysis, h ParsedHand) bool { return findWinningTrio(a, h, 1) },
	TrioWithPair:     func(a HandAnalysis, h ParsedHand) bool { return findWinningTrio(a, h, 2) },
	Straight:         findWinningStraight,
	PairStraight:     findWinningPairStraight,
	Plane:            func(a HandAnalysis, h ParsedHand) bool { return findWinningPlane(a, h, 0) },
	PlaneWithSingles: func(a HandAnalysis, h ParsedHand) bool { return findWinningPlane(a, h, 1) },
	PlaneWithPairs:   func(a HandAnalysis, h ParsedHand) bool { return findWinningPlane(a, h, 2) },
}

// CanBeatWithHand 检查一个玩家的整手牌中是否存在任何可以打过 opponentHand 的组合
func CanBeatWithHand(playerHand []card.Card, opponentHand ParsedHand) bool {
	// 新一轮，总是有牌可出
	if opponentHand.IsEmpty() {
		return len(playerHand) > 0
	}

	analysis := analyzeCards(playerHand)

	// 先看炸弹和王炸，它们几乎可以打任何牌
	if hasWinningBombOrRocket(analysis, opponentHand) {
		return true
	}

	if opponentHand.Type == Bomb || opponentHand.Type == Rocket {
		return false
	}

	// 再看是否有同类型的、更大的牌
	if checker, ok := handCheckers[opponentHand.Type]; ok {
		return checker(analysis, opponentHand)
	}
	return false
}

// hasWinningBombOrRocket checks for any bomb or rocket that can beat the opponent's hand.
func hasWinningBombOrRocket(analysis HandAnalysis, opponentHand ParsedHand) bool {
	if analysis.counts[card.RankBlackJoker] >= 1 && analysis.counts[card.RankRedJoker] >= 1 {
		// A Rocket beats anything.
		return true
	}

	for _, r := range analysis.fours {
		if opponentHand.Type != Bomb && opponentHand.Type != Rocket {
			return true
		}
		if opponentHand.Type == Bomb && r > opponentHand.KeyRank {
			return true
		}
	}
	return false
}

// findWinningSingle checks for any single card that can win.
func findWinningSingle(analysis HandAnalysis, opponentHand ParsedHand) bool {
	for r := range analysis.counts {
		if r > opponentHand.KeyRank {
			return true
		}
	}
	return false
}

// findWinningPair checks for any pair that can win.
func findWinningPair(analysis HandAnalysis, opponentHand ParsedHand) bool {
	for r, count := range analysis.counts {
		if count >= 2 && r > opponentHand.KeyRank {
			return true
		}
	}
	return false
}

// findWinningTrio checks for trios with or without kickers.
// kickerType: 0=none, 1=single, 2=pair.
func findWinningTrio(analysis HandAnalysis, opponentHand ParsedHand, kickerType int) bool {
	for r, count := range analysis.counts {
		if count < 3 || r <= opponentHand.KeyRank {
			continue
		}
		remainingCards := len(analysis.ones) + len(analysis.pairs)*2 + len(analysis.trios)*3 + len(analysis.fours)*4 - 3
		switch kickerType {
		case 0:
			return true
		case 1:
			if remainingCards >= 1 {
				return true
			}
		case 2:
			if remainingCards < 2 {
				continue
			}
			// The remaining cards must contain a pair somewhere.
			if len(analysis.pairs) > 0 || len(analysis.trios) > 1 || len(analysis.fours) > 0 || count == 4 {
				return true
			}
		}
	}
	return false
}

// findWinningStraight checks for a winning straight of the same card count.
func findWinningStraight(analysis HandAnalysis, opponentHand ParsedHand) bool {
	length := opponentHand.Length // 顺子张数 = 点数个数

	var availableRanks []card.Rank
	for r := range analysis.counts {
		if r < card.Rank2 { // 顺子不能包含 2 和王
			availableRanks = append(availableRanks, r)
		}
	}
	slices.Sort(availableRanks)

	if len(availableRanks) < length {
		return false
	}

	for i := 0; i <= len(availableRanks)-length; i++ {
		if !isContinuousSequence(availableRanks, i, length) {
			continue
		}
		if availableRanks[i+length-1] > opponentHand.KeyRank {
			return true
		}
	}
	return false
}

// findWinningPairStraight checks for a winning pair straight of the same card count.
func findWinningPairStraight(analysis HandAnalysis, opponentHand ParsedHand) bool {
	length := opponentHand.Length / 2 // 对子组数

	var pairRanks []card.Rank
	for r, count := range analysis.counts {
		if count >= 2 && r < card.Rank2 {
			pairRanks = append(pairRanks, r)
		}
	}
	slices.Sort(pairRanks)

	if len(pairRanks) < length {
		return false
	}

	for i := 0; i <= len(pairRanks)-length; i++ {
		if !isContinuousSequence(pairRanks, i, length) {
			continue
		}
		if pairRanks[i+length-1] > opponentHand.KeyRank {
			return true
		}
	}
	return false
}

// findWinningPlane checks for a winning plane with or without kickers.
// kickerType: 0=none, 1=singles, 2=pairs.
func findWinningPlane(analysis HandAnalysis, opponentHand ParsedHand, kickerType int) bool {
	groupSize := 3 + kickerType // 每组三张加翅膀后的张数
	length := opponentHand.Length / groupSize

	var trioRanks []card.Rank
	for r, count := range analysis.counts {
		if count >= 3 && r < card.Rank2 {
			trioRanks = append(trioRanks, r)
		}
	}
	slices.Sort(trioRanks)

	if len(trioRanks) < length {
		return false
	}

	for i := 0; i <= len(trioRanks)-length; i++ {
		if !isContinuousSequence(trioRanks, i, length) {
			continue
		}
		if trioRanks[i+length-1] <= opponentHand.KeyRank {
			continue
		}
		if checkKickers(analysis, trioRanks, i, length, kickerType) {
			return true
		}
	}
	return false
}

// isContinuousSequence checks if a window of ranks forms a continuous sequence.
func isContinuousSequence(ranks []card.Rank, startIndex, length int) bool {
	for j := 1; j < length; j++ {
		if ranks[startIndex+j-1]+1 != ranks[startIndex+j] {
			return false
		}
	}
	return true
}

// checkKickers checks if the hand has enough kickers for the plane.
func checkKickers(analysis HandAnalysis, trioRanks []card.Rank, startIndex, length, kickerType int) bool {
	if kickerType == 0 {
		return true
	}

	totalCardsInHand := 0
	for _, c := range analysis.counts {
		totalCardsInHand += c
	}
	remainingCardCount := totalCardsInHand - (length * 3)

	switch kickerType {
	case 1: // N 张单牌
		return remainingCardCount >= length
	case 2: // N 个对子
		if remainingCardCount < length*2 {
			return false
		}

		startRank := trioRanks[startIndex]
		endRank := trioRanks[startIndex+length-1]

		kickerPairs := 0
		for r, count := range analysis.counts {
			if r >= startRank && r <= endRank {
				continue
			}
			kickerPairs += count / 2
		}
		return kickerPairs >= length
	}
	return false
}
