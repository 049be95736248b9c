package convert

import (
	"github.com/cardtable/doudizhu-server/internal/game/card"
	"github.com/cardtable/doudizhu-server/internal/protocol"
)

// CardToInfo 将 card.Card 转换为 protocol.CardInfo
func CardToInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{
		Suit:  int(c.Suit),
		Rank:  int(c.Rank),
		Color: int(c.Color),
		ID:    c.ID,
	}
}

// CardsToInfos 将 []card.Card 转换为 []protocol.CardInfo
func CardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// HiddenCards 返回 n 张面朝下的占位牌，底牌在地主确定前用它表示
func HiddenCards(n int) []protocol.CardInfo {
	return make([]protocol.CardInfo, n)
}

// InfoToCard 将 protocol.CardInfo 还原为 card.Card
func InfoToCard(info protocol.CardInfo) card.Card {
	return card.Card{
		Suit:  card.Suit(info.Suit),
		Rank:  card.Rank(info.Rank),
		Color: card.CardColor(info.Color),
		ID:    info.ID,
	}
}

// InfosToCards 将 []protocol.CardInfo 还原为 []card.Card
func InfosToCards(infos []protocol.CardInfo) []card.Card {
	cards := make([]card.Card, len(infos))
	for i, info := range infos {
		cards[i] = InfoToCard(info)
	}
	return cards
}
