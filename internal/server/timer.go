package server

import (
	"log"
	"time"

	"github.com/cardtable/doudizhu-server/internal/game/card"
	gameroom "github.com/cardtable/doudizhu-server/internal/game/room"
	"github.com/cardtable/doudizhu-server/internal/game/rule"
)

// scheduleTurnTimer 为当前回合安排超时计时器。
// 超时后替发呆的玩家做最保守的动作，避免一个人卡死整桌。
// 超时配置为非正数时不限时（发呆的座位会一直占着房间）。
func (m *Manager) scheduleTurnTimer(roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduleTurnTimerLocked(roomID)
}

// scheduleTurnTimerLocked 调用方必须持有 m.mu
func (m *Manager) scheduleTurnTimerLocked(roomID string) {
	t, ok := m.tables[roomID]
	if !ok {
		return
	}
	m.stopTurnTimerLocked(t)

	var d time.Duration
	var seat int
	switch t.room.Phase() {
	case gameroom.PhaseBidding:
		d = m.game.BidTimeoutDuration()
		seat = t.room.CurrentBidder()
	case gameroom.PhasePlaying:
		d = m.game.TurnTimeoutDuration()
		seat = t.room.CurrentPlayer()
	default:
		return
	}
	if d <= 0 {
		return
	}

	t.turnTimer = time.AfterFunc(d, func() {
		m.onTurnTimeout(roomID, seat)
	})
}

// stopTurnTimerLocked 调用方必须持有 m.mu
func (m *Manager) stopTurnTimerLocked(t *table) {
	if t.turnTimer != nil {
		t.turnTimer.Stop()
		t.turnTimer = nil
	}
}

// onTurnTimeout 超时代打。座位已经行动过的陈旧触发直接忽略。
func (m *Manager) onTurnTimeout(roomID string, seat int) {
	m.mu.Lock()
	t, ok := m.tables[roomID]
	m.mu.Unlock()
	if !ok {
		return
	}

	switch t.room.Phase() {
	case gameroom.PhaseBidding:
		if t.room.CurrentBidder() != seat {
			return
		}
		log.Printf("⏰ 房间 %s 座位 %d 叫地主超时，按不叫处理", roomID, seat)
		m.HandleBid(t.clients[seat], false)

	case gameroom.PhasePlaying:
		if t.room.CurrentPlayer() != seat {
			return
		}
		last := t.room.LastPlay()
		if !last.IsEmpty() {
			log.Printf("⏰ 房间 %s 座位 %d 出牌超时，按不出处理", roomID, seat)
			m.HandlePass(t.clients[seat])
			return
		}
		// 新一轮必须出牌，替他出最小的单牌
		cards := rule.FindSmallestBeatingCards(t.room.Hand(seat), last)
		if cards == nil {
			return
		}
		log.Printf("⏰ 房间 %s 座位 %d 出牌超时，自动出 %v", roomID, seat, cards)
		m.HandlePlayCards(t.clients[seat], card.IDs(cards))
	}
}
