package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cardtable/doudizhu-server/internal/game/card"
)

// View 渲染当前界面
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.phase {
	case PhaseConnecting:
		content = m.connectingView()
	case PhaseMatching:
		content = m.matchingView()
	case PhaseBidding, PhasePlaying:
		content = m.gameView()
	case PhaseGameOver:
		content = m.gameOverView()
	}

	return docStyle.Render(content)
}

func (m *Model) connectingView() string {
	text := "正在连接服务器..."
	if m.fatal != "" {
		text = errorStyle.Render(m.fatal)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text)
}

func (m *Model) matchingView() string {
	text := "🔍 正在匹配玩家...\n\n按 ESC 取消"
	if m.queueTotal > 0 {
		text = fmt.Sprintf("🔍 正在匹配玩家...\n\n队列位置: %d/%d\n\n按 ESC 取消", m.queuePos, m.queueTotal)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text)
}

func (m *Model) gameView() string {
	s := m.state
	var sb strings.Builder

	title := titleStyle(fmt.Sprintf("🏠 房间: %s   倍数: x%d", s.RoomID, s.Multiplier))
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	sb.WriteString("\n")

	top := renderBottomCards(s.Bottom)
	if m.showCounter {
		top = lipgloss.JoinHorizontal(lipgloss.Top, renderCardCounter(s.Counter), "  ", top)
	}
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, top))
	sb.WriteString("\n")

	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderOpponents()))
	sb.WriteString("\n")

	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, renderHand(s.Hand, s.IsLandlord())))
	sb.WriteString("\n")

	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderPrompt()))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}

func (m *Model) gameOverView() string {
	s := m.state
	var text string
	if s.WinnerIndex < 0 {
		text = fmt.Sprintf("🎮 对局已结束\n\n%s\n\n%s", m.notice, m.input.View())
	} else {
		winnerType := "农民"
		if s.LandlordWin {
			winnerType = "地主"
		}
		text = fmt.Sprintf("🎮 游戏结束!\n\n🏆 %s (%s) 获胜! 倍数 x%d\n\n%s",
			s.Names[s.WinnerIndex], winnerType, s.Multiplier, m.input.View())
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Render(text)
}

// --- 渲染辅助 ---

func renderBottomCards(bottom []card.Card) string {
	if len(bottom) == 0 {
		return boxStyle.Render("底牌: (待揭晓)")
	}
	return boxStyle.Render(renderCardRows("底牌", bottom))
}

func renderHand(hand []card.Card, isLandlord bool) string {
	if len(hand) == 0 {
		return boxStyle.Render("(无手牌)")
	}

	icon := farmerIcon
	if isLandlord {
		icon = landlordIcon
	}
	title := fmt.Sprintf("我的手牌 %s (%d张)", icon, len(hand))
	return boxStyle.Render(renderCardRows(title, hand))
}

// renderCardRows 把一组牌渲染成点数一行、花色一行的两行布局
func renderCardRows(title string, cards []card.Card) string {
	var rankStr, suitStr strings.Builder
	for _, c := range cards {
		style := blackStyle
		if c.Color == card.Red {
			style = redStyle
		}
		style = style.Align(lipgloss.Center).Margin(0, 1)
		rankStr.WriteString(style.Render(fmt.Sprintf("%-2s", c.Rank.String())))
		suitStr.WriteString(style.Render(fmt.Sprintf("%-2s", c.Suit.String())))
	}
	return lipgloss.JoinVertical(lipgloss.Center, title, rankStr.String(), suitStr.String())
}

func (m *Model) renderOpponents() string {
	s := m.state
	var parts []string

	for i := 0; i < 3; i++ {
		if i == s.MyIndex {
			continue
		}

		icon := farmerIcon
		if s.LandlordIndex == i {
			icon = landlordIcon
		}

		nameStyle := lipgloss.NewStyle()
		if s.CurrentTurn == i || s.BidTurn == i {
			nameStyle = nameStyle.Foreground(lipgloss.Color("220")).Bold(true)
		}

		info := fmt.Sprintf("%s %s\n🃏 %d张", icon, nameStyle.Render(s.Names[i]), s.HandSizes[i])
		parts = append(parts, boxStyle.Width(15).Render(info))
	}

	lastPlay := "(等待出牌...)"
	if len(s.LastPlayed) > 0 {
		var cardStrs []string
		for i := len(s.LastPlayed) - 1; i >= 0; i-- {
			c := s.LastPlayed[i]
			style := blackStyle
			if c.Color == card.Red {
				style = redStyle
			}
			cardStrs = append(cardStrs, style.Render(c.Rank.String()))
		}
		lastPlay = fmt.Sprintf("%s: %s\n%s", s.Names[s.LastPlayedBy], strings.Join(cardStrs, " "), s.LastHandType)
	}
	parts = append(parts, boxStyle.Width(25).Render(lastPlay))

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderPrompt() string {
	s := m.state
	var sb strings.Builder

	if m.notice != "" {
		sb.WriteString(m.notice + "\n")
	}

	switch m.phase {
	case PhaseBidding:
		if s.BidTurn == s.MyIndex {
			sb.WriteString("轮到你叫地主!\n")
		} else if s.BidTurn >= 0 {
			fmt.Fprintf(&sb, "等待 %s 叫地主...\n", s.Names[s.BidTurn])
		}
	case PhasePlaying:
		if s.CurrentTurn == s.MyIndex {
			icon := farmerIcon
			if s.IsLandlord() {
				icon = landlordIcon
			}
			fmt.Fprintf(&sb, "轮到你出牌! %s\n", icon)
		} else if s.CurrentTurn >= 0 {
			fmt.Fprintf(&sb, "等待 %s 出牌...\n", s.Names[s.CurrentTurn])
		}
	}

	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render("Ctrl+T 记牌器, ESC 退出"))

	centered := lipgloss.NewStyle().
		Width(m.width).
		AlignHorizontal(lipgloss.Center).
		Render(sb.String())
	return promptStyle.Render(centered)
}

func renderCardCounter(counter *CardCounter) string {
	if counter == nil {
		return ""
	}

	var names []string
	for _, rank := range displayOrder {
		name := rank.String()
		switch rank {
		case card.RankRedJoker:
			name = "R"
		case card.RankBlackJoker:
			name = "B"
		}
		names = append(names, fmt.Sprintf("%-2s", name))
	}

	remaining := counter.Remaining()
	var counts []string
	for _, rank := range displayOrder {
		counts = append(counts, fmt.Sprintf("%-2d", remaining[rank]))
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(names, "│") + "\n")
	sb.WriteString(strings.Repeat("─", 44) + "\n")
	sb.WriteString(strings.Join(counts, "│"))
	return boxStyle.Render(sb.String())
}
