// Package ui 实现联机对局的终端界面。
package ui

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cardtable/doudizhu-server/internal/game/card"
	"github.com/cardtable/doudizhu-server/internal/logger"
	"github.com/cardtable/doudizhu-server/internal/netclient"
	"github.com/cardtable/doudizhu-server/internal/protocol"
)

// GamePhase 客户端所处的界面阶段
type GamePhase int

const (
	PhaseConnecting GamePhase = iota
	PhaseMatching
	PhaseBidding
	PhasePlaying
	PhaseGameOver
)

// --- tea.Msg 类型 ---

type connectedMsg struct{}
type connectionErrorMsg struct{ err error }
type serverMessage struct{ msg *protocol.Message }
type clearNoticeMsg struct{}

// Model 联机对局的 bubbletea 模型
type Model struct {
	client *netclient.Client
	token  string

	phase GamePhase
	state *GameState

	queuePos   int
	queueTotal int

	notice      string // 错误或系统提示，短暂展示
	fatal       string // 致命错误，停留在连接页
	showCounter bool

	input  textinput.Model
	width  int
	height int
}

// NewModel 创建联机对局模型
func NewModel(serverURL, token string) *Model {
	ti := textinput.New()
	ti.Placeholder = "等待服务器..."
	ti.CharLimit = 24
	ti.Width = 30
	ti.Focus()

	return &Model{
		client: netclient.NewClient(serverURL),
		token:  token,
		phase:  PhaseConnecting,
		state:  NewGameState(),
		input:  ti,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.connectToServer(), textinput.Blink)
}

func (m *Model) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return connectionErrorMsg{err: err}
		}
		return connectedMsg{}
	}
}

func (m *Model) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return connectionErrorMsg{err: err}
		}
		return serverMessage{msg: msg}
	}
}

func clearNoticeAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}

// Update 处理事件
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case connectedMsg:
		if err := m.client.Auth(m.token); err != nil {
			m.fatal = fmt.Sprintf("发送认证请求失败: %v", err)
			return m, nil
		}
		cmds = append(cmds, m.listenForMessages())

	case connectionErrorMsg:
		m.fatal = fmt.Sprintf("与服务器的连接已断开: %v\n\n按 ESC 退出", msg.err)
		m.phase = PhaseConnecting

	case serverMessage:
		if cmd := m.handleServerMessage(msg.msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.client.IsConnected() {
			cmds = append(cmds, m.listenForMessages())
		}

	case clearNoticeMsg:
		m.notice = ""

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.client.Close()
			return m, tea.Quit
		case tea.KeyCtrlT:
			m.showCounter = !m.showCounter
			return m, nil
		case tea.KeyEnter:
			if cmd := m.submitInput(); cmd != nil {
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleServerMessage 把服务端广播应用到本地状态
func (m *Model) handleServerMessage(msg *protocol.Message) tea.Cmd {
	switch msg.Type {
	case protocol.MsgAuthOK:
		var p protocol.AuthOKPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil
		}
		m.client.UserID = p.UserID
		m.client.Name = p.Name
		m.phase = PhaseMatching
		if err := m.client.JoinQueue(); err != nil {
			m.fatal = fmt.Sprintf("加入匹配队列失败: %v", err)
		}

	case protocol.MsgWaiting:
		var p protocol.WaitingPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil
		}
		m.phase = PhaseMatching
		m.queuePos, m.queueTotal = p.Position, p.Total

	case protocol.MsgGameStart:
		var p protocol.GameStartPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil
		}
		m.state = NewGameState()
		m.state.ApplyGameStart(&p)
		m.phase = PhaseBidding
		m.refreshPlaceholder()

	case protocol.MsgRedeal:
		var p protocol.RedealPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil
		}
		m.state.ApplyRedeal(&p)
		m.notice = "无人叫地主，重新发牌"
		m.refreshPlaceholder()
		return clearNoticeAfter(3 * time.Second)

	case protocol.MsgBidUpdate:
		var p protocol.BidUpdatePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil
		}
		m.state.ApplyBidUpdate(&p)
		m.notice = fmt.Sprintf("%s: %s", m.state.Names[p.PlayerIndex], p.DisplayText)
		m.refreshPlaceholder()
		return clearNoticeAfter(3 * time.Second)

	case protocol.MsgBidFinalized:
		var p protocol.BidFinalizedPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil
		}
		m.state.ApplyBidFinalized(&p)
		m.phase = PhasePlaying
		m.notice = fmt.Sprintf("%s 成为地主", m.state.Names[p.LandlordIndex])
		m.refreshPlaceholder()
		return clearNoticeAfter(3 * time.Second)

	case protocol.MsgPlayUpdate:
		var p protocol.PlayUpdatePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil
		}
		m.state.ApplyPlayUpdate(&p)
		m.refreshPlaceholder()

	case protocol.MsgPassUpdate:
		var p protocol.PassUpdatePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil
		}
		m.state.ApplyPassUpdate(&p)
		m.refreshPlaceholder()

	case protocol.MsgGameOver:
		var p protocol.GameOverPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil
		}
		m.state.ApplyGameOver(&p)
		m.phase = PhaseGameOver
		m.input.Reset()
		m.input.Placeholder = "回车再来一局，ESC 退出"

	case protocol.MsgPlayerLeft:
		var p protocol.PlayerLeftPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil
		}
		m.phase = PhaseGameOver
		m.notice = fmt.Sprintf("%s 已离开，房间解散", m.state.Names[p.PlayerIndex])
		m.input.Reset()
		m.input.Placeholder = "回车再来一局，ESC 退出"

	case protocol.MsgError:
		var p protocol.ErrorPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil
		}
		m.notice = fmt.Sprintf("⚠️ %s", p.Message)
		return clearNoticeAfter(3 * time.Second)

	default:
		logger.Infof("忽略未知消息类型: %s", msg.Type)
	}
	return nil
}

// refreshPlaceholder 根据当前阶段更新输入框提示
func (m *Model) refreshPlaceholder() {
	s := m.state
	switch m.phase {
	case PhaseBidding:
		if s.BidTurn == s.MyIndex {
			m.input.Placeholder = "叫地主? (Y/N)"
		} else {
			m.input.Placeholder = "等待其他玩家..."
		}
	case PhasePlaying:
		if s.CurrentTurn != s.MyIndex {
			m.input.Placeholder = "等待其他玩家..."
			return
		}
		switch {
		case s.MustPlay:
			m.input.Placeholder = "必须出牌 (如 33344, JOKER)"
		case s.CanBeat:
			m.input.Placeholder = "出牌或 PASS"
		default:
			m.input.Placeholder = "没有能压住的牌，输入 PASS"
		}
	}
}

// submitInput 处理回车提交
func (m *Model) submitInput() tea.Cmd {
	text := strings.ToUpper(strings.TrimSpace(m.input.Value()))
	m.input.Reset()
	if text == "" && m.phase != PhaseGameOver {
		return nil
	}

	switch m.phase {
	case PhaseBidding:
		if m.state.BidTurn != m.state.MyIndex {
			return nil
		}
		switch text {
		case "Y":
			_ = m.client.Bid(true)
		case "N":
			_ = m.client.Bid(false)
		default:
			m.notice = "请输入 Y 或 N"
			return clearNoticeAfter(2 * time.Second)
		}

	case PhasePlaying:
		if m.state.CurrentTurn != m.state.MyIndex {
			return nil
		}
		if text == "PASS" || text == "P" {
			_ = m.client.Pass()
			return nil
		}
		cards, err := card.FindCardsInHand(m.state.Hand, text)
		if err != nil {
			m.notice = fmt.Sprintf("⚠️ %v", err)
			return clearNoticeAfter(2 * time.Second)
		}
		_ = m.client.PlayCards(card.IDs(cards))

	case PhaseGameOver:
		// 任意输入都视为再来一局
		m.phase = PhaseMatching
		m.notice = ""
		if err := m.client.JoinQueue(); err != nil {
			m.fatal = fmt.Sprintf("加入匹配队列失败: %v", err)
		}
	}
	return nil
}
