package server

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cardtable/doudizhu-server/internal/config"
	gameroom "github.com/cardtable/doudizhu-server/internal/game/room"
	"github.com/cardtable/doudizhu-server/internal/protocol"
	"github.com/cardtable/doudizhu-server/internal/protocol/codec"
	"github.com/cardtable/doudizhu-server/internal/protocol/convert"
	"github.com/cardtable/doudizhu-server/internal/server/storage"
	"github.com/cardtable/doudizhu-server/internal/types"
)

// 认证解析的超时
const resolveTimeout = 3 * time.Second

// seatRef 连接在某个房间中的座位
type seatRef struct {
	roomID string
	seat   int
}

// table 一个进行中的房间及其三条连接
type table struct {
	room    *gameroom.Room
	clients [3]types.ClientInterface

	turnTimer   *time.Timer // 当前回合的超时计时器
	lingerTimer *time.Timer // 游戏结束后的延迟清理计时器
}

// broadcast 给三个座位尽力投递同一条消息
func (t *table) broadcast(msg *protocol.Message) {
	for _, c := range t.clients {
		c.SendMessage(msg)
	}
}

// Manager 房间管理器：持有匹配队列、活跃房间集合，
// 以及连接到 (房间, 座位) 的索引。由服务器启动时构造一次。
type Manager struct {
	resolver storage.TokenResolver
	recorder storage.ResultRecorder // 可为 nil，战绩记录是尽力而为
	game     config.GameConfig

	queue  []types.ClientInterface
	tables map[string]*table
	seats  map[string]seatRef // 连接 ID → 座位

	mu sync.Mutex
}

// NewManager 创建房间管理器
func NewManager(resolver storage.TokenResolver, recorder storage.ResultRecorder, game config.GameConfig) *Manager {
	return &Manager{
		resolver: resolver,
		recorder: recorder,
		game:     game,
		tables:   make(map[string]*table),
		seats:    make(map[string]seatRef),
	}
}

// Authenticate 把令牌交给外部身份系统解析。
// 认证成功前，其余所有游戏消息都会被拒绝；
// 已绑定身份的连接不允许换一个令牌重新认证。
func (m *Manager) Authenticate(client types.ClientInterface, token string) {
	if client.IsAuthenticated() {
		log.Printf("🔒 连接 %s 已认证，拒绝重复认证", client.GetID())
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeReauth))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	id, err := m.resolver.Resolve(ctx, token)
	if err != nil {
		log.Printf("🔒 连接 %s 认证失败: %v", client.GetID(), err)
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeAuthFailed))
		return
	}

	client.SetIdentity(id.UserID, id.Name)
	client.SendMessage(codec.MustNewMessage(protocol.MsgAuthOK, protocol.AuthOKPayload{
		UserID: id.UserID,
		Name:   id.Name,
	}))
	log.Printf("✅ 连接 %s 认证为 %s (%s)", client.GetID(), id.Name, id.UserID)
}

// JoinQueue 加入匹配队列。凑满三人立即开一桌，先来先坐。
func (m *Manager) JoinQueue(client types.ClientInterface) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inQueue(client) {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeAlreadyQueue))
		return
	}
	if _, seated := m.seats[client.GetID()]; seated {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeAlreadySeat))
		return
	}

	m.queue = append(m.queue, client)
	log.Printf("🔍 玩家 %s 加入匹配队列，当前队列长度: %d", client.GetName(), len(m.queue))
	m.notifyQueuePositions()

	if len(m.queue) >= 3 {
		trio := [3]types.ClientInterface{m.queue[0], m.queue[1], m.queue[2]}
		m.queue = m.queue[3:]
		m.startRoom(trio)
		m.notifyQueuePositions()
	}
}

// LeaveQueue 离开匹配队列
func (m *Manager) LeaveQueue(client types.ClientInterface) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.removeFromQueue(client) {
		log.Printf("🔍 玩家 %s 离开匹配队列", client.GetName())
		m.notifyQueuePositions()
	}
}

// inQueue 调用方必须持有 m.mu
func (m *Manager) inQueue(client types.ClientInterface) bool {
	for _, c := range m.queue {
		if c.GetID() == client.GetID() {
			return true
		}
	}
	return false
}

// removeFromQueue 调用方必须持有 m.mu
func (m *Manager) removeFromQueue(client types.ClientInterface) bool {
	for i, c := range m.queue {
		if c.GetID() == client.GetID() {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return true
		}
	}
	return false
}

// notifyQueuePositions 调用方必须持有 m.mu
func (m *Manager) notifyQueuePositions() {
	total := len(m.queue)
	for i, c := range m.queue {
		c.SendMessage(codec.MustNewMessage(protocol.MsgWaiting, protocol.WaitingPayload{
			Position: i + 1,
			Total:    total,
		}))
	}
}

// startRoom 用队列里取出的三人开一桌。调用方必须持有 m.mu。
func (m *Manager) startRoom(trio [3]types.ClientInterface) {
	var seats [3]gameroom.Seat
	for i, c := range trio {
		seats[i] = gameroom.Seat{UserID: c.GetUserID(), Name: c.GetName()}
	}

	id := uuid.New().String()
	r := gameroom.NewRoom(id, seats)

	t := &table{room: r, clients: trio}
	m.tables[id] = t
	for i, c := range trio {
		m.seats[c.GetID()] = seatRef{roomID: id, seat: i}
	}

	log.Printf("🎮 匹配成功！房间 %s，玩家: %s, %s, %s",
		id, trio[0].GetName(), trio[1].GetName(), trio[2].GetName())

	m.sendDeal(t, protocol.MsgGameStart)
	m.scheduleTurnTimerLocked(id)
}

// sendDeal 给每个座位发各自视角的牌局。开局和重新发牌共用。
func (m *Manager) sendDeal(t *table, msgType protocol.MessageType) {
	names := t.room.Names()
	sizes := t.room.HandSizes()

	for i, c := range t.clients {
		myCards := convert.CardsToInfos(t.room.Hand(i))
		if msgType == protocol.MsgRedeal {
			c.SendMessage(codec.MustNewMessage(protocol.MsgRedeal, protocol.RedealPayload{
				MyCards:       myCards,
				LandlordCards: convert.HiddenCards(3),
				FirstBidder:   t.room.CurrentBidder(),
				HandSizes:     sizes,
			}))
			continue
		}
		c.SendMessage(codec.MustNewMessage(protocol.MsgGameStart, protocol.GameStartPayload{
			RoomID:        t.room.ID,
			MyCards:       myCards,
			LandlordCards: convert.HiddenCards(3),
			MyIndex:       i,
			PlayerNames:   names,
			FirstBidder:   t.room.CurrentBidder(),
			HandSizes:     sizes,
		}))
	}
}

// lookup 返回连接所在的桌子和座位。没有入座的连接返回 nil。
func (m *Manager) lookup(client types.ClientInterface) (*table, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ref, ok := m.seats[client.GetID()]
	if !ok {
		return nil, 0
	}
	t, ok := m.tables[ref.roomID]
	if !ok {
		return nil, 0
	}
	return t, ref.seat
}

// HandleBid 处理叫地主消息。未入座的连接直接忽略。
func (m *Manager) HandleBid(client types.ClientInterface, bid bool) {
	t, seat := m.lookup(client)
	if t == nil {
		return
	}

	result, err := t.room.Bid(seat, bid)
	if err != nil {
		m.sendGameError(client, err)
		return
	}

	displayText := "不叫"
	if bid {
		displayText = "叫地主"
	}

	nextBidder := -1
	if result.Outcome == gameroom.BidContinue {
		nextBidder = result.NextBidder
	}
	t.broadcast(codec.MustNewMessage(protocol.MsgBidUpdate, protocol.BidUpdatePayload{
		PlayerIndex: result.Seat,
		Bid:         result.Bid,
		DisplayText: displayText,
		HighestBid:  result.HighestBid,
		Done:        result.Outcome != gameroom.BidContinue,
		NextBidder:  nextBidder,
	}))

	switch result.Outcome {
	case gameroom.BidContinue:
		m.scheduleTurnTimer(t.room.ID)

	case gameroom.BidFinalized:
		m.finalizeBidding(t, result.LandlordIndex)

	case gameroom.BidRedeal:
		log.Printf("🔄 房间 %s 无人叫地主，重新发牌", t.room.ID)
		m.sendDeal(t, protocol.MsgRedeal)
		m.scheduleTurnTimer(t.room.ID)
	}
}

// finalizeBidding 揭示底牌并通知地主确定，地主先出牌
func (m *Manager) finalizeBidding(t *table, landlord int) {
	bottom := convert.CardsToInfos(t.room.Bottom())
	sizes := t.room.HandSizes()

	for i, c := range t.clients {
		payload := protocol.BidFinalizedPayload{
			LandlordIndex: landlord,
			LandlordCards: bottom,
			HandSizes:     sizes,
		}
		if i == landlord {
			// 只有地主能看到并入底牌后的完整手牌
			payload.MyCards = convert.CardsToInfos(t.room.Hand(i))
		}
		c.SendMessage(codec.MustNewMessage(protocol.MsgBidFinalized, payload))
	}

	log.Printf("👑 房间 %s 地主确定: %s (座位 %d)", t.room.ID, t.clients[landlord].GetName(), landlord)
	m.scheduleTurnTimer(t.room.ID)
}

// HandlePlayCards 处理出牌消息
func (m *Manager) HandlePlayCards(client types.ClientInterface, cardIDs []string) {
	t, seat := m.lookup(client)
	if t == nil {
		return
	}

	result, err := t.room.Play(seat, cardIDs)
	if err != nil {
		m.sendGameError(client, err)
		return
	}

	t.broadcast(codec.MustNewMessage(protocol.MsgPlayUpdate, protocol.PlayUpdatePayload{
		PlayerIndex:    result.Seat,
		Cards:          convert.CardsToInfos(result.Cards),
		HandType:       result.Hand.Type.String(),
		HandSize:       result.HandSize,
		NextPlayer:     result.NextPlayer,
		BombMultiplier: result.Multiplier,
		CanBeat:        result.NextCanBeat,
		MustPlay:       result.NextMustPlay,
	}))

	if result.GameOver {
		m.finishGame(t, result)
		return
	}
	m.scheduleTurnTimer(t.room.ID)
}

// HandlePass 处理不出消息
func (m *Manager) HandlePass(client types.ClientInterface) {
	t, seat := m.lookup(client)
	if t == nil {
		return
	}

	result, err := t.room.Pass(seat)
	if err != nil {
		m.sendGameError(client, err)
		return
	}

	t.broadcast(codec.MustNewMessage(protocol.MsgPassUpdate, protocol.PassUpdatePayload{
		PlayerIndex: result.Seat,
		NextPlayer:  result.NextPlayer,
		IsNewRound:  result.NewRound,
		PassCount:   result.PassCount,
		CanBeat:     result.NextCanBeat,
		MustPlay:    result.NextMustPlay,
	}))
	m.scheduleTurnTimer(t.room.ID)
}

// finishGame 广播终局、记录战绩并安排延迟清理
func (m *Manager) finishGame(t *table, result *gameroom.PlayResult) {
	landlord := t.room.Landlord()

	t.broadcast(codec.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
		WinnerIndex:    result.WinnerSeat,
		LandlordIndex:  landlord,
		IsLandlordWin:  result.LandlordWin,
		LastCards:      convert.CardsToInfos(result.Cards),
		LastHandType:   result.Hand.Type.String(),
		BombMultiplier: result.Multiplier,
	}))

	role := "农民"
	if result.LandlordWin {
		role = "地主"
	}
	log.Printf("🏁 房间 %s 结束，%s (%s) 获胜，倍数 x%d",
		t.room.ID, t.clients[result.WinnerSeat].GetName(), role, result.Multiplier)

	if m.recorder != nil {
		var ids [3]storage.Identity
		for i, s := range t.room.Seats() {
			ids[i] = storage.Identity{UserID: s.UserID, Name: s.Name}
		}
		matchResult := storage.MatchResult{
			Seats:        ids,
			WinnerSeat:   result.WinnerSeat,
			LandlordSeat: landlord,
			Multiplier:   result.Multiplier,
		}
		go func() {
			if err := m.recorder.RecordResult(context.Background(), matchResult); err != nil {
				log.Printf("⚠️ 记录战绩失败: %v", err)
			}
		}()
	}

	// 留出终局消息的投递时间再清理房间
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTurnTimerLocked(t)
	roomID := t.room.ID
	t.lingerTimer = time.AfterFunc(m.game.GameOverLingerDuration(), func() {
		m.removeRoom(roomID)
	})
}

// Disconnect 连接断开：出队或解散所在房间。
// 游戏结束前少一个座位就无法继续，提前退出按认输处理。
func (m *Manager) Disconnect(client types.ClientInterface) {
	m.mu.Lock()

	if m.removeFromQueue(client) {
		m.notifyQueuePositions()
		m.mu.Unlock()
		return
	}

	ref, seated := m.seats[client.GetID()]
	if !seated {
		m.mu.Unlock()
		return
	}
	delete(m.seats, client.GetID())

	t, ok := m.tables[ref.roomID]
	m.mu.Unlock()
	if !ok {
		return
	}

	if t.room.Phase() != gameroom.PhaseGameOver {
		log.Printf("👋 玩家 %s 离开房间 %s (座位 %d)，房间解散", client.GetName(), ref.roomID, ref.seat)
		left := codec.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
			PlayerIndex: ref.seat,
		})
		for i, c := range t.clients {
			if i != ref.seat {
				c.SendMessage(left)
			}
		}
		m.removeRoom(ref.roomID)
	}
}

// removeRoom 从活跃集合中移除房间并注销所有座位
func (m *Manager) removeRoom(roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[roomID]
	if !ok {
		return
	}
	m.stopTurnTimerLocked(t)
	if t.lingerTimer != nil {
		t.lingerTimer.Stop()
	}
	delete(m.tables, roomID)
	for _, c := range t.clients {
		if ref, ok := m.seats[c.GetID()]; ok && ref.roomID == roomID {
			delete(m.seats, c.GetID())
		}
	}
	log.Printf("🧹 房间 %s 已清理", roomID)
}

// sendGameError 把规则错误只回给出错的连接
func (m *Manager) sendGameError(client types.ClientInterface, err error) {
	if ge, ok := err.(*gameroom.GameError); ok {
		client.SendMessage(codec.NewErrorMessageWithText(ge.Code, ge.Message))
		return
	}
	client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeUnknown))
}

// ActiveRoomCount 活跃房间数，优雅关停时轮询
func (m *Manager) ActiveRoomCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, t := range m.tables {
		if t.room.Phase() != gameroom.PhaseGameOver {
			count++
		}
	}
	return count
}

// QueueLength 当前队列长度
func (m *Manager) QueueLength() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
