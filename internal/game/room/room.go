package room

import (
	"sync"

	"github.com/cardtable/doudizhu-server/internal/game/card"
	"github.com/cardtable/doudizhu-server/internal/game/rule"
)

// Phase 房间阶段。单调推进 bidding → playing → gameOver，
// 唯一的例外是无人叫地主时重新发牌回到 bidding。
type Phase int

const (
	PhaseBidding Phase = iota
	PhasePlaying
	PhaseGameOver
)

// phaseNames 阶段名称映射表
var phaseNames = map[Phase]string{
	PhaseBidding:  "bidding",
	PhasePlaying:  "playing",
	PhaseGameOver: "gameOver",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// 叫地主封顶分数，叫到 3 分立即成为地主
const maxBid = 3

// Seat 座位上的玩家身份，房间创建后不再变动
type Seat struct {
	UserID string
	Name   string
}

// lastPlay 本轮的参照牌
type lastPlay struct {
	hand rule.ParsedHand
	seat int
}

// Room 一局完整的游戏：从发牌到结束。
// 所有状态变更都在房间自己的锁内完成，房间不接触任何传输层。
type Room struct {
	ID    string
	seats [3]Seat

	hands  [3][]card.Card
	bottom []card.Card

	phase Phase

	// 叫地主相关
	currentBidder int
	highestBid    int
	highestBidder int // -1 表示还没人叫
	bidCount      int

	// 出牌相关
	currentPlayer int
	last          *lastPlay
	passCount     int
	multiplier    int // 炸弹倍数，出一次炸弹或王炸翻一倍
	landlord      int // -1 表示地主未确定

	// 结局
	winner      int
	landlordWin bool

	mu sync.Mutex
}

// NewRoom 创建房间并立即发牌进入叫地主阶段
func NewRoom(id string, seats [3]Seat) *Room {
	r := &Room{
		ID:    id,
		seats: seats,
	}
	r.deal()
	return r
}

// deal 洗牌、发牌并重置叫地主进度。重新发牌也走这里。
func (r *Room) deal() {
	deck := card.NewDeck()
	deck.Shuffle()

	for i := 0; i < 3; i++ {
		hand := make([]card.Card, 17)
		copy(hand, deck[i*17:(i+1)*17])
		card.Sort(hand)
		r.hands[i] = hand
	}
	r.bottom = append([]card.Card(nil), deck[51:]...)

	r.phase = PhaseBidding
	r.currentBidder = 0
	r.highestBid = 0
	r.highestBidder = -1
	r.bidCount = 0

	r.currentPlayer = 0
	r.last = nil
	r.passCount = 0
	r.multiplier = 1
	r.landlord = -1
	r.winner = -1
}

// isNewTrick 是否新一轮（没有需要压制的参照牌）
func (r *Room) isNewTrick() bool {
	return r.last == nil || r.passCount >= 2
}

// --- 只读访问器，供管理器广播和定时器使用 ---

// Phase 当前阶段
func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// CurrentBidder 当前叫地主的座位
func (r *Room) CurrentBidder() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentBidder
}

// CurrentPlayer 当前出牌的座位
func (r *Room) CurrentPlayer() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentPlayer
}

// Landlord 地主座位，未确定时为 -1
func (r *Room) Landlord() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.landlord
}

// Names 三个座位的昵称
func (r *Room) Names() [3]string {
	var names [3]string
	for i, s := range r.seats {
		names[i] = s.Name
	}
	return names
}

// Seats 三个座位的玩家身份
func (r *Room) Seats() [3]Seat {
	return r.seats
}

// Hand 某个座位的手牌快照
func (r *Room) Hand(seat int) []card.Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]card.Card(nil), r.hands[seat]...)
}

// HandSizes 三个座位的手牌数量
func (r *Room) HandSizes() [3]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handSizes()
}

func (r *Room) handSizes() [3]int {
	var sizes [3]int
	for i, h := range r.hands {
		sizes[i] = len(h)
	}
	return sizes
}

// Bottom 三张底牌快照
func (r *Room) Bottom() []card.Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]card.Card(nil), r.bottom...)
}

// LastPlay 当前参照牌。新一轮时返回零值
func (r *Room) LastPlay() rule.ParsedHand {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return rule.ParsedHand{}
	}
	return r.last.hand
}

// Multiplier 当前炸弹倍数
func (r *Room) Multiplier() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.multiplier
}
