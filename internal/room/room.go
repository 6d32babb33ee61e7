// Package room owns the single live draft room: the two seats, the draft
// config, and the session. All mutation happens on one goroutine fed by an
// inbox channel, so every intent is validated and applied atomically.
package room

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/draftloop/draft-backend/internal/draft"
)

var ErrNoSuchSeat = errors.New("no such seat")
var ErrSeatTaken = errors.New("seat already taken")
var ErrDraftInProgress = errors.New("draft in progress")

type Msg interface{ isRoomMsg() }

type Join struct {
	ClientID string
	Name     string
	Outbox   chan Outbound // where this client receives snapshots and errors
}

func (Join) isRoomMsg() {}

type Leave struct{ ClientID string }

func (Leave) isRoomMsg() {}

type TakeSeat struct {
	ClientID string
	Seat     int // 1 or 2
}

func (TakeSeat) isRoomMsg() {}

type LeaveSeat struct{ ClientID string }

func (LeaveSeat) isRoomMsg() {}

type SetConfig struct {
	ClientID string
	Config   draft.Config
}

func (SetConfig) isRoomMsg() {}

type StartDraft struct{ ClientID string }

func (StartDraft) isRoomMsg() {}

type ResetDraft struct{ ClientID string }

func (ResetDraft) isRoomMsg() {}

type BanItem struct {
	ClientID string
	ItemID   string
}

func (BanItem) isRoomMsg() {}

type PickItem struct {
	ClientID string
	ItemID   string
}

func (PickItem) isRoomMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

// Outbound is one message to one client: either a broadcast snapshot or a
// validation error addressed to that client alone.
type Outbound struct {
	Snapshot *Snapshot
	Err      error
}

type Seat struct {
	ClientID string `json:"clientId"`
	Name     string `json:"name"`
}

// Snapshot is the full room state sent after every successful mutation.
// Clients and spectators can always rebuild their view from the latest one.
type Snapshot struct {
	Version int            `json:"version"`
	Player1 *Seat          `json:"player1"`
	Player2 *Seat          `json:"player2"`
	Config  draft.Config   `json:"config"`
	Session *draft.Session `json:"session"`
}

// View reflects internal state for tests without data races.
type View struct {
	Version    int
	NumClients int
	Snapshot   Snapshot
}

type Room struct {
	inbox   chan Msg
	log     *zap.Logger
	cfg     draft.Config
	session *draft.Session
	seats   [2]*Seat
	clients map[string]chan Outbound
	names   map[string]string
	version int
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(parent context.Context, cfg draft.Config, log *zap.Logger) *Room {
	ctx, cancel := context.WithCancel(parent)
	r := &Room{
		inbox:   make(chan Msg, 64),
		log:     log,
		cfg:     cfg.Normalized(),
		clients: make(map[string]chan Outbound),
		names:   make(map[string]string),
		ctx:     ctx,
		cancel:  cancel,
	}
	go r.loop()
	return r
}

func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return
		case m := <-r.inbox:
			if _, ok := m.(Shutdown); ok {
				r.shutdown()
				return
			}
			r.handle(m)
		}
	}
}

func (r *Room) handle(m Msg) {
	switch msg := m.(type) {
	case Join:
		r.clients[msg.ClientID] = msg.Outbox
		r.names[msg.ClientID] = msg.Name
		snap := r.snapshot()
		r.send(msg.ClientID, Outbound{Snapshot: &snap})

	case Leave:
		if ch, ok := r.clients[msg.ClientID]; ok {
			close(ch)
			delete(r.clients, msg.ClientID)
			delete(r.names, msg.ClientID)
		}
		if r.freeSeat(msg.ClientID) {
			r.broadcast()
		}

	case TakeSeat:
		if r.clients[msg.ClientID] == nil {
			return // unknown client, nothing to answer
		}
		if msg.Seat != 1 && msg.Seat != 2 {
			r.sendErr(msg.ClientID, ErrNoSuchSeat)
			return
		}
		cur := r.seats[msg.Seat-1]
		if cur != nil && cur.ClientID != msg.ClientID {
			r.sendErr(msg.ClientID, ErrSeatTaken)
			return
		}
		name := r.names[msg.ClientID]
		if name == "" {
			name = msg.ClientID
		}
		r.freeSeat(msg.ClientID)
		r.seats[msg.Seat-1] = &Seat{ClientID: msg.ClientID, Name: name}
		r.broadcast()

	case LeaveSeat:
		if r.freeSeat(msg.ClientID) {
			r.broadcast()
		}

	case SetConfig:
		if r.playerNumber(msg.ClientID) == 0 {
			r.sendErr(msg.ClientID, draft.ErrNotAPlayer)
			return
		}
		if r.session != nil && r.session.Phase != draft.PhaseComplete {
			r.sendErr(msg.ClientID, ErrDraftInProgress)
			return
		}
		r.cfg = msg.Config.Normalized()
		r.broadcast()

	case StartDraft:
		if r.playerNumber(msg.ClientID) == 0 {
			r.sendErr(msg.ClientID, draft.ErrNotAPlayer)
			return
		}
		if r.seats[0] == nil || r.seats[1] == nil {
			r.sendErr(msg.ClientID, draft.ErrBothPlayersRequired)
			return
		}
		// starting again always wins: any prior session is discarded
		r.session = draft.NewSession(r.cfg)
		r.log.Info("draft started",
			zap.String("player1", r.seats[0].Name),
			zap.String("player2", r.seats[1].Name))
		r.broadcast()

	case ResetDraft:
		if r.playerNumber(msg.ClientID) == 0 {
			r.sendErr(msg.ClientID, draft.ErrNotAPlayer)
			return
		}
		r.session = nil
		r.broadcast()

	case BanItem:
		r.act(msg.ClientID, msg.ItemID, (*draft.Session).Ban)

	case PickItem:
		r.act(msg.ClientID, msg.ItemID, (*draft.Session).Pick)

	case GetState:
		msg.Reply <- View{
			Version:    r.version,
			NumClients: len(r.clients),
			Snapshot:   r.snapshot(),
		}
	}
}

// act runs one ban or pick as a single validate-then-mutate step. The turn
// check happens here, inside the actor goroutine, so simultaneous attempts
// from both players are serialized before being judged.
func (r *Room) act(clientID, itemID string, op func(*draft.Session, draft.Config, int, string) error) {
	player := r.playerNumber(clientID)
	if player == 0 {
		r.sendErr(clientID, draft.ErrNotAPlayer)
		return
	}
	if r.session == nil {
		r.sendErr(clientID, draft.ErrNoActiveSession)
		return
	}
	if err := op(r.session, r.cfg, player, itemID); err != nil {
		r.sendErr(clientID, err)
		return
	}
	r.broadcast()
}

func (r *Room) playerNumber(clientID string) int {
	for i, seat := range r.seats {
		if seat != nil && seat.ClientID == clientID {
			return i + 1
		}
	}
	return 0
}

func (r *Room) freeSeat(clientID string) bool {
	for i, seat := range r.seats {
		if seat != nil && seat.ClientID == clientID {
			r.seats[i] = nil
			return true
		}
	}
	return false
}

func (r *Room) snapshot() Snapshot {
	return Snapshot{
		Version: r.version,
		Player1: r.seats[0],
		Player2: r.seats[1],
		Config:  r.cfg,
		Session: r.session,
	}
}

func (r *Room) broadcast() {
	r.version++
	snap := r.snapshot()
	for id := range r.clients {
		r.send(id, Outbound{Snapshot: &snap})
	}
}

func (r *Room) sendErr(clientID string, err error) {
	r.send(clientID, Outbound{Err: err})
}

// send delivers without blocking the actor loop.
func (r *Room) send(clientID string, ob Outbound) {
	ch, ok := r.clients[clientID]
	if !ok {
		return
	}
	select {
	case ch <- ob:
	default:
		// client is slow/full - drop them
		r.log.Warn("dropping slow client", zap.String("client", clientID))
		close(ch)
		delete(r.clients, clientID)
		delete(r.names, clientID)
		r.freeSeat(clientID)
	}
}

func (r *Room) shutdown() {
	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
	r.cancel()
}
