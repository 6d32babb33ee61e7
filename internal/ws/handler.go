package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/draftloop/draft-backend/internal/auth"
	"github.com/draftloop/draft-backend/internal/room"
	"github.com/draftloop/draft-backend/internal/types"
)

// Handler upgrades the connection and bridges it to the room actor.
// Anyone may spectate; taking a seat requires a logged-in user.
func Handler(rm *room.Room, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := randID(8)
		name := "spectator-" + clientID
		if user != nil {
			name = user.Username
		}

		out := make(chan room.Outbound, 8)
		rm.Inbox() <- room.Join{ClientID: clientID, Name: name, Outbox: out}
		defer func() { rm.Inbox() <- room.Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for ob := range out {
				msg := types.ServerMessage{Type: "StateSnapshot", Snapshot: ob.Snapshot}
				if ob.Err != nil {
					msg = types.ServerMessage{Type: "Error", Error: ob.Err.Error()}
				}
				payload, err := json.Marshal(msg)
				if err != nil {
					log.Error("marshal server message", zap.Error(err))
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			if cm.Type == "TakeSeat" && user == nil {
				writeError(r.Context(), conn, "login required to take a seat")
				continue
			}

			msg, ok := toRoomMsg(clientID, cm)
			if !ok {
				writeError(r.Context(), conn, "unknown type")
				continue
			}
			rm.Inbox() <- msg
		}
	}
}

func toRoomMsg(clientID string, m types.ClientMessage) (room.Msg, bool) {
	switch m.Type {
	case "TakeSeat":
		return room.TakeSeat{ClientID: clientID, Seat: m.Seat}, true
	case "LeaveSeat":
		return room.LeaveSeat{ClientID: clientID}, true
	case "StartDraft":
		return room.StartDraft{ClientID: clientID}, true
	case "ResetDraft":
		return room.ResetDraft{ClientID: clientID}, true
	case "Ban":
		return room.BanItem{ClientID: clientID, ItemID: m.ItemID}, true
	case "Pick":
		return room.PickItem{ClientID: clientID, ItemID: m.ItemID}, true
	case "SetConfig":
		if m.Config == nil {
			return nil, false
		}
		return room.SetConfig{ClientID: clientID, Config: *m.Config}, true
	default:
		return nil, false
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, msg string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: "Error", Error: msg})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
