package types

import (
	"github.com/draftloop/draft-backend/internal/draft"
	"github.com/draftloop/draft-backend/internal/room"
)

type ClientMessage struct {
	Type   string        `json:"type"`
	Seat   int           `json:"seat,omitempty"`
	ItemID string        `json:"itemId,omitempty"`
	Config *draft.Config `json:"config,omitempty"`
}

type ServerMessage struct {
	Type     string         `json:"type"` // "StateSnapshot" | "Error"
	Snapshot *room.Snapshot `json:"snapshot,omitempty"`
	Error    string         `json:"error,omitempty"`
}
