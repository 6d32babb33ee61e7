package draft

import (
	"slices"
	"time"
)

// BanRecord is one banned item. Phase is the label clients key on,
// "phase1" for ban1 and "phase2" for ban2.
type BanRecord struct {
	ItemID   string `json:"itemId"`
	Phase    string `json:"phase"`
	BannedBy int    `json:"bannedBy"`
}

// PickRecord is one picked item. Order is 1-based and strictly increasing
// across the whole draft.
type PickRecord struct {
	ItemID   string `json:"itemId"`
	PickedBy int    `json:"pickedBy"`
	Order    int    `json:"order"`
}

// Tally counts actions per player within one phase.
type Tally struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

func (t Tally) of(player int) int {
	if player == 1 {
		return t.Player1
	}
	return t.Player2
}

func (t *Tally) add(player int) {
	if player == 1 {
		t.Player1++
	} else {
		t.Player2++
	}
}

// Session is the live state of one draft. It is replaced wholesale on every
// start and discarded on reset; there is no partial reconstruction.
type Session struct {
	Phase         Phase        `json:"phase"`
	CurrentPlayer int          `json:"currentPlayer"`
	Bans          []BanRecord  `json:"bans"`
	Picks         []PickRecord `json:"picks"`
	Player1Picks  []string     `json:"player1Picks"`
	Player2Picks  []string     `json:"player2Picks"`
	BansPhase1    Tally        `json:"bansPhase1"`
	BansPhase2    Tally        `json:"bansPhase2"`
	PicksPhase1   Tally        `json:"picksPhase1"`
	PicksPhase2   Tally        `json:"picksPhase2"`
	StartedAt     time.Time    `json:"startedAt"`
}

// NewSession starts a fresh draft at ban1 with player 1 to act. Zero-quota
// ban configs are settled immediately so the opening turn always belongs to
// a player who has something to do.
func NewSession(cfg Config) *Session {
	s := &Session{
		Phase:         PhaseBan1,
		CurrentPlayer: 1,
		Bans:          []BanRecord{},
		Picks:         []PickRecord{},
		Player1Picks:  []string{},
		Player2Picks:  []string{},
		StartedAt:     time.Now(),
	}
	if s.banPhaseDone(cfg) {
		s.enterNextPhase(cfg)
	} else if cfg.bansNeeded(PhaseBan1, 1) == 0 {
		s.CurrentPlayer = 2
	}
	return s
}

// Ban validates and applies one ban for the given player, then advances the
// turn. The session is untouched when an error is returned.
func (s *Session) Ban(cfg Config, player int, itemID string) error {
	if player != 1 && player != 2 {
		return ErrNotAPlayer
	}
	if s.Phase == PhaseComplete {
		return ErrWrongPhase
	}
	if s.CurrentPlayer != player {
		return ErrNotYourTurn
	}
	if s.Phase != PhaseBan1 && s.Phase != PhaseBan2 {
		return ErrWrongPhase
	}
	if s.isBanned(itemID) {
		return ErrItemAlreadyBanned
	}
	if s.isPicked(itemID) {
		return ErrItemAlreadyPicked
	}

	label := "phase1"
	tally := &s.BansPhase1
	if s.Phase == PhaseBan2 {
		label = "phase2"
		tally = &s.BansPhase2
	}
	s.Bans = append(s.Bans, BanRecord{ItemID: itemID, Phase: label, BannedBy: player})
	tally.add(player)
	s.advance(cfg)
	return nil
}

// Pick validates and applies one pick for the given player, then advances
// the turn. The session is untouched when an error is returned.
func (s *Session) Pick(cfg Config, player int, itemID string) error {
	if player != 1 && player != 2 {
		return ErrNotAPlayer
	}
	if s.Phase == PhaseComplete {
		return ErrWrongPhase
	}
	if s.CurrentPlayer != player {
		return ErrNotYourTurn
	}
	if s.Phase != PhasePick1 && s.Phase != PhasePick2 {
		return ErrWrongPhase
	}
	if s.isBanned(itemID) {
		return ErrItemAlreadyBanned
	}
	if s.isPicked(itemID) {
		return ErrItemAlreadyPicked
	}

	s.Picks = append(s.Picks, PickRecord{ItemID: itemID, PickedBy: player, Order: len(s.Picks) + 1})
	if player == 1 {
		s.Player1Picks = append(s.Player1Picks, itemID)
	} else {
		s.Player2Picks = append(s.Player2Picks, itemID)
	}
	tally := &s.PicksPhase1
	if s.Phase == PhasePick2 {
		tally = &s.PicksPhase2
	}
	tally.add(player)
	s.advance(cfg)
	return nil
}

func (s *Session) isBanned(itemID string) bool {
	return slices.ContainsFunc(s.Bans, func(b BanRecord) bool { return b.ItemID == itemID })
}

func (s *Session) isPicked(itemID string) bool {
	return slices.ContainsFunc(s.Picks, func(p PickRecord) bool { return p.ItemID == itemID })
}
