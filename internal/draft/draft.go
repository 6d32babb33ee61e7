// Package draft implements the ban/pick state machine for a two-player
// draft: quotas, turn order, and the fixed phase sequence
// ban1 -> pick1 -> ban2 -> pick2 -> complete.
package draft

import "errors"

var ErrBothPlayersRequired = errors.New("both players required")
var ErrNotAPlayer = errors.New("not a seated player")
var ErrNoActiveSession = errors.New("no active draft")
var ErrNotYourTurn = errors.New("not your turn")
var ErrWrongPhase = errors.New("wrong phase for this action")
var ErrItemAlreadyBanned = errors.New("item already banned")
var ErrItemAlreadyPicked = errors.New("item already picked")

type Phase string

const (
	PhaseBan1     Phase = "ban1"
	PhasePick1    Phase = "pick1"
	PhaseBan2     Phase = "ban2"
	PhasePick2    Phase = "pick2"
	PhaseComplete Phase = "complete"
)

// DefaultPickQuota is the per-player pick count for each pick phase unless
// the config overrides it.
const DefaultPickQuota = 3

// Config holds the tunables for a single draft. Timer values are broadcast
// to clients for display; the server does not enforce them.
type Config struct {
	BansPhase1        int `json:"bansPhase1"`
	BansPhase2        int `json:"bansPhase2"`
	BalanceBans       int `json:"balanceBans"`
	BalanceBansPlayer int `json:"balanceBansPlayer"`
	PickQuotaPhase1   int `json:"pickQuotaPhase1"`
	PickQuotaPhase2   int `json:"pickQuotaPhase2"`
	BanTimerSec       int `json:"banTimerSec"`
	PickTimerSec      int `json:"pickTimerSec"`
}

func DefaultConfig() Config {
	return Config{
		BansPhase1:        3,
		BansPhase2:        2,
		BalanceBans:       0,
		BalanceBansPlayer: 1,
		PickQuotaPhase1:   DefaultPickQuota,
		PickQuotaPhase2:   DefaultPickQuota,
		BanTimerSec:       30,
		PickTimerSec:      30,
	}
}

// Normalized clamps negative quotas and fills in defaults so the transition
// logic never sees a nonsensical config.
func (c Config) Normalized() Config {
	if c.BansPhase1 < 0 {
		c.BansPhase1 = 0
	}
	if c.BansPhase2 < 0 {
		c.BansPhase2 = 0
	}
	if c.BalanceBans < 0 {
		c.BalanceBans = 0
	}
	if c.BalanceBansPlayer != 1 && c.BalanceBansPlayer != 2 {
		c.BalanceBansPlayer = 1
	}
	if c.PickQuotaPhase1 <= 0 {
		c.PickQuotaPhase1 = DefaultPickQuota
	}
	if c.PickQuotaPhase2 <= 0 {
		c.PickQuotaPhase2 = DefaultPickQuota
	}
	if c.BanTimerSec < 0 {
		c.BanTimerSec = 0
	}
	if c.PickTimerSec < 0 {
		c.PickTimerSec = 0
	}
	return c
}

// bansNeeded is the ban quota for one player in the given ban phase. Balance
// bans extend the phase-1 quota of the designated player only.
func (c Config) bansNeeded(phase Phase, player int) int {
	switch phase {
	case PhaseBan1:
		n := c.BansPhase1
		if player == c.BalanceBansPlayer {
			n += c.BalanceBans
		}
		return n
	case PhaseBan2:
		return c.BansPhase2
	}
	return 0
}

func (c Config) pickQuota(phase Phase) int {
	if phase == PhasePick2 {
		return c.PickQuotaPhase2
	}
	return c.PickQuotaPhase1
}
