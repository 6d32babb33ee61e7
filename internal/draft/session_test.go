package draft

import (
	"errors"
	"fmt"
	"testing"
)

func testConfig() Config {
	return Config{
		BansPhase1:        1,
		BansPhase2:        1,
		BalanceBansPlayer: 1,
		PickQuotaPhase1:   3,
		PickQuotaPhase2:   3,
	}
}

func mustBan(t *testing.T, s *Session, cfg Config, player int, itemID string) {
	t.Helper()
	if err := s.Ban(cfg, player, itemID); err != nil {
		t.Fatalf("ban %q by player %d: %v", itemID, player, err)
	}
}

func mustPick(t *testing.T, s *Session, cfg Config, player int, itemID string) {
	t.Helper()
	if err := s.Pick(cfg, player, itemID); err != nil {
		t.Fatalf("pick %q by player %d: %v", itemID, player, err)
	}
}

// drainBans plays whoever is on turn through the current ban phase.
func drainBans(t *testing.T, s *Session, cfg Config, prefix string) {
	t.Helper()
	for i := 0; s.Phase == PhaseBan1 || s.Phase == PhaseBan2; i++ {
		mustBan(t, s, cfg, s.CurrentPlayer, fmt.Sprintf("%s-%d", prefix, i))
	}
}

func checkInvariants(t *testing.T, s *Session) {
	t.Helper()
	seen := map[string]bool{}
	for _, b := range s.Bans {
		if seen[b.ItemID] {
			t.Fatalf("item %q appears twice", b.ItemID)
		}
		seen[b.ItemID] = true
	}
	for i, p := range s.Picks {
		if seen[p.ItemID] {
			t.Fatalf("item %q appears twice", p.ItemID)
		}
		seen[p.ItemID] = true
		if p.Order != i+1 {
			t.Fatalf("pick %q: order %d at index %d", p.ItemID, p.Order, i)
		}
	}
	var p1, p2 int
	for _, p := range s.Picks {
		if p.PickedBy == 1 {
			if s.Player1Picks[p1] != p.ItemID {
				t.Fatalf("player1Picks out of sync at %d", p1)
			}
			p1++
		} else {
			if s.Player2Picks[p2] != p.ItemID {
				t.Fatalf("player2Picks out of sync at %d", p2)
			}
			p2++
		}
	}
	if p1 != len(s.Player1Picks) || p2 != len(s.Player2Picks) {
		t.Fatalf("derived pick lists have extra entries")
	}
}

func TestNewSessionStartsAtBan1(t *testing.T) {
	s := NewSession(testConfig())
	if s.Phase != PhaseBan1 || s.CurrentPlayer != 1 {
		t.Fatalf("got phase=%s player=%d, want ban1/1", s.Phase, s.CurrentPlayer)
	}
	if len(s.Bans) != 0 || len(s.Picks) != 0 {
		t.Fatalf("fresh session is not empty")
	}
	if s.StartedAt.IsZero() {
		t.Fatalf("startedAt not set")
	}
}

func TestBanPhaseAlternatesThenAdvances(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg)

	mustBan(t, s, cfg, 1, "azumarill")
	if s.Phase != PhaseBan1 || s.CurrentPlayer != 2 {
		t.Fatalf("after first ban: phase=%s player=%d", s.Phase, s.CurrentPlayer)
	}

	mustBan(t, s, cfg, 2, "garchomp")
	if s.Phase != PhasePick1 || s.CurrentPlayer != 1 {
		t.Fatalf("after second ban: phase=%s player=%d, want pick1/1", s.Phase, s.CurrentPlayer)
	}
}

func TestBalanceBansRouteBackToOwner(t *testing.T) {
	cfg := testConfig()
	cfg.BalanceBans = 1
	cfg.BalanceBansPlayer = 1
	s := NewSession(cfg)

	mustBan(t, s, cfg, 1, "a")
	if s.CurrentPlayer != 2 {
		t.Fatalf("want player 2 on turn, got %d", s.CurrentPlayer)
	}
	mustBan(t, s, cfg, 2, "b")
	// player 2 met their quota, so the turn must route back to player 1
	if s.Phase != PhaseBan1 || s.CurrentPlayer != 1 {
		t.Fatalf("after player 2 is done: phase=%s player=%d, want ban1/1", s.Phase, s.CurrentPlayer)
	}
	mustBan(t, s, cfg, 1, "c")
	if s.Phase != PhasePick1 || s.CurrentPlayer != 1 {
		t.Fatalf("after balance ban spent: phase=%s player=%d, want pick1/1", s.Phase, s.CurrentPlayer)
	}
	if s.BansPhase1.Player1 != 2 || s.BansPhase1.Player2 != 1 {
		t.Fatalf("tally %+v, want 2/1", s.BansPhase1)
	}
}

func TestBalanceBansForPlayer2SkipPlayer1(t *testing.T) {
	cfg := testConfig()
	cfg.BalanceBans = 2
	cfg.BalanceBansPlayer = 2
	s := NewSession(cfg)

	wantTurns := []int{1, 2, 2, 2}
	for i, want := range wantTurns {
		if s.CurrentPlayer != want {
			t.Fatalf("ban %d: player %d on turn, want %d", i, s.CurrentPlayer, want)
		}
		mustBan(t, s, cfg, want, fmt.Sprintf("ban-%d", i))
	}
	if s.Phase != PhasePick1 {
		t.Fatalf("phase %s, want pick1", s.Phase)
	}
}

func TestPick1SnakeOrder(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg)
	drainBans(t, s, cfg, "ban")

	wantTurns := []int{1, 2, 2, 1, 1, 2}
	for i, want := range wantTurns {
		if s.Phase != PhasePick1 {
			t.Fatalf("pick %d: phase %s, want pick1", i, s.Phase)
		}
		if s.CurrentPlayer != want {
			t.Fatalf("pick %d: player %d on turn, want %d", i, s.CurrentPlayer, want)
		}
		mustPick(t, s, cfg, want, fmt.Sprintf("pick-%d", i))
	}
	if s.Phase != PhaseBan2 || s.CurrentPlayer != 1 {
		t.Fatalf("after pick1: phase=%s player=%d, want ban2/1", s.Phase, s.CurrentPlayer)
	}
}

func TestPick2MirroredSnakeOrderAndCompletion(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg)
	drainBans(t, s, cfg, "ban1")
	for i := 0; s.Phase == PhasePick1; i++ {
		mustPick(t, s, cfg, s.CurrentPlayer, fmt.Sprintf("p1-%d", i))
	}
	drainBans(t, s, cfg, "ban2")

	if s.Phase != PhasePick2 || s.CurrentPlayer != 2 {
		t.Fatalf("pick2 entry: phase=%s player=%d, want pick2/2", s.Phase, s.CurrentPlayer)
	}
	wantTurns := []int{2, 1, 1, 2, 2, 1}
	for i, want := range wantTurns {
		if s.CurrentPlayer != want {
			t.Fatalf("pick %d: player %d on turn, want %d", i, s.CurrentPlayer, want)
		}
		mustPick(t, s, cfg, want, fmt.Sprintf("p2-%d", i))
	}
	if s.Phase != PhaseComplete {
		t.Fatalf("phase %s, want complete", s.Phase)
	}
	checkInvariants(t, s)
}

func TestPhaseOnlyMovesForward(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg)
	order := map[Phase]int{PhaseBan1: 0, PhasePick1: 1, PhaseBan2: 2, PhasePick2: 3, PhaseComplete: 4}

	last := order[s.Phase]
	step := 0
	for s.Phase != PhaseComplete {
		item := fmt.Sprintf("item-%d", step)
		step++
		var err error
		if s.Phase == PhaseBan1 || s.Phase == PhaseBan2 {
			err = s.Ban(cfg, s.CurrentPlayer, item)
		} else {
			err = s.Pick(cfg, s.CurrentPlayer, item)
		}
		if err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if order[s.Phase] < last {
			t.Fatalf("phase moved backward to %s", s.Phase)
		}
		last = order[s.Phase]
		checkInvariants(t, s)
	}
}

func TestValidationErrors(t *testing.T) {
	cfg := testConfig()

	atPick1 := func() *Session {
		s := NewSession(cfg)
		mustBan(t, s, cfg, 1, "banned-1")
		mustBan(t, s, cfg, 2, "banned-2")
		return s
	}

	cases := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			name: "ban by non player",
			run: func() error {
				return NewSession(cfg).Ban(cfg, 3, "x")
			},
			wantErr: ErrNotAPlayer,
		},
		{
			name: "ban out of turn",
			run: func() error {
				return NewSession(cfg).Ban(cfg, 2, "x")
			},
			wantErr: ErrNotYourTurn,
		},
		{
			name: "ban during pick phase",
			run: func() error {
				return atPick1().Ban(cfg, 1, "x")
			},
			wantErr: ErrWrongPhase,
		},
		{
			name: "pick during ban phase",
			run: func() error {
				return NewSession(cfg).Pick(cfg, 1, "x")
			},
			wantErr: ErrWrongPhase,
		},
		{
			name: "duplicate ban",
			run: func() error {
				s := NewSession(cfg)
				mustBan(t, s, cfg, 1, "dup")
				return s.Ban(cfg, 2, "dup")
			},
			wantErr: ErrItemAlreadyBanned,
		},
		{
			name: "pick of banned item",
			run: func() error {
				return atPick1().Pick(cfg, 1, "banned-2")
			},
			wantErr: ErrItemAlreadyBanned,
		},
		{
			name: "duplicate pick",
			run: func() error {
				s := atPick1()
				mustPick(t, s, cfg, 1, "dup")
				return s.Pick(cfg, 2, "dup")
			},
			wantErr: ErrItemAlreadyPicked,
		},
		{
			name: "ban of item picked earlier",
			run: func() error {
				s := atPick1()
				for i := 0; s.Phase == PhasePick1; i++ {
					mustPick(t, s, cfg, s.CurrentPlayer, fmt.Sprintf("p-%d", i))
				}
				return s.Ban(cfg, 1, "p-0")
			},
			wantErr: ErrItemAlreadyPicked,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCompletedDraftRejectsActions(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg)
	step := 0
	for s.Phase != PhaseComplete {
		item := fmt.Sprintf("item-%d", step)
		step++
		if s.Phase == PhaseBan1 || s.Phase == PhaseBan2 {
			mustBan(t, s, cfg, s.CurrentPlayer, item)
		} else {
			mustPick(t, s, cfg, s.CurrentPlayer, item)
		}
	}

	for _, player := range []int{1, 2} {
		if err := s.Ban(cfg, player, "late-ban"); !errors.Is(err, ErrWrongPhase) {
			t.Fatalf("ban after completion by %d: got %v, want ErrWrongPhase", player, err)
		}
		if err := s.Pick(cfg, player, "late-pick"); !errors.Is(err, ErrWrongPhase) {
			t.Fatalf("pick after completion by %d: got %v, want ErrWrongPhase", player, err)
		}
	}
}

func TestFailedActionLeavesSessionUntouched(t *testing.T) {
	cfg := testConfig()
	s := NewSession(cfg)
	mustBan(t, s, cfg, 1, "first")

	before := *s
	if err := s.Ban(cfg, 2, "first"); !errors.Is(err, ErrItemAlreadyBanned) {
		t.Fatalf("got %v, want ErrItemAlreadyBanned", err)
	}
	if s.Phase != before.Phase || s.CurrentPlayer != before.CurrentPlayer ||
		len(s.Bans) != len(before.Bans) || s.BansPhase1 != before.BansPhase1 {
		t.Fatalf("session mutated by rejected action")
	}
}

func TestZeroBanQuotasSkipBanPhases(t *testing.T) {
	cfg := testConfig()
	cfg.BansPhase1 = 0
	cfg.BansPhase2 = 0

	s := NewSession(cfg)
	if s.Phase != PhasePick1 || s.CurrentPlayer != 1 {
		t.Fatalf("got phase=%s player=%d, want pick1/1", s.Phase, s.CurrentPlayer)
	}

	for i := 0; s.Phase == PhasePick1; i++ {
		mustPick(t, s, cfg, s.CurrentPlayer, fmt.Sprintf("p-%d", i))
	}
	if s.Phase != PhasePick2 || s.CurrentPlayer != 2 {
		t.Fatalf("after pick1: phase=%s player=%d, want pick2/2", s.Phase, s.CurrentPlayer)
	}
}

func TestZeroQuotaForOpeningPlayerYieldsTurn(t *testing.T) {
	cfg := testConfig()
	cfg.BansPhase1 = 0
	cfg.BalanceBans = 1
	cfg.BalanceBansPlayer = 2

	s := NewSession(cfg)
	if s.Phase != PhaseBan1 || s.CurrentPlayer != 2 {
		t.Fatalf("got phase=%s player=%d, want ban1/2", s.Phase, s.CurrentPlayer)
	}
	mustBan(t, s, cfg, 2, "only-ban")
	if s.Phase != PhasePick1 {
		t.Fatalf("phase %s, want pick1", s.Phase)
	}
}
