package draft

import "testing"

func TestSnakeTurnPatterns(t *testing.T) {
	cases := []struct {
		name    string
		starter int
		want    []int
	}{
		{"quota 3 starting player 1", 1, []int{1, 2, 2, 1, 1, 2}},
		{"quota 3 starting player 2", 2, []int{2, 1, 1, 2, 2, 1}},
		{"quota 2 starting player 1", 1, []int{1, 2, 2, 1}},
		{"quota 4 starting player 1", 1, []int{1, 2, 2, 1, 1, 2, 2, 1}},
		{"quota 5 starting player 2", 2, []int{2, 1, 1, 2, 2, 1, 1, 2, 2, 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i, want := range tc.want {
				if got := snakeTurn(i, tc.starter); got != want {
					t.Fatalf("index %d: got player %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestSnakeTurnGivesEachPlayerTheirQuota(t *testing.T) {
	for quota := 1; quota <= 8; quota++ {
		counts := map[int]int{}
		for i := 0; i < 2*quota; i++ {
			counts[snakeTurn(i, 1)]++
		}
		if counts[1] != quota || counts[2] != quota {
			t.Fatalf("quota %d: turn split %d/%d", quota, counts[1], counts[2])
		}
	}
}

func TestBansNeeded(t *testing.T) {
	cfg := Config{BansPhase1: 2, BansPhase2: 1, BalanceBans: 3, BalanceBansPlayer: 2}

	if got := cfg.bansNeeded(PhaseBan1, 1); got != 2 {
		t.Fatalf("phase1 player1: got %d, want 2", got)
	}
	if got := cfg.bansNeeded(PhaseBan1, 2); got != 5 {
		t.Fatalf("phase1 player2: got %d, want 5", got)
	}
	// balance bans never apply to phase 2
	if got := cfg.bansNeeded(PhaseBan2, 2); got != 1 {
		t.Fatalf("phase2 player2: got %d, want 1", got)
	}
}

func TestNormalizedFillsDefaults(t *testing.T) {
	cfg := Config{BansPhase1: -1, BalanceBans: -2, BalanceBansPlayer: 7, BanTimerSec: -5}.Normalized()

	if cfg.BansPhase1 != 0 || cfg.BalanceBans != 0 {
		t.Fatalf("negative quotas not clamped: %+v", cfg)
	}
	if cfg.BalanceBansPlayer != 1 {
		t.Fatalf("balanceBansPlayer %d, want 1", cfg.BalanceBansPlayer)
	}
	if cfg.PickQuotaPhase1 != DefaultPickQuota || cfg.PickQuotaPhase2 != DefaultPickQuota {
		t.Fatalf("pick quotas not defaulted: %+v", cfg)
	}
	if cfg.BanTimerSec != 0 {
		t.Fatalf("timer not clamped: %+v", cfg)
	}
}
