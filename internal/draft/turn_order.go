package draft

func otherPlayer(player int) int {
	if player == 1 {
		return 2
	}
	return 1
}

// snakeTurn returns who acts at the given 0-based index within a pick phase.
// The starter takes the first slot, then turns come in pairs, leaving the
// final slot single: a 3-pick phase starting with player 1 runs 1,2,2,1,1,2
// and its mirror starting with player 2 runs 2,1,1,2,2,1.
func snakeTurn(index, starter int) int {
	if index == 0 {
		return starter
	}
	if ((index+1)/2)%2 == 1 {
		return otherPlayer(starter)
	}
	return starter
}

// advance recomputes the turn after a successful action: stay in the current
// phase while either player has quota left, otherwise move forward.
func (s *Session) advance(cfg Config) {
	switch s.Phase {
	case PhaseBan1, PhaseBan2:
		if !s.banPhaseDone(cfg) {
			s.CurrentPlayer = s.nextBanTurn(cfg)
			return
		}
	case PhasePick1, PhasePick2:
		if !s.pickPhaseDone(cfg) {
			t := s.pickTally()
			s.CurrentPlayer = snakeTurn(t.Player1+t.Player2, s.pickStarter())
			return
		}
	case PhaseComplete:
		return
	}
	s.enterNextPhase(cfg)
}

// enterNextPhase moves forward through the fixed phase order, skipping any
// phase whose quotas are already satisfied (zero-quota configs).
func (s *Session) enterNextPhase(cfg Config) {
	for {
		switch s.Phase {
		case PhaseBan1:
			s.Phase, s.CurrentPlayer = PhasePick1, 1
			if !s.pickPhaseDone(cfg) {
				return
			}
		case PhasePick1:
			s.Phase, s.CurrentPlayer = PhaseBan2, 1
			if !s.banPhaseDone(cfg) {
				if cfg.bansNeeded(PhaseBan2, 1) == 0 {
					s.CurrentPlayer = 2
				}
				return
			}
		case PhaseBan2:
			s.Phase, s.CurrentPlayer = PhasePick2, 2
			if !s.pickPhaseDone(cfg) {
				return
			}
		case PhasePick2:
			// terminal; CurrentPlayer is meaningless from here on
			s.Phase = PhaseComplete
			return
		default:
			return
		}
	}
}

// nextBanTurn flips the turn, flipping back when the flipped-to player has
// no bans left in this phase. The caller has already ruled out both players
// being done, so the flip-back target always has quota remaining.
func (s *Session) nextBanTurn(cfg Config) int {
	t := s.banTally()
	next := otherPlayer(s.CurrentPlayer)
	if t.of(next) >= cfg.bansNeeded(s.Phase, next) {
		next = otherPlayer(next)
	}
	return next
}

func (s *Session) banTally() Tally {
	if s.Phase == PhaseBan2 {
		return s.BansPhase2
	}
	return s.BansPhase1
}

func (s *Session) pickTally() Tally {
	if s.Phase == PhasePick2 {
		return s.PicksPhase2
	}
	return s.PicksPhase1
}

func (s *Session) pickStarter() int {
	if s.Phase == PhasePick2 {
		return 2
	}
	return 1
}

func (s *Session) banPhaseDone(cfg Config) bool {
	t := s.banTally()
	return t.of(1) >= cfg.bansNeeded(s.Phase, 1) && t.of(2) >= cfg.bansNeeded(s.Phase, 2)
}

func (s *Session) pickPhaseDone(cfg Config) bool {
	t := s.pickTally()
	quota := cfg.pickQuota(s.Phase)
	return t.of(1) >= quota && t.of(2) >= quota
}
