package game

import "fmt"

// Act applies one betting action on behalf of actorID, who must be the player
// at the current turn. It returns the next snapshot: either the round stays
// open with the action moved to the next live seat, or it closes and the room
// waits in WINNER_SELECTION for the owner to advance the street or resolve
// the showdown.
func (s *GameState) Act(actorID string, action Action) (*GameState, error) {
	if s.Status != StatusPlaying {
		return nil, ValidationError("no betting round is open")
	}

	current := s.Players[s.CurrentTurnIndex]
	if current.ID != actorID {
		return nil, ErrNotYourTurn
	}

	ns := s.clone()
	p := ns.Players[ns.CurrentTurnIndex]

	switch action.Type {
	case ActionFold:
		p.Status = PlayerStatusFolded

	case ActionCheckCall:
		owed := ns.MinBet - p.Bet
		if owed > p.Chips {
			owed = p.Chips
		}

		p.Chips -= owed
		p.Bet += owed
		ns.Pot += owed

		// a short call puts the caller all-in for their full stack
		if p.Chips == 0 {
			p.Status = PlayerStatusAllIn
		}

	case ActionRaise:
		minTo := ns.MinBet + ns.LastRaiseAmount
		if action.To < minTo {
			return nil, ValidationError(fmt.Sprintf("the minimum raise is to %d", minTo))
		}

		if action.To > p.Chips+p.Bet {
			return nil, ValidationError("you cannot raise beyond your stack")
		}

		additional := action.To - p.Bet
		p.Chips -= additional
		p.Bet = action.To
		ns.Pot += additional

		ns.LastRaiseAmount = action.To - ns.MinBet
		ns.MinBet = action.To

		if p.Chips == 0 {
			p.Status = PlayerStatusAllIn
		}

	default:
		return nil, ValidationError(fmt.Sprintf("unknown action: %s", action.Type))
	}

	ns.settleRound()
	ns.Version++
	return ns, nil
}

// settleRound evaluates round closure after an action by the player at the
// current turn, advancing the turn to the next active seat if the round stays
// open. The round closes when at most one contender remains, or when every
// live bet is matched (all-in players hold no further decision but remain
// eligible for the pot).
func (s *GameState) settleRound() {
	if s.Contenders() <= 1 {
		s.Status = StatusWinnerSelection
		return
	}

	matched := true
	for _, p := range s.Players {
		if p.Status == PlayerStatusActive && p.Bet != s.MinBet {
			matched = false
			break
		}
	}

	if matched {
		s.Status = StatusWinnerSelection
		return
	}

	next := s.nextSeat(s.CurrentTurnIndex, isActive)
	if next < 0 {
		s.Status = StatusWinnerSelection
		return
	}

	s.CurrentTurnIndex = next
}
