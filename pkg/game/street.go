package game

// AdvanceStreet moves a closed betting round to the next street: bets reset
// (their chips are already in the pot), the call target drops to zero with
// the minimum raise back at the big blind, and first action goes to the first
// active seat after the dealer. Owner-only. If everyone remaining is all-in
// the new street has nobody to act and stays closed, so the owner can run the
// board out street by street.
func (s *GameState) AdvanceStreet(actorID string) (*GameState, error) {
	if err := s.requireOwner(actorID); err != nil {
		return nil, err
	}

	if s.Status != StatusWinnerSelection {
		return nil, ValidationError("the betting round is still open")
	}

	if s.Street == StreetRiver {
		return nil, ValidationError("no street follows the river")
	}

	if s.Contenders() <= 1 {
		return nil, ValidationError("only one player remains; resolve the showdown instead")
	}

	ns := s.clone()
	for _, p := range ns.Players {
		p.Bet = 0
	}

	ns.Street, _ = ns.Street.next()
	ns.MinBet = 0
	ns.LastRaiseAmount = ns.BBAmount
	ns.openBettingRound(ns.DealerIndex)

	ns.Version++
	return ns, nil
}
