package game

import "fmt"

// Resolver picks the winners of a finished hand. The room owner's manual
// selection is the only implementation shipped; an automatic hand evaluator
// can plug in here without touching the payout path.
type Resolver interface {
	// Winners returns the IDs of the players splitting the pot, in payout
	// order: an indivisible remainder goes to the first ID.
	Winners(s *GameState) ([]string, error)
}

// ManualSelection resolves a showdown with the winner IDs the owner picked
type ManualSelection []string

// Winners implements Resolver
func (m ManualSelection) Winners(*GameState) ([]string, error) {
	if len(m) == 0 {
		return nil, ValidationError("at least one winner must be selected")
	}

	return m, nil
}

// ResolveShowdown pays out the pot and deals the next hand. Valid from
// WINNER_SELECTION once the river's betting closed or only one contender
// remains. Each winner receives an equal share of the pot; the remainder goes
// to the first-listed winner. Players left with no chips are eliminated, the
// dealer button rotates to the next surviving seat, and blinds for the next
// hand are posted. If fewer than two players survive, the room returns to
// SETUP instead of dealing.
func (s *GameState) ResolveShowdown(actorID string, resolver Resolver) (*GameState, error) {
	if err := s.requireOwner(actorID); err != nil {
		return nil, err
	}

	if s.Status != StatusWinnerSelection {
		return nil, ValidationError("the betting round is still open")
	}

	if s.Street != StreetRiver && s.Contenders() > 1 {
		return nil, ValidationError("the hand is not over yet")
	}

	winners, err := resolver.Winners(s)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(winners))
	for _, id := range winners {
		p := s.Player(id)
		if p == nil {
			return nil, ValidationError(fmt.Sprintf("no player with id %s", id))
		}

		if p.Status == PlayerStatusFolded || p.Status == PlayerStatusOut {
			return nil, ValidationError(fmt.Sprintf("%s is not eligible for the pot", p.Name))
		}

		if seen[id] {
			return nil, ValidationError(fmt.Sprintf("%s was selected twice", p.Name))
		}
		seen[id] = true
	}

	ns := s.clone()

	share := ns.Pot / len(winners)
	remainder := ns.Pot % len(winners)
	for i, id := range winners {
		p := ns.Player(id)
		p.Chips += share
		if i == 0 {
			p.Chips += remainder
		}
	}
	ns.Pot = 0

	for _, p := range ns.Players {
		p.Bet = 0
		if p.Chips == 0 {
			p.Status = PlayerStatusOut
		} else {
			p.Status = PlayerStatusActive
		}
	}

	survivors := 0
	for _, p := range ns.Players {
		if p.Status != PlayerStatusOut {
			survivors++
		}
	}

	if survivors < 2 {
		ns.Status = StatusSetup
		ns.MinBet = 0
		ns.LastRaiseAmount = ns.BBAmount
		ns.Street = StreetPreFlop
		ns.Version++
		return ns, nil
	}

	ns.DealerIndex = ns.nextSeat(ns.DealerIndex, isSeated)
	ns.postBlinds()

	ns.Version++
	return ns, nil
}
