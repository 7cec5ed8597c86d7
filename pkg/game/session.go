package game

import "fmt"

// New seeds a single-player room in SETUP. The creator takes seat zero and
// owns the room for its lifetime. passwordHash may be empty for an open room.
func New(roomID, ownerID, ownerName string, initialChips int, passwordHash string) *GameState {
	return &GameState{
		RoomID:       roomID,
		PasswordHash: passwordHash,
		Status:       StatusSetup,
		InitialChips: initialChips,
		BBAmount:     DefaultBigBlind,
		Players: []*Player{{
			ID:      ownerID,
			Name:    ownerName,
			Chips:   initialChips,
			Status:  PlayerStatusActive,
			IsOwner: true,
		}},
		DealerIndex:     0,
		LastRaiseAmount: DefaultBigBlind,
		Street:          StreetPreFlop,
	}
}

// Join seats a new player at the next position with the room's initial stack.
// Joining with an identity that already holds a seat is a no-op.
func (s *GameState) Join(playerID, name string) (*GameState, error) {
	if s.Player(playerID) != nil {
		return s, nil
	}

	if s.Status != StatusSetup {
		return nil, ValidationError("the game has already started")
	}

	ns := s.clone()
	ns.Players = append(ns.Players, &Player{
		ID:       playerID,
		Name:     name,
		Chips:    ns.InitialChips,
		Status:   PlayerStatusActive,
		Position: len(ns.Players),
	})

	ns.Version++
	return ns, nil
}

// Leave removes the player from the room. During setup the seat is removed
// and positions are renumbered; mid-hand the seat stays on the ledger marked
// OUT so turn order and the chip ledger remain intact. Leaving a room you are
// not in is a no-op. The owner cannot leave: the caller tears the room down
// instead.
func (s *GameState) Leave(playerID string) (*GameState, error) {
	p := s.Player(playerID)
	if p == nil {
		return s, nil
	}

	if p.IsOwner {
		return nil, ValidationError("the owner must end the room instead of leaving it")
	}

	ns := s.clone()
	if ns.Status == StatusSetup || ns.Status == StatusLobby {
		players := make([]*Player, 0, len(ns.Players)-1)
		for _, pl := range ns.Players {
			if pl.ID != playerID {
				pl.Position = len(players)
				players = append(players, pl)
			}
		}
		ns.Players = players
		ns.Version++
		return ns, nil
	}

	left := ns.Player(playerID)
	wasTurn := ns.Status == StatusPlaying && ns.Players[ns.CurrentTurnIndex].ID == playerID
	left.Status = PlayerStatusOut

	if ns.Status == StatusPlaying {
		if wasTurn {
			ns.settleRound()
		} else if ns.Contenders() <= 1 {
			ns.Status = StatusWinnerSelection
		}
	}

	ns.Version++
	return ns, nil
}

// Direction is a seat reorder direction
type Direction string

// Direction constants
const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ReorderSeat swaps the seat at index with its neighbor in the given
// direction and renumbers positions. Owner-only, setup-only. Swapping past
// either end of the table is a no-op.
func (s *GameState) ReorderSeat(actorID string, index int, direction Direction) (*GameState, error) {
	if err := s.requireOwner(actorID); err != nil {
		return nil, err
	}

	if s.Status != StatusSetup {
		return nil, ValidationError("seats can only be reordered before the game starts")
	}

	if index < 0 || index >= len(s.Players) {
		return nil, ValidationError(fmt.Sprintf("no seat at index %d", index))
	}

	target := index + 1
	if direction == DirectionUp {
		target = index - 1
	}

	if target < 0 || target >= len(s.Players) {
		return s, nil
	}

	ns := s.clone()
	ns.Players[index], ns.Players[target] = ns.Players[target], ns.Players[index]
	for i, p := range ns.Players {
		p.Position = i
	}

	ns.Version++
	return ns, nil
}

// Start begins the first hand: dealer on seat zero, blinds posted from the
// next two seats, first action on the seat after the big blind. Owner-only;
// at least two seats must be occupied.
func (s *GameState) Start(actorID string, bbAmount int) (*GameState, error) {
	if err := s.requireOwner(actorID); err != nil {
		return nil, err
	}

	if s.Status != StatusSetup {
		return nil, ValidationError("the game has already started")
	}

	funded := 0
	for _, p := range s.Players {
		if p.Chips > 0 {
			funded++
		}
	}

	if funded < 2 {
		return nil, ValidationError("at least two players with chips are required")
	}

	if bbAmount < 2 {
		return nil, ValidationError("the big blind must be at least 2")
	}

	ns := s.clone()
	ns.BBAmount = bbAmount
	ns.DealerIndex = 0
	ns.Pot = 0
	for _, p := range ns.Players {
		p.Bet = 0

		// a felted seat stays out of the new hand
		if p.Chips > 0 {
			p.Status = PlayerStatusActive
		} else {
			p.Status = PlayerStatusOut
		}
	}

	ns.postBlinds()
	ns.Version++
	return ns, nil
}
