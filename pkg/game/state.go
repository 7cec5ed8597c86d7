package game

// Status is the lifecycle phase of a room
type Status string

// Status constants
const (
	StatusLobby           Status = "LOBBY"
	StatusSetup           Status = "SETUP"
	StatusPlaying         Status = "PLAYING"
	StatusWinnerSelection Status = "WINNER_SELECTION"
)

// PlayerStatus is the in-hand status of a seated player
type PlayerStatus string

// PlayerStatus constants
const (
	PlayerStatusActive PlayerStatus = "ACTIVE"
	PlayerStatusFolded PlayerStatus = "FOLDED"
	PlayerStatusAllIn  PlayerStatus = "ALL_IN"
	PlayerStatusOut    PlayerStatus = "OUT"
)

// Street is one of the four betting phases of a hand
type Street string

// Street constants, in hand order
const (
	StreetPreFlop Street = "Pre-flop"
	StreetFlop    Street = "Flop"
	StreetTurn    Street = "Turn"
	StreetRiver   Street = "River"
)

// next returns the street that follows, or false on the river
func (s Street) next() (Street, bool) {
	switch s {
	case StreetPreFlop:
		return StreetFlop, true
	case StreetFlop:
		return StreetTurn, true
	case StreetTurn:
		return StreetRiver, true
	}

	return s, false
}

// DefaultBigBlind is the big blind a room starts with until the owner picks one
const DefaultBigBlind = 20

// Player is a seat at the table
type Player struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Chips    int          `json:"chips"`
	Bet      int          `json:"bet"`
	Status   PlayerStatus `json:"status"`
	IsOwner  bool         `json:"isOwner"`
	Position int          `json:"position"`
}

// GameState is a full snapshot of a room. Snapshots are immutable: every
// transition clones the previous snapshot, mutates the clone, and bumps Version.
// The pot is live; a player's Bet records their current-street contribution,
// which has already been moved into the pot. The conserved quantity across
// transitions is the sum of all chips plus the pot.
type GameState struct {
	RoomID string `json:"roomId"`
	// PasswordHash is the argon2id hash of the room passphrase, if one was set
	PasswordHash     string    `json:"password,omitempty"`
	Status           Status    `json:"status"`
	InitialChips     int       `json:"initialChips"`
	BBAmount         int       `json:"bbAmount"`
	Players          []*Player `json:"players"`
	Pot              int       `json:"pot"`
	CurrentTurnIndex int       `json:"currentTurnIndex"`
	DealerIndex      int       `json:"dealerIndex"`
	MinBet           int       `json:"minBet"`
	LastRaiseAmount  int       `json:"lastRaiseAmount"`
	Street           Street    `json:"street"`
	// Version increases by one on every transition; the store rejects stale writes
	Version int64 `json:"version"`
}

func (s *GameState) clone() *GameState {
	ns := *s
	ns.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		cp := *p
		ns.Players[i] = &cp
	}

	return &ns
}

// Player returns the seated player with the given ID, or nil
func (s *GameState) Player(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}

	return nil
}

// Owner returns the room owner
func (s *GameState) Owner() *Player {
	for _, p := range s.Players {
		if p.IsOwner {
			return p
		}
	}

	// exactly one owner exists for the life of the room
	panic("room has no owner")
}

// Contenders returns the number of players still eligible for the pot
func (s *GameState) Contenders() int {
	n := 0
	for _, p := range s.Players {
		if p.Status == PlayerStatusActive || p.Status == PlayerStatusAllIn {
			n++
		}
	}

	return n
}

// nextSeat returns the first seat strictly after "from" (wrapping) for which
// ok returns true, or -1 if no such seat exists
func (s *GameState) nextSeat(from int, ok func(*Player) bool) int {
	n := len(s.Players)
	for i := 1; i <= n; i++ {
		index := (from + i) % n
		if ok(s.Players[index]) {
			return index
		}
	}

	return -1
}

func isActive(p *Player) bool {
	return p.Status == PlayerStatusActive
}

func isSeated(p *Player) bool {
	return p.Status != PlayerStatusOut
}

// requireOwner returns an AuthorizationError unless actorID is the room owner
func (s *GameState) requireOwner(actorID string) error {
	if s.Owner().ID != actorID {
		return AuthorizationError("only the room owner may do that")
	}

	return nil
}

// post moves up to amount from the player's chips into their bet and the pot.
// A player felted by a forced bet is all-in.
func (s *GameState) post(p *Player, amount int) {
	if amount > p.Chips {
		amount = p.Chips
	}

	p.Chips -= amount
	p.Bet += amount
	s.Pot += amount

	if p.Chips == 0 {
		p.Status = PlayerStatusAllIn
	}
}

// postBlinds starts a fresh hand from the current dealer: small blind and big
// blind from the next two seats still in the game, first action on the seat
// after the big blind.
func (s *GameState) postBlinds() {
	sbIdx := s.nextSeat(s.DealerIndex, isSeated)
	bbIdx := s.nextSeat(sbIdx, isSeated)

	s.post(s.Players[sbIdx], s.BBAmount/2)
	s.post(s.Players[bbIdx], s.BBAmount)

	s.MinBet = s.BBAmount
	s.LastRaiseAmount = s.BBAmount
	s.Street = StreetPreFlop
	s.openBettingRound(bbIdx)
}

// openBettingRound hands the action to the first active seat after afterIdx.
// If nobody can act (everyone remaining is all-in), the round is already over.
func (s *GameState) openBettingRound(afterIdx int) {
	index := s.nextSeat(afterIdx, isActive)
	if index < 0 || s.Contenders() <= 1 {
		s.Status = StatusWinnerSelection
		return
	}

	s.CurrentTurnIndex = index
	s.Status = StatusPlaying
}
