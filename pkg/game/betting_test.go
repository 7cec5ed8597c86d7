package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_Act_CallAround(t *testing.T) {
	a := assert.New(t)

	s, err := threePlayerRoom(t).Start("a", 20)
	a.NoError(err)

	// Alice calls the big blind
	s, err = s.Act("a", CheckCall())
	a.NoError(err)
	a.Equal(50, s.Pot)
	a.Equal(20, s.Players[0].Bet)
	a.Equal(980, s.Players[0].Chips)
	a.Equal(StatusPlaying, s.Status)
	a.Equal(1, s.CurrentTurnIndex)

	// Bob completes the small blind; every live bet is matched and the
	// round closes
	s, err = s.Act("b", CheckCall())
	a.NoError(err)
	a.Equal(60, s.Pot)
	a.Equal(20, s.Players[1].Bet)
	a.Equal(StatusWinnerSelection, s.Status)

	a.Equal(3000, totalChips(s))
}

func TestGameState_Act_RaiseReopensAction(t *testing.T) {
	a := assert.New(t)

	s, err := threePlayerRoom(t).Start("a", 20)
	a.NoError(err)

	s, err = s.Act("a", RaiseTo(60))
	a.NoError(err)
	a.Equal(60, s.MinBet)
	a.Equal(40, s.LastRaiseAmount)
	a.Equal(90, s.Pot)
	a.Equal(940, s.Players[0].Chips)

	// the blinds must still answer the raise
	a.Equal(StatusPlaying, s.Status)
	a.Equal(1, s.CurrentTurnIndex)

	s, err = s.Act("b", Fold())
	a.NoError(err)
	a.Equal(PlayerStatusFolded, s.Players[1].Status)
	a.Equal(StatusPlaying, s.Status)
	a.Equal(2, s.CurrentTurnIndex)

	s, err = s.Act("c", CheckCall())
	a.NoError(err)
	a.Equal(130, s.Pot)
	a.Equal(StatusWinnerSelection, s.Status)

	a.Equal(3000, totalChips(s))
}

func TestGameState_Act_RaiseValidation(t *testing.T) {
	a := assert.New(t)

	s, err := threePlayerRoom(t).Start("a", 20)
	a.NoError(err)

	// minimum raise is the call target plus the last raise
	_, err = s.Act("a", RaiseTo(39))
	a.EqualError(err, "the minimum raise is to 40")

	// cannot raise beyond the stack
	_, err = s.Act("a", RaiseTo(1001))
	a.EqualError(err, "you cannot raise beyond your stack")

	// a raise to the full stack is all-in
	s, err = s.Act("a", RaiseTo(1000))
	a.NoError(err)
	a.Equal(0, s.Players[0].Chips)
	a.Equal(PlayerStatusAllIn, s.Players[0].Status)
	a.Equal(1000, s.MinBet)
	a.Equal(980, s.LastRaiseAmount)
}

func TestGameState_Act_MinBetMonotonic(t *testing.T) {
	a := assert.New(t)

	s, err := threePlayerRoom(t).Start("a", 20)
	a.NoError(err)

	minBets := []int{s.MinBet}
	s, err = s.Act("a", RaiseTo(60))
	a.NoError(err)
	minBets = append(minBets, s.MinBet)

	s, err = s.Act("b", RaiseTo(200))
	a.NoError(err)
	minBets = append(minBets, s.MinBet)
	a.Equal(140, s.LastRaiseAmount)

	a.Equal([]int{20, 60, 200}, minBets)
}

func TestGameState_Act_SingleSurvivor(t *testing.T) {
	a := assert.New(t)

	s, err := threePlayerRoom(t).Start("a", 20)
	a.NoError(err)

	s, err = s.Act("a", Fold())
	a.NoError(err)
	a.Equal(StatusPlaying, s.Status)

	// the second fold leaves Carol alone; the round closes even though the
	// small blind never matched the call target
	s, err = s.Act("b", Fold())
	a.NoError(err)
	a.Equal(StatusWinnerSelection, s.Status)
	a.Equal(1, s.Contenders())
	a.Equal(30, s.Pot)
}

func TestGameState_Act_ShortCallIsAllIn(t *testing.T) {
	a := assert.New(t)

	s := &GameState{
		RoomID:           "ROOM01",
		Status:           StatusPlaying,
		BBAmount:         20,
		MinBet:           500,
		LastRaiseAmount:  480,
		Pot:              530,
		Street:           StreetPreFlop,
		CurrentTurnIndex: 1,
		Players: []*Player{
			{ID: "a", Name: "Alice", Chips: 500, Bet: 500, Status: PlayerStatusActive, IsOwner: true},
			{ID: "b", Name: "Bob", Chips: 80, Bet: 10, Status: PlayerStatusActive, Position: 1},
			{ID: "c", Name: "Carol", Chips: 980, Bet: 20, Status: PlayerStatusActive, Position: 2},
		},
	}
	before := totalChips(s)

	s2, err := s.Act("b", CheckCall())
	a.NoError(err)

	// Bob covers what he can and is all-in for his full stack
	a.Equal(0, s2.Players[1].Chips)
	a.Equal(90, s2.Players[1].Bet)
	a.Equal(PlayerStatusAllIn, s2.Players[1].Status)
	a.Equal(610, s2.Pot)
	a.Equal(before, totalChips(s2))

	// Carol still owes the call target
	a.Equal(StatusPlaying, s2.Status)
	a.Equal(2, s2.CurrentTurnIndex)
}

func TestGameState_Act_AllInShowdownRunout(t *testing.T) {
	a := assert.New(t)

	s := New("ROOM01", "a", "Alice", 1000, "")
	s, _ = s.Join("b", "Bob")
	s, err := s.Start("a", 20)
	a.NoError(err)

	// heads-up: Bob posted small, Alice posted big, Bob acts first
	s, err = s.Act("b", RaiseTo(1000))
	a.NoError(err)
	a.Equal(PlayerStatusAllIn, s.Players[1].Status)
	a.Equal(0, s.CurrentTurnIndex)

	s, err = s.Act("a", CheckCall())
	a.NoError(err)
	a.Equal(PlayerStatusAllIn, s.Players[0].Status)
	a.Equal(2000, s.Pot)
	a.Equal(StatusWinnerSelection, s.Status)

	// nobody can act, so each advanced street stays closed
	for _, street := range []Street{StreetFlop, StreetTurn, StreetRiver} {
		s, err = s.AdvanceStreet("a")
		a.NoError(err)
		a.Equal(street, s.Street)
		a.Equal(StatusWinnerSelection, s.Status)
	}
}

func TestGameState_Act_Validation(t *testing.T) {
	a := assert.New(t)
	setup := threePlayerRoom(t)

	// no betting round open during setup
	_, err := setup.Act("a", CheckCall())
	a.EqualError(err, "no betting round is open")

	s, err := setup.Start("a", 20)
	a.NoError(err)

	// only the player at the current turn may act
	_, err = s.Act("b", CheckCall())
	a.Equal(ErrNotYourTurn, err)
	var valErr ValidationError
	a.ErrorAs(err, &valErr)

	_, err = s.Act("a", Action{Type: "JUMP"})
	a.EqualError(err, "unknown action: JUMP")
}

func TestGameState_Act_CheckWhenMatched(t *testing.T) {
	a := assert.New(t)

	s, err := threePlayerRoom(t).Start("a", 20)
	a.NoError(err)

	s, err = s.Act("a", CheckCall())
	a.NoError(err)
	s, err = s.Act("b", CheckCall())
	a.NoError(err)
	s, err = s.AdvanceStreet("a")
	a.NoError(err)

	// on the flop the call target is zero, so a check costs nothing and,
	// with every live bet matched, closes the round
	pot := s.Pot
	s, err = s.Act("b", CheckCall())
	a.NoError(err)
	a.Equal(pot, s.Pot)
	a.Equal(0, s.Players[1].Bet)
	a.Equal(StatusWinnerSelection, s.Status)
}
