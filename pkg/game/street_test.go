package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// closedPreFlop plays the pre-flop round to closure with everyone in
func closedPreFlop(t *testing.T) *GameState {
	t.Helper()

	s, err := threePlayerRoom(t).Start("a", 20)
	assert.NoError(t, err)
	s, err = s.Act("a", CheckCall())
	assert.NoError(t, err)
	s, err = s.Act("b", CheckCall())
	assert.NoError(t, err)
	assert.Equal(t, StatusWinnerSelection, s.Status)

	return s
}

func TestGameState_AdvanceStreet(t *testing.T) {
	a := assert.New(t)
	s := closedPreFlop(t)

	s2, err := s.AdvanceStreet("a")
	a.NoError(err)
	a.Equal(StreetFlop, s2.Street)
	a.Equal(StatusPlaying, s2.Status)
	a.Equal(0, s2.MinBet)
	a.Equal(20, s2.LastRaiseAmount)

	// bets were already in the pot; they only reset
	a.Equal(60, s2.Pot)
	for _, p := range s2.Players {
		a.Equal(0, p.Bet)
	}

	// first action on the first live seat after the dealer
	a.Equal(1, s2.CurrentTurnIndex)

	a.Equal(3000, totalChips(s2))
}

func TestGameState_AdvanceStreet_Order(t *testing.T) {
	a := assert.New(t)
	s := closedPreFlop(t)

	for _, street := range []Street{StreetFlop, StreetTurn, StreetRiver} {
		var err error
		s, err = s.AdvanceStreet("a")
		a.NoError(err)
		a.Equal(street, s.Street)

		// check around to close the street
		s, err = s.Act("b", CheckCall())
		a.NoError(err)
		a.Equal(StatusWinnerSelection, s.Status)
	}

	_, err := s.AdvanceStreet("a")
	a.EqualError(err, "no street follows the river")
}

func TestGameState_AdvanceStreet_Validation(t *testing.T) {
	a := assert.New(t)

	open, err := threePlayerRoom(t).Start("a", 20)
	a.NoError(err)
	_, err = open.AdvanceStreet("a")
	a.EqualError(err, "the betting round is still open")

	s := closedPreFlop(t)
	_, err = s.AdvanceStreet("b")
	a.EqualError(err, "only the room owner may do that")

	// folded down to one player: there is nothing left to bet on
	s, err = threePlayerRoom(t).Start("a", 20)
	a.NoError(err)
	s, err = s.Act("a", Fold())
	a.NoError(err)
	s, err = s.Act("b", Fold())
	a.NoError(err)
	_, err = s.AdvanceStreet("a")
	a.EqualError(err, "only one player remains; resolve the showdown instead")
}
