package game

import "fmt"

// ActionType identifies one of the three betting actions
type ActionType string

// ActionType constants
const (
	ActionFold      ActionType = "FOLD"
	ActionCheckCall ActionType = "CHECK_CALL"
	ActionRaise     ActionType = "RAISE"
)

// Action is a closed union of the three betting actions. To is only
// meaningful for a raise and is the total bet the raiser is raising to.
type Action struct {
	Type ActionType `json:"type"`
	To   int        `json:"to,omitempty"`
}

// Fold gives up the hand
func Fold() Action {
	return Action{Type: ActionFold}
}

// CheckCall matches the current call target, or checks if already matched
func CheckCall() Action {
	return Action{Type: ActionCheckCall}
}

// RaiseTo raises the call target to a total bet of "to"
func RaiseTo(to int) Action {
	return Action{Type: ActionRaise, To: to}
}

// ActionFromString returns the action for a wire identifier
func ActionFromString(s string, to int) (Action, error) {
	switch ActionType(s) {
	case ActionFold:
		return Fold(), nil
	case ActionCheckCall:
		return CheckCall(), nil
	case ActionRaise:
		return RaiseTo(to), nil
	}

	return Action{}, fmt.Errorf("unknown action: %s", s)
}

func (a Action) String() string {
	if a.Type == ActionRaise {
		return fmt.Sprintf("Raise to %d", a.To)
	}

	switch a.Type {
	case ActionFold:
		return "Fold"
	case ActionCheckCall:
		return "Check/Call"
	}

	panic("unknown action")
}
