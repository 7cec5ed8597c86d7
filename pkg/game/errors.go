package game

// ValidationError is a rejected command that is safe to show to the issuing
// actor. The prior snapshot is left intact.
type ValidationError string

func (v ValidationError) Error() string {
	return string(v)
}

// AuthorizationError is returned when an actor attempts an owner-only command
type AuthorizationError string

func (a AuthorizationError) Error() string {
	return string(a)
}

// ErrNotYourTurn is returned when an actor other than the current player acts
var ErrNotYourTurn = ValidationError("it is not your turn")
