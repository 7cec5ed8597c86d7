package token

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// roomCodeAlphabet omits 0/O and 1/I, which read ambiguously when a code is
// shouted across a table
const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RoomCodeLength is the length of a generated room code
const RoomCodeLength = 6

// RoomCode returns a crypto-secure random room code like "K7RP2X"
func RoomCode() (string, error) {
	var sb strings.Builder
	sb.Grow(RoomCodeLength)

	max := big.NewInt(int64(len(roomCodeAlphabet)))
	for i := 0; i < RoomCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}

		sb.WriteByte(roomCodeAlphabet[n.Int64()])
	}

	return sb.String(), nil
}

// Normalize upper-cases and trims a user-supplied room code
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
