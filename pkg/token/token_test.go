package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := RoomCode()
		assert.NoError(t, err)
		assert.Len(t, code, RoomCodeLength)

		for _, r := range code {
			assert.True(t, strings.ContainsRune(roomCodeAlphabet, r), "unexpected rune %c", r)
		}

		seen[code] = true
	}

	assert.True(t, len(seen) > 90, "expected mostly unique codes, got %d", len(seen))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "K7RP2X", Normalize("  k7rp2x\n"))
}
