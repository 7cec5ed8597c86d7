package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomName(t *testing.T) {
	for i := 0; i < 25; i++ {
		name := GetRandomName()
		parts := strings.Split(name, " ")
		assert.Len(t, parts, 2)
		assert.Contains(t, adjectives, parts[0])
		assert.Contains(t, animals, parts[1])
	}
}
