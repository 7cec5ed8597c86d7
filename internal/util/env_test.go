package util

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	_ = os.Unsetenv("CM_TEST_KEY")
	assert.Equal(t, "fallback", Getenv("CM_TEST_KEY", "fallback"))

	_ = os.Setenv("CM_TEST_KEY", "value")
	defer func() { _ = os.Unsetenv("CM_TEST_KEY") }()
	assert.Equal(t, "value", Getenv("CM_TEST_KEY", "fallback"))
}
