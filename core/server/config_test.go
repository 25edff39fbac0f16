package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Port: "8080"}.Validate())
	assert.ErrorIs(t, Config{Port: "  "}.Validate(), ErrEmptyPort)
}
