package semerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"config", NewConfigError("Si/mobility.yaml", errors.New("bad")), IsConfig},
		{"configf", Configf("", "missing %s", "model"), IsConfig},
		{"unknown author", &UnknownAuthorError{Family: "mobility", Author: "nobody"}, IsUnknownAuthor},
		{"invalid input", Invalidf("temp", "must be positive, got %g", -1.0), IsInvalidInput},
		{"convergence", &ConvergenceError{Iterations: 50}, IsConvergence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestClassificationIsExclusive(t *testing.T) {
	err := Invalidf("Na", "negative")
	assert.False(t, IsConfig(err))
	assert.False(t, IsUnknownAuthor(err))
	assert.False(t, IsConvergence(err))
}

func TestMessages(t *testing.T) {
	err := &UnknownAuthorError{Family: "mobility", Author: "x", Available: []string{"a", "b"}}
	assert.Equal(t, `unknown mobility author "x" (available: a, b)`, err.Error())

	cfg := NewConfigError("Si/bgn.yaml", errors.New("no default"))
	assert.Equal(t, "config Si/bgn.yaml: no default", cfg.Error())
	assert.ErrorContains(t, Configf("", "boom"), "config: boom")

	assert.Equal(t, "temp: must be positive", Invalidf("temp", "must be positive").Error())
}
