package exitcode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/driftguard/driftguard/pkg/types"
)

func TestForSeverity(t *testing.T) {
	tests := []struct {
		severity types.Severity
		want     int
	}{
		{types.SeverityNone, 0},
		{types.SeverityAcceptable, 2},
		{types.SeverityHigh, 2},
		{types.SeverityCritical, 3},
		{types.Severity("BOGUS"), 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			assert.Equal(t, tt.want, ForSeverity(tt.severity))
		})
	}
}

func TestForError(t *testing.T) {
	assert.Equal(t, Clean, ForError(nil))
	assert.Equal(t, Failure, ForError(errors.New("terraform not found")))
}
