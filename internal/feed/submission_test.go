package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionAllowsOneAtATime(t *testing.T) {
	var s Submission

	done, err := s.Begin()
	require.NoError(t, err)
	assert.True(t, s.InFlight())

	_, err = s.Begin()
	assert.ErrorIs(t, err, ErrInFlight)

	done()
	assert.False(t, s.InFlight())

	done, err = s.Begin()
	require.NoError(t, err)
	done()
}
