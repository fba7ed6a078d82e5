package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementAttemptsQuery_GuardsLimit(t *testing.T) {
	query, args, err := incrementAttemptsQuery(7)

	require.NoError(t, err)
	assert.Equal(t, "UPDATE otps SET attempts = attempts + 1 WHERE id = $1 AND attempts < max_attempts RETURNING attempts", query)
	assert.Equal(t, []interface{}{int64(7)}, args)
}
