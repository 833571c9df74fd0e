package htest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultReject(t *testing.T) {
	r := newResult(KindStudent)
	assert.False(t, r.Reject(0.05), "unfitted results never reject")

	r.setFitted(2.5, 0.03)
	assert.True(t, r.Reject(0.05))
	assert.True(t, r.Reject(0.03), "boundary p-value rejects")
	assert.False(t, r.Reject(0.01))
}

func TestResultString(t *testing.T) {
	r := newResult(KindMannWhitneyU)
	assert.Contains(t, r.String(), "unfitted")
	assert.Contains(t, r.String(), "P(X > Y) = P(Y > X)")

	tt := NewMannWhitneyUTest()
	require.NoError(t, tt.Fit(normalScores(20, 0, 1), normalScores(20, 1, 1)))
	s := tt.Params().String()
	assert.True(t, strings.HasPrefix(s, "Mann-Whitney U test:"))
	assert.Contains(t, s, "p=")
}
