package leave_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalroster/duty-scheduler/internal/roster/leave"
)

func TestExpandWeeklyRuleProducesWeeklyIndices(t *testing.T) {
	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC) // a Monday
	rules := []leave.Rule{
		{EmployeeID: 1, RRule: "FREQ=WEEKLY;BYDAY=SA,SU"},
	}

	days, err := leave.Expand(rules, start, 14)
	require.NoError(t, err)
	require.Contains(t, days, 1)

	// March 2 is a Monday; the first Saturday is day index 5, the first
	// Sunday day index 6.
	assert.Contains(t, days[1], 5)
	assert.Contains(t, days[1], 6)
	assert.Contains(t, days[1], 12)
	assert.Contains(t, days[1], 13)
}

func TestExpandRejectsMalformedRRule(t *testing.T) {
	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	rules := []leave.Rule{{EmployeeID: 1, RRule: "NOT;A;VALID;RULE==="}}

	_, err := leave.Expand(rules, start, 7)
	assert.Error(t, err)
}

func TestExpandDropsOccurrencesOutsideHorizon(t *testing.T) {
	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	rules := []leave.Rule{{EmployeeID: 1, RRule: "FREQ=DAILY;COUNT=1"}}

	days, err := leave.Expand(rules, start, 1)
	require.NoError(t, err)
	assert.Contains(t, days[1], 0)
	for d := range days[1] {
		assert.Less(t, d, 1)
	}
}

func TestExpandWithZeroDaysReturnsEmpty(t *testing.T) {
	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	days, err := leave.Expand(nil, start, 0)
	require.NoError(t, err)
	assert.Empty(t, days)
}
