// Package leave expands recurring day-off rules into the concrete day
// indices model.Employee.DaysOff needs, the way
// jakec-github-ilford-drop-in's rota-override conversion expands RRULE
// strings into date-matching predicates, adapted here to index-based
// horizons instead of calendar dates.
package leave

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Rule is one employee's recurring leave pattern, expressed as an RFC 5545
// RRULE string (e.g. "FREQ=WEEKLY;BYDAY=SA,SU").
type Rule struct {
	EmployeeID int
	RRule      string
}

// Expand parses every rule and evaluates it against the scheduling
// horizon, returning day indices (0-based, relative to horizonStart) on
// which each employee is on leave. A malformed RRULE string fails the
// whole expansion: leave rules are operator input, not optimiser output,
// so they fail fast rather than silently dropping a rule.
func Expand(rules []Rule, horizonStart time.Time, days int) (map[int]map[int]struct{}, error) {
	out := make(map[int]map[int]struct{})
	if days <= 0 {
		return out, nil
	}

	horizonEnd := horizonStart.AddDate(0, 0, days-1)

	for i, r := range rules {
		rule, err := rrule.StrToRRule(r.RRule)
		if err != nil {
			return nil, fmt.Errorf("leave rule %d (employee %d): invalid rrule %q: %w", i, r.EmployeeID, r.RRule, err)
		}
		rule.DTStart(horizonStart)

		occurrences := rule.Between(horizonStart, horizonEnd, true)
		if len(occurrences) == 0 {
			continue
		}
		if out[r.EmployeeID] == nil {
			out[r.EmployeeID] = make(map[int]struct{})
		}
		for _, occ := range occurrences {
			day := int(occ.Sub(horizonStart).Hours() / 24)
			if day < 0 || day >= days {
				continue
			}
			out[r.EmployeeID][day] = struct{}{}
		}
	}
	return out, nil
}
