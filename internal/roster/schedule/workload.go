package schedule

import (
	"sort"

	"github.com/hospitalroster/duty-scheduler/internal/roster/model"
)

// TimelineEntry is one (day, shift) occurrence in an employee's
// chronological schedule, ordered by day*24+shift.Start.
type TimelineEntry struct {
	Day      int
	ShiftIdx int
}

// HoursPerEmployeeWeek sums scheduled hours per employee per ISO-like week
// (week = day/7), the first input to the over_30h soft category.
func HoursPerEmployeeWeek(s *Schedule, inst *model.ProblemInstance) map[int]map[int]float64 {
	out := make(map[int]map[int]float64)
	s.Walk(func(c Cursor) {
		if len(c.IDs) == 0 {
			return
		}
		week := c.Day / 7
		hours := float64(inst.Shifts[c.ShiftIdx].Hours)
		for _, id := range c.IDs {
			if out[id] == nil {
				out[id] = make(map[int]float64)
			}
			out[id][week] += hours
		}
	})
	return out
}

// HoursPerEmployeeTotal sums scheduled hours per employee over the whole
// horizon, feeding the monthly-bound soft categories.
func HoursPerEmployeeTotal(s *Schedule, inst *model.ProblemInstance) map[int]float64 {
	out := make(map[int]float64)
	s.Walk(func(c Cursor) {
		if len(c.IDs) == 0 {
			return
		}
		hours := float64(inst.Shifts[c.ShiftIdx].Hours)
		for _, id := range c.IDs {
			out[id] += hours
		}
	})
	return out
}

// ShiftCountPerEmployee counts cells each employee appears in.
func ShiftCountPerEmployee(s *Schedule) map[int]int {
	out := make(map[int]int)
	s.Walk(func(c Cursor) {
		for _, id := range c.IDs {
			out[id]++
		}
	})
	return out
}

// TimelinePerEmployee returns each employee's (day, shift) occurrences
// sorted by day*24+shift.Start, the ordering no_rest_12h walks consecutively.
func TimelinePerEmployee(s *Schedule, inst *model.ProblemInstance) map[int][]TimelineEntry {
	out := make(map[int][]TimelineEntry)
	s.Walk(func(c Cursor) {
		for _, id := range c.IDs {
			out[id] = append(out[id], TimelineEntry{Day: c.Day, ShiftIdx: c.ShiftIdx})
		}
	})
	for id, entries := range out {
		sort.Slice(entries, func(i, j int) bool {
			ti := entries[i].Day*24 + inst.Shifts[entries[i].ShiftIdx].Start
			tj := entries[j].Day*24 + inst.Shifts[entries[j].ShiftIdx].Start
			return ti < tj
		})
		out[id] = entries
	}
	return out
}
