// Package fitness turns a Schedule into the single penalty score the
// evolutionary loop optimises: a pure function, no RNG, with a richer
// Breakdown mode used for logging and for the validator cross-check in
// package validator.
package fitness

import (
	"github.com/hospitalroster/duty-scheduler/internal/roster/config"
	"github.com/hospitalroster/duty-scheduler/internal/roster/model"
	"github.com/hospitalroster/duty-scheduler/internal/roster/schedule"
)

// Breakdown is the per-category violation count. Hard categories are
// integer shortfalls/counts; soft categories carry the accumulated
// magnitude (excess/shortfall hours, missing-rest occurrences).
type Breakdown struct {
	NoDoctor  int
	NoNurse   int
	LessThan5 int
	NoSenior  int
	WrongDept int
	DayOff    int

	Over30h      float64
	NoRest12h    int
	OverMonthly  float64
	UnderMonthly float64
	Fairness     float64
}

// Score applies the configured weights to a Breakdown, the same linear
// combination Scalar and the validator's cross-check both use.
func Score(b Breakdown, cfg config.Config) float64 {
	return float64(b.NoDoctor)*cfg.WNoDoctor +
		float64(b.NoNurse)*cfg.WNoNurse +
		float64(b.LessThan5)*cfg.WLessThan5 +
		float64(b.NoSenior)*cfg.WNoSenior +
		float64(b.WrongDept)*cfg.WWrongDept +
		float64(b.DayOff)*cfg.WDayOff +
		b.Over30h*cfg.WOver30h +
		float64(b.NoRest12h)*cfg.WNoRest +
		b.OverMonthly*cfg.WOverMonthly +
		b.UnderMonthly*cfg.WUnderMonthly +
		b.Fairness*cfg.WFairness
}

// Scalar computes the single penalty value for a schedule.
func Scalar(sched *schedule.Schedule, inst *model.ProblemInstance, cfg config.Config) float64 {
	return Score(Compute(sched, inst, cfg), cfg)
}

// Compute runs a two-pass scan over the schedule and returns the raw
// per-category counters, without applying weights.
func Compute(sched *schedule.Schedule, inst *model.ProblemInstance, cfg config.Config) Breakdown {
	var b Breakdown

	employees := make(map[int]model.Employee, len(inst.Employees))
	for _, e := range inst.Employees {
		employees[e.ID] = e
	}

	// Pass 1: per-cell staffing/seniority/department/leave checks.
	sched.Walk(func(c schedule.Cursor) {
		dept := inst.DepartmentOf(c.Room)
		doctors, nurses := 0, 0
		hasSenior := false

		for _, id := range c.IDs {
			e, ok := employees[id]
			if !ok {
				continue
			}
			if e.Role == model.RoleDoctor {
				doctors++
			} else {
				nurses++
			}
			if e.IsSenior(cfg.MinExperienceYears) {
				hasSenior = true
			}
			if e.Department != dept {
				b.WrongDept++
			}
			if e.IsOff(c.Day) {
				b.DayOff++
			}
		}

		if shortfall := cfg.MinDoctorPerShift - doctors; shortfall > 0 {
			b.NoDoctor += shortfall
		}
		if shortfall := cfg.MinNursePerShift - nurses; shortfall > 0 {
			b.NoNurse += shortfall
		}
		if shortfall := cfg.MinTotalPerShift - len(c.IDs); shortfall > 0 {
			b.LessThan5 += shortfall
		}
		if !hasSenior {
			b.NoSenior++
		}
	})

	// Pass 2: per-employee hour/rest aggregates.
	hoursByWeek := schedule.HoursPerEmployeeWeek(sched, inst)
	hoursTotal := schedule.HoursPerEmployeeTotal(sched, inst)
	timelines := schedule.TimelinePerEmployee(sched, inst)

	for _, weeks := range hoursByWeek {
		for _, hours := range weeks {
			if over := hours - float64(cfg.MaxHoursPerWeek); over > 0 {
				b.Over30h += over
			}
		}
	}

	for _, entries := range timelines {
		for i := 1; i < len(entries); i++ {
			prev := entries[i-1]
			cur := entries[i]
			prevEnd := prev.Day*24 + inst.Shifts[prev.ShiftIdx].End
			curStart := cur.Day*24 + inst.Shifts[cur.ShiftIdx].Start
			if curStart-prevEnd < cfg.MinRestHours {
				b.NoRest12h++
			}
		}
	}

	var sum float64
	count := 0
	for _, e := range inst.Employees {
		sum += hoursTotal[e.ID]
		count++
	}
	mean := 0.0
	if count > 0 {
		mean = sum / float64(count)
	}

	for _, e := range inst.Employees {
		hours := hoursTotal[e.ID]
		if over := hours - float64(cfg.MaxHoursPerMonth); over > 0 {
			b.OverMonthly += over
		}
		if under := float64(cfg.MinHoursPerMonth) - hours; under > 0 {
			b.UnderMonthly += under
		}
		diff := hours - mean
		if diff < 0 {
			diff = -diff
		}
		b.Fairness += diff
	}

	return b
}
