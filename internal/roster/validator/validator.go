// Package validator renders a Schedule's constraint violations as a
// structured report for API/CLI consumers, independent of the scalar
// score the evolutionary loop optimises.
package validator

import (
	"fmt"
	"math"

	"github.com/hospitalroster/duty-scheduler/internal/roster/config"
	"github.com/hospitalroster/duty-scheduler/internal/roster/fitness"
	"github.com/hospitalroster/duty-scheduler/internal/roster/model"
	"github.com/hospitalroster/duty-scheduler/internal/roster/schedule"
)

// Violation is one constraint breach, located to a cell when the category
// is cell-scoped. Magnitude is populated for soft violations (overtime
// hours, missing rest hours, shortfall hours) and left zero for hard ones,
// which are pass/fail rather than a matter of degree.
type Violation struct {
	Category  string
	Day       int
	Shift     string
	Room      string
	Employee  string
	Detail    string
	Magnitude float64
}

// SoftMetrics is the aggregate soft-category summary spec.md §4.3 names:
// mean/σ/min/max of hours-per-employee, mean/σ of shift-count, and the
// fairness aggregate, alongside WeightedSum: the combined weighted
// contribution of all soft categories to the total score.
type SoftMetrics struct {
	MeanHours      float64
	StdDevHours    float64
	MinHours       float64
	MaxHours       float64
	MeanShiftCnt   float64
	StdDevShiftCnt float64
	Fairness       float64
	WeightedSum    float64
}

// Report is the full validation result for one schedule: a structured hard
// report, a structured soft report (both per-violation lists), and the
// soft-metrics aggregate. Score and Breakdown come from fitness.Compute,
// so they match the scalar fitness; the violation lists and the hour and
// shift-count statistics are derived by their own scans of the schedule.
type Report struct {
	Feasible  bool
	Score     float64
	Hard      []Violation
	Soft      []Violation
	Metrics   SoftMetrics
	Breakdown fitness.Breakdown
}

// Validate scans the schedule cell by cell for hard-constraint breaches,
// per-employee for soft breaches, and summarizes the soft metrics — reusing
// fitness.Compute so the reported score can never drift from what the
// evolutionary loop actually optimises (spec.md §8's breakdown-sum
// invariant).
func Validate(sched *schedule.Schedule, inst *model.ProblemInstance, cfg config.Config) Report {
	b := fitness.Compute(sched, inst, cfg)
	score := fitness.Score(b, cfg)

	hard := hardViolations(sched, inst, cfg)
	soft := softViolations(sched, inst, cfg)
	metrics := softMetrics(sched, inst, cfg, b)

	return Report{
		Feasible:  len(hard) == 0,
		Score:     score,
		Hard:      hard,
		Soft:      soft,
		Metrics:   metrics,
		Breakdown: b,
	}
}

// hardViolations is the per-cell hard-constraint scan: staffing minimums,
// seniority, home department, and leave conflicts.
func hardViolations(sched *schedule.Schedule, inst *model.ProblemInstance, cfg config.Config) []Violation {
	var hard []Violation
	sched.Walk(func(c schedule.Cursor) {
		dept := inst.DepartmentOf(c.Room)
		doctors, nurses := 0, 0
		hasSenior := false

		for _, id := range c.IDs {
			e := lookup(inst, id)
			if e == nil {
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
				hard = append(hard, Violation{
					Category: "wrong_dept",
					Day:      c.Day, Shift: c.ShiftName, Room: c.Room, Employee: e.Name,
					Detail: fmt.Sprintf("%s is not home to %s", e.Name, dept),
				})
			}
			if e.IsOff(c.Day) {
				hard = append(hard, Violation{
					Category: "day_off",
					Day:      c.Day, Shift: c.ShiftName, Room: c.Room, Employee: e.Name,
					Detail: fmt.Sprintf("%s is scheduled on a day off", e.Name),
				})
			}
		}

		if doctors < cfg.MinDoctorPerShift {
			hard = append(hard, Violation{
				Category: "no_doctor",
				Day:      c.Day, Shift: c.ShiftName, Room: c.Room,
				Detail: fmt.Sprintf("%d doctor(s), need %d", doctors, cfg.MinDoctorPerShift),
			})
		}
		if nurses < cfg.MinNursePerShift {
			hard = append(hard, Violation{
				Category: "no_nurse",
				Day:      c.Day, Shift: c.ShiftName, Room: c.Room,
				Detail: fmt.Sprintf("%d nurse(s), need %d", nurses, cfg.MinNursePerShift),
			})
		}
		if total := len(c.IDs); total < cfg.MinTotalPerShift {
			hard = append(hard, Violation{
				Category: "less_than_5",
				Day:      c.Day, Shift: c.ShiftName, Room: c.Room,
				Detail: fmt.Sprintf("%d staff, need %d", total, cfg.MinTotalPerShift),
			})
		}
		if !hasSenior {
			hard = append(hard, Violation{
				Category: "no_senior",
				Day:      c.Day, Shift: c.ShiftName, Room: c.Room,
				Detail: "no staff member meets the seniority bar",
			})
		}
	})
	return hard
}

// softViolations re-derives the same per-employee hour/rest aggregates
// fitness.Compute's second pass scans, but as individual records carrying
// the magnitude (overtime hours, missing rest hours, shortfall hours)
// rather than a single accumulated counter, per spec.md §4.3.
func softViolations(sched *schedule.Schedule, inst *model.ProblemInstance, cfg config.Config) []Violation {
	var soft []Violation

	hoursByWeek := schedule.HoursPerEmployeeWeek(sched, inst)
	hoursTotal := schedule.HoursPerEmployeeTotal(sched, inst)
	timelines := schedule.TimelinePerEmployee(sched, inst)

	for _, e := range inst.Employees {
		for week, hours := range hoursByWeek[e.ID] {
			if over := hours - float64(cfg.MaxHoursPerWeek); over > 0 {
				soft = append(soft, Violation{
					Category: "over_30h", Employee: e.Name,
					Detail:    fmt.Sprintf("week %d: %.1fh worked, %dh allowed", week, hours, cfg.MaxHoursPerWeek),
					Magnitude: over,
				})
			}
		}

		total := hoursTotal[e.ID]
		if over := total - float64(cfg.MaxHoursPerMonth); over > 0 {
			soft = append(soft, Violation{
				Category: "over_monthly", Employee: e.Name,
				Detail:    fmt.Sprintf("%.1fh worked, %dh max", total, cfg.MaxHoursPerMonth),
				Magnitude: over,
			})
		}
		if under := float64(cfg.MinHoursPerMonth) - total; under > 0 {
			soft = append(soft, Violation{
				Category: "under_monthly", Employee: e.Name,
				Detail:    fmt.Sprintf("%.1fh worked, %dh min", total, cfg.MinHoursPerMonth),
				Magnitude: under,
			})
		}

		entries := timelines[e.ID]
		for i := 1; i < len(entries); i++ {
			prev, cur := entries[i-1], entries[i]
			prevEnd := prev.Day*24 + inst.Shifts[prev.ShiftIdx].End
			curStart := cur.Day*24 + inst.Shifts[cur.ShiftIdx].Start
			rest := curStart - prevEnd
			if rest < cfg.MinRestHours {
				soft = append(soft, Violation{
					Category: "no_rest_12h", Employee: e.Name, Day: cur.Day, Shift: inst.Shifts[cur.ShiftIdx].Name,
					Detail:    fmt.Sprintf("only %dh rest since the prior shift, %dh required", rest, cfg.MinRestHours),
					Magnitude: float64(cfg.MinRestHours - rest),
				})
			}
		}
	}
	return soft
}

// softMetrics aggregates mean/σ/min/max hours-per-employee and mean/σ of
// shift-count, alongside the fairness aggregate and its weighted total —
// the "Soft metrics" spec.md §4.3 lists separately from the per-violation
// soft report.
func softMetrics(sched *schedule.Schedule, inst *model.ProblemInstance, cfg config.Config, b fitness.Breakdown) SoftMetrics {
	hoursTotal := schedule.HoursPerEmployeeTotal(sched, inst)
	shiftCounts := schedule.ShiftCountPerEmployee(sched)

	n := len(inst.Employees)
	if n == 0 {
		return SoftMetrics{Fairness: b.Fairness}
	}

	hours := make([]float64, n)
	shifts := make([]float64, n)
	for i, e := range inst.Employees {
		hours[i] = hoursTotal[e.ID]
		shifts[i] = float64(shiftCounts[e.ID])
	}

	meanHours, stdHours, minHours, maxHours := stats(hours)
	meanShifts, stdShifts, _, _ := stats(shifts)

	return SoftMetrics{
		MeanHours:      meanHours,
		StdDevHours:    stdHours,
		MinHours:       minHours,
		MaxHours:       maxHours,
		MeanShiftCnt:   meanShifts,
		StdDevShiftCnt: stdShifts,
		Fairness:       b.Fairness,
		WeightedSum: b.Over30h*cfg.WOver30h +
			float64(b.NoRest12h)*cfg.WNoRest +
			b.OverMonthly*cfg.WOverMonthly +
			b.UnderMonthly*cfg.WUnderMonthly +
			b.Fairness*cfg.WFairness,
	}
}

// stats returns (mean, population stddev, min, max) of vals. vals must be
// non-empty.
func stats(vals []float64) (mean, stddev, min, max float64) {
	min, max = vals[0], vals[0]
	var sum float64
	for _, v := range vals {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean = sum / float64(len(vals))

	var sqDiff float64
	for _, v := range vals {
		d := v - mean
		sqDiff += d * d
	}
	stddev = math.Sqrt(sqDiff / float64(len(vals)))
	return mean, stddev, min, max
}

func lookup(inst *model.ProblemInstance, id int) *model.Employee {
	for i := range inst.Employees {
		if inst.Employees[i].ID == id {
			return &inst.Employees[i]
		}
	}
	return nil
}
