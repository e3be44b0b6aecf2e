// Package seed builds a greedy feasible-ish initial Schedule: a
// load-balancing heuristic that fills every cell from the lowest-
// (hours,shift-count) eligible staff in that room's department.
package seed

import (
	"math/rand"
	"sort"

	"github.com/hospitalroster/duty-scheduler/internal/roster/config"
	"github.com/hospitalroster/duty-scheduler/internal/roster/model"
	"github.com/hospitalroster/duty-scheduler/internal/roster/schedule"
)

// counters tracks the running (hours, shift-count) load used to rank
// candidates within one seed construction, keyed by employee id.
type counters struct {
	hours  map[int]float64
	shifts map[int]int
}

func newCounters() counters {
	return counters{hours: make(map[int]float64), shifts: make(map[int]int)}
}

func (c counters) less(a, b model.Employee) bool {
	if c.hours[a.ID] != c.hours[b.ID] {
		return c.hours[a.ID] < c.hours[b.ID]
	}
	if c.shifts[a.ID] != c.shifts[b.ID] {
		return c.shifts[a.ID] < c.shifts[b.ID]
	}
	return a.ID < b.ID // deterministic tie-break
}

// Build returns a full Schedule covering every (day, shift, room) cell.
// Candidate order is always (hours, shift-count, id), so the result is
// deterministic given inst alone; rng is accepted for a uniform signature
// with the rest of the core (seed/evolve/driver) and is reserved for future
// randomized tie-breaking — ties are currently broken by employee id.
func Build(inst *model.ProblemInstance, cfg config.Config, rng *rand.Rand) schedule.Schedule {
	_ = rng
	sched := schedule.New(inst)
	load := newCounters()

	for day := 0; day < inst.Days; day++ {
		for shiftIdx, shift := range inst.Shifts {
			for _, dept := range inst.Departments {
				for _, room := range dept.Rooms {
					ids := fillCell(inst, cfg, &load, day, dept.Name, float64(shift.Hours))
					sched.SetCellByRoom(day, shiftIdx, room, ids)
				}
			}
		}
	}
	return sched
}

func fillCell(inst *model.ProblemInstance, cfg config.Config, load *counters, day int, dept string, hours float64) []int {
	pool := availablePool(inst, dept, day)

	var doctors, nurses []model.Employee
	for _, e := range pool {
		if e.Role == model.RoleDoctor {
			doctors = append(doctors, e)
		} else {
			nurses = append(nurses, e)
		}
	}

	chosen := takeLowestLoad(doctors, cfg.MinDoctorPerShift, *load)
	chosen = append(chosen, takeLowestLoad(nurses, cfg.MinNursePerShift, *load)...)

	if !anySenior(chosen, cfg.MinExperienceYears) {
		if senior := lowestLoadSenior(pool, chosen, cfg.MinExperienceYears, *load); senior != nil {
			chosen = append(chosen, *senior)
		}
		// No eligible senior in the department pool: the cell is left
		// without one. The validator surfaces this as no_senior rather
		// than the constructor failing.
	}

	ids := make([]int, len(chosen))
	for i, e := range chosen {
		ids[i] = e.ID
	}
	for _, e := range chosen {
		load.hours[e.ID] += hours
		load.shifts[e.ID]++
	}
	return ids
}

// availablePool returns dept employees not on leave on day, in instance
// order; takeLowestLoad and lowestLoadSenior do the load ranking.
func availablePool(inst *model.ProblemInstance, dept string, day int) []model.Employee {
	var pool []model.Employee
	for _, e := range inst.EmployeesIn(dept) {
		if !e.IsOff(day) {
			pool = append(pool, e)
		}
	}
	return pool
}

func takeLowestLoad(candidates []model.Employee, n int, load counters) []model.Employee {
	if len(candidates) == 0 || n <= 0 {
		return nil
	}
	sorted := append([]model.Employee(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool { return load.less(sorted[i], sorted[j]) })
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

func anySenior(chosen []model.Employee, minYears int) bool {
	for _, e := range chosen {
		if e.IsSenior(minYears) {
			return true
		}
	}
	return false
}

// lowestLoadSenior finds the lowest-(hours,shifts) senior in pool that
// isn't already in chosen.
func lowestLoadSenior(pool, chosen []model.Employee, minYears int, load counters) *model.Employee {
	already := make(map[int]bool, len(chosen))
	for _, e := range chosen {
		already[e.ID] = true
	}

	var best *model.Employee
	for i := range pool {
		e := pool[i]
		if already[e.ID] || !e.IsSenior(minYears) {
			continue
		}
		if best == nil || load.less(e, *best) {
			cp := e
			best = &cp
		}
	}
	return best
}

