package evolve

import (
	"math/rand"

	"github.com/hospitalroster/duty-scheduler/internal/roster/config"
	"github.com/hospitalroster/duty-scheduler/internal/roster/model"
	"github.com/hospitalroster/duty-scheduler/internal/roster/schedule"
)

// Mutate rolls each mutation kernel's own gate independently: ScrambleMutate
// fires with probability cfg.MutationRate, BalanceMutate with probability
// cfg.BalanceMutationRate — either, both, or neither may apply in a single
// call, matching the spec's two separate "with probability" clauses rather
// than a single either/or choice. Both operators are no-ops when they can't
// find anything to improve (no departments, no over/under pair, etc.)
// rather than erroring.
func Mutate(sched *schedule.Schedule, inst *model.ProblemInstance, cfg config.Config, rng *rand.Rand) {
	if rng.Float64() < cfg.MutationRate {
		ScrambleMutate(sched, inst, cfg, rng)
	}
	if rng.Float64() < cfg.BalanceMutationRate {
		BalanceMutate(sched, inst, rng)
	}
}

// ScrambleMutate picks a random day, department and one of its rooms,
// collects that room's shift assignments for the day, repairs any
// deficient cell with a freshly synthesized one, then shuffles which
// shift each assignment lands on. Shuffling the landing shift is what
// lets this operator discover better rest patterns: the same people,
// reassigned to a different shift order that day.
func ScrambleMutate(sched *schedule.Schedule, inst *model.ProblemInstance, cfg config.Config, rng *rand.Rand) {
	if len(inst.Departments) == 0 || sched.Days == 0 {
		return
	}
	day := rng.Intn(sched.Days)
	dept := inst.Departments[rng.Intn(len(inst.Departments))]
	if len(dept.Rooms) == 0 {
		return
	}
	room := dept.Rooms[rng.Intn(len(dept.Rooms))]
	roomIdx := sched.RoomIndex(room)
	if roomIdx < 0 {
		return
	}

	ns := len(sched.ShiftNames)
	assignments := make([][]int, ns)
	for shiftIdx := 0; shiftIdx < ns; shiftIdx++ {
		ids := sched.Cell(day, shiftIdx, roomIdx)
		if !satisfiesHardPreconditions(ids, inst, cfg) {
			ids = createValidAssignment(inst, cfg, day, dept.Name, rng)
		}
		assignments[shiftIdx] = append([]int(nil), ids...)
	}

	order := rng.Perm(ns)
	for shiftIdx, src := range order {
		sched.SetCell(day, shiftIdx, roomIdx, assignments[src])
	}
}

// BalanceMutate targets the fairness/monthly-bound soft categories
// directly: it finds an over-worked employee (hours above mean+10) and an
// under-worked one (below mean-10) who share a role and department, then
// substitutes the under-worked one into the first cell it finds where the
// over-worked one is assigned and the under-worked one isn't. If no
// qualifying pair exists, or none shares role and department, the
// schedule is left unchanged.
func BalanceMutate(sched *schedule.Schedule, inst *model.ProblemInstance, rng *rand.Rand) {
	totals := schedule.HoursPerEmployeeTotal(sched, inst)
	if len(inst.Employees) == 0 {
		return
	}

	var sum float64
	for _, e := range inst.Employees {
		sum += totals[e.ID]
	}
	mean := sum / float64(len(inst.Employees))

	var over, under []model.Employee
	for _, e := range inst.Employees {
		h := totals[e.ID]
		if h > mean+10 {
			over = append(over, e)
		} else if h < mean-10 {
			under = append(under, e)
		}
	}
	if len(over) == 0 || len(under) == 0 {
		return
	}

	shuffle(over, rng)
	shuffle(under, rng)

	var overE, underE *model.Employee
	for i := range over {
		for j := range under {
			if over[i].Role == under[j].Role && over[i].Department == under[j].Department {
				overE, underE = &over[i], &under[j]
				break
			}
		}
		if overE != nil {
			break
		}
	}
	if overE == nil {
		return
	}

	ns := len(sched.ShiftNames)
	rooms := inst.RoomsOf(overE.Department)
	if len(rooms) == 0 {
		return
	}

	order := rng.Perm(sched.Days)
	for _, day := range order {
		if underE.IsOff(day) {
			continue
		}
		for _, roomName := range rooms {
			roomIdx := sched.RoomIndex(roomName)
			for shiftIdx := 0; shiftIdx < ns; shiftIdx++ {
				ids := sched.Cell(day, shiftIdx, roomIdx)
				pos := indexOf(ids, overE.ID)
				if pos < 0 || containsID(ids, underE.ID) {
					continue
				}
				swapped := append([]int(nil), ids...)
				swapped[pos] = underE.ID
				sched.SetCell(day, shiftIdx, roomIdx, swapped)
				return
			}
		}
	}
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func containsID(ids []int, id int) bool {
	return indexOf(ids, id) >= 0
}
