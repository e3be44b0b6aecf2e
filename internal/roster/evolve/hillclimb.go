package evolve

import (
	"math/rand"

	"github.com/hospitalroster/duty-scheduler/internal/roster/config"
	"github.com/hospitalroster/duty-scheduler/internal/roster/fitness"
	"github.com/hospitalroster/duty-scheduler/internal/roster/model"
	"github.com/hospitalroster/duty-scheduler/internal/roster/schedule"
)

// HillClimb runs cfg.HillClimbSteps rounds of first-improvement local
// search: each round clones the incumbent, picks a random (day, room) and
// two distinct shifts within it, and swaps their assignments — synthesizing
// a fresh valid cell for either side that doesn't already clear the
// per-cell hard bar, rather than swapping in a known-deficient cell. The
// neighbour is kept only if it strictly lowers the scalar fitness; a round
// that doesn't improve simply leaves the incumbent unchanged and moves on.
// The driver runs it on the incumbent after cfg.StagnationLimit
// consecutive non-improving generations.
func HillClimb(sched schedule.Schedule, inst *model.ProblemInstance, cfg config.Config, rng *rand.Rand) schedule.Schedule {
	best := sched.Clone()
	bestScore := fitness.Scalar(&best, inst, cfg)

	ns, nr := len(best.ShiftNames), len(best.Rooms)
	if best.Days == 0 || ns < 2 || nr == 0 {
		return best
	}

	for step := 0; step < cfg.HillClimbSteps; step++ {
		day := rng.Intn(best.Days)
		roomIdx := rng.Intn(nr)
		room := best.Rooms[roomIdx]
		dept := inst.DepartmentOf(room)
		shiftA, shiftB := distinctShiftPair(ns, rng)

		trial := best.Clone()
		idsA := trial.Cell(day, shiftA, roomIdx)
		if !satisfiesHardPreconditions(idsA, inst, cfg) {
			idsA = createValidAssignment(inst, cfg, day, dept, rng)
		}
		idsB := trial.Cell(day, shiftB, roomIdx)
		if !satisfiesHardPreconditions(idsB, inst, cfg) {
			idsB = createValidAssignment(inst, cfg, day, dept, rng)
		}

		trial.SetCell(day, shiftA, roomIdx, idsB)
		trial.SetCell(day, shiftB, roomIdx, idsA)

		score := fitness.Scalar(&trial, inst, cfg)
		if score < bestScore {
			best = trial
			bestScore = score
		}
	}
	return best
}

// distinctShiftPair picks two different shift indices in [0, ns).
func distinctShiftPair(ns int, rng *rand.Rand) (int, int) {
	a := rng.Intn(ns)
	b := rng.Intn(ns - 1)
	if b >= a {
		b++
	}
	return a, b
}
