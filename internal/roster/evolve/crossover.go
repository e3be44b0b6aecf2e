package evolve

import (
	"math/rand"

	"github.com/hospitalroster/duty-scheduler/internal/roster/config"
	"github.com/hospitalroster/duty-scheduler/internal/roster/model"
	"github.com/hospitalroster/duty-scheduler/internal/roster/schedule"
)

// Crossover builds a child by visiting every (day, shift, room) cell of
// parent A and, with probability 0.5, taking parent B's cell instead — but
// only if B's cell already clears the per-cell hard bar (doctor/nurse
// minimums, a senior present). A B-cell that doesn't clear the bar is
// never copied in; a freshly synthesized cell takes its place instead.
// This biases the child toward locally feasible cells rather than
// inheriting an obviously broken one from B.
func Crossover(inst *model.ProblemInstance, cfg config.Config, a, b *schedule.Schedule, rng *rand.Rand) schedule.Schedule {
	child := schedule.New(inst)
	ns, nr := len(child.ShiftNames), len(child.Rooms)

	for day := 0; day < child.Days; day++ {
		for shiftIdx := 0; shiftIdx < ns; shiftIdx++ {
			for roomIdx := 0; roomIdx < nr; roomIdx++ {
				aIDs := a.Cell(day, shiftIdx, roomIdx)

				var ids []int
				if rng.Float64() < 0.5 {
					bIDs := b.Cell(day, shiftIdx, roomIdx)
					if satisfiesHardPreconditions(bIDs, inst, cfg) {
						ids = append([]int(nil), bIDs...)
					} else {
						dept := inst.DepartmentOf(child.Rooms[roomIdx])
						ids = createValidAssignment(inst, cfg, day, dept, rng)
					}
				} else {
					ids = append([]int(nil), aIDs...)
				}

				child.SetCell(day, shiftIdx, roomIdx, ids)
			}
		}
	}
	return child
}
