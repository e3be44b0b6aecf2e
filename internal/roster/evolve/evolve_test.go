package evolve_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalroster/duty-scheduler/internal/roster/config"
	"github.com/hospitalroster/duty-scheduler/internal/roster/evolve"
	"github.com/hospitalroster/duty-scheduler/internal/roster/fitness"
	"github.com/hospitalroster/duty-scheduler/internal/roster/model"
	"github.com/hospitalroster/duty-scheduler/internal/roster/schedule"
	"github.com/hospitalroster/duty-scheduler/internal/roster/seed"
)

func twoDeptInstance() model.ProblemInstance {
	inst := model.ProblemInstance{
		Days:   7,
		Shifts: model.StandardShifts(),
		Departments: []model.Department{
			{Name: "A", Rooms: []string{"A1"}},
			{Name: "B", Rooms: []string{"B1"}},
		},
	}
	nextID := 1
	for _, dept := range []string{"A", "B"} {
		for i := 0; i < 4; i++ {
			role := model.RoleDoctor
			if i >= 2 {
				role = model.RoleNurse
			}
			years := 1
			if i == 0 {
				years = 10
			}
			inst.Employees = append(inst.Employees, model.Employee{
				ID: nextID, Name: "E", Role: role, Department: dept, YearsExp: years,
			})
			nextID++
		}
	}
	inst.Build()
	return inst
}

func TestSelectNeverPicksOutsideTheTruncatedPool(t *testing.T) {
	inst := twoDeptInstance()
	cfg := config.Default()
	cfg.ParentPoolRatio = 0.2
	cfg.TournamentK = 3
	rng := rand.New(rand.NewSource(1))

	pop := make([]evolve.Individual, 10)
	for i := range pop {
		pop[i] = evolve.Individual{Fitness: float64(i)}
	}

	for i := 0; i < 50; i++ {
		picked := evolve.Select(pop, cfg, rng)
		assert.LessOrEqual(t, picked.Fitness, 1.0, "truncation to the top 20%% of 10 ranked individuals keeps fitness in {0,1}")
	}
}

func TestCrossoverPreservesCellCardinality(t *testing.T) {
	inst := twoDeptInstance()
	cfg := config.Default()
	rng := rand.New(rand.NewSource(42))

	a := seed.Build(&inst, cfg, rng)
	b := seed.Build(&inst, cfg, rng)
	child := evolve.Crossover(&inst, cfg, &a, &b, rng)

	maxAllowed := cfg.MinDoctorPerShift + cfg.MinNursePerShift + 1
	child.Walk(func(c schedule.Cursor) {
		assert.LessOrEqual(t, len(c.IDs), maxAllowed)
		seen := map[int]bool{}
		for _, id := range c.IDs {
			assert.False(t, seen[id])
			seen[id] = true
		}
	})
}

func TestScrambleMutateNeverMixesRooms(t *testing.T) {
	inst := twoDeptInstance()
	cfg := config.Default()
	rng := rand.New(rand.NewSource(1))
	sched := seed.Build(&inst, cfg, rng)

	before := map[int]map[string]bool{} // day -> room -> had any staff
	sched.Walk(func(c schedule.Cursor) {
		if before[c.Day] == nil {
			before[c.Day] = map[string]bool{}
		}
		if len(c.IDs) > 0 {
			before[c.Day][c.Room] = true
		}
	})

	for i := 0; i < 20; i++ {
		evolve.ScrambleMutate(&sched, &inst, cfg, rng)
	}

	// Employees only ever belong to their home department's rooms; a
	// scramble mutation must not leak an A-department id into a B room.
	employees := make(map[int]model.Employee, len(inst.Employees))
	for _, e := range inst.Employees {
		employees[e.ID] = e
	}
	sched.Walk(func(c schedule.Cursor) {
		dept := inst.DepartmentOf(c.Room)
		for _, id := range c.IDs {
			e, ok := employees[id]
			require.True(t, ok)
			assert.Equal(t, dept, e.Department)
		}
	})
}

func TestBalanceMutateOnlySwapsSameRoleAndDept(t *testing.T) {
	inst := twoDeptInstance()
	cfg := config.Default()
	rng := rand.New(rand.NewSource(3))
	sched := seed.Build(&inst, cfg, rng)

	before := sched.Clone()
	evolve.BalanceMutate(&sched, &inst, rng)

	employees := make(map[int]model.Employee, len(inst.Employees))
	for _, e := range inst.Employees {
		employees[e.ID] = e
	}

	// Whatever changed, every cell's occupants remain homed in the room's
	// department, and each cell keeps its size and its doctor count: a
	// swap only ever replaces an employee with one of the same role and
	// department.
	sched.Walk(func(c schedule.Cursor) {
		dept := inst.DepartmentOf(c.Room)
		beforeIDs := before.Cell(c.Day, c.ShiftIdx, c.RoomIdx)
		doctorsBefore, doctorsAfter := 0, 0
		for _, id := range beforeIDs {
			if employees[id].Role == model.RoleDoctor {
				doctorsBefore++
			}
		}
		for _, id := range c.IDs {
			e, ok := employees[id]
			assert.True(t, ok)
			assert.Equal(t, dept, e.Department)
			if e.Role == model.RoleDoctor {
				doctorsAfter++
			}
		}
		assert.Equal(t, len(beforeIDs), len(c.IDs))
		assert.Equal(t, doctorsBefore, doctorsAfter)
	})
}

func TestMutateIsANoOpSafeOperation(t *testing.T) {
	// A single-employee instance can't find an over/under pair or a
	// second shift to scramble meaningfully; Mutate must not panic.
	inst := model.ProblemInstance{
		Days:   1,
		Shifts: model.StandardShifts(),
		Departments: []model.Department{{Name: "A", Rooms: []string{"A1"}}},
		Employees: []model.Employee{
			{ID: 1, Name: "Solo", Role: model.RoleDoctor, Department: "A", YearsExp: 1},
		},
	}
	inst.Build()
	cfg := config.Default()
	sched := schedule.New(&inst)
	rng := rand.New(rand.NewSource(9))

	assert.NotPanics(t, func() {
		for i := 0; i < 10; i++ {
			evolve.Mutate(&sched, &inst, cfg, rng)
		}
	})
}

func TestMutateWithBothRatesAtOneDoesNotPanic(t *testing.T) {
	// MutationRate=1 and BalanceMutationRate=1 open both kernels' gates on
	// every call.
	inst := twoDeptInstance()
	cfg := config.Default()
	cfg.MutationRate = 1
	cfg.BalanceMutationRate = 1
	rng := rand.New(rand.NewSource(7))
	sched := seed.Build(&inst, cfg, rng)

	before := sched.Clone()
	evolve.Mutate(&sched, &inst, cfg, rng)

	// Smoke check: with both gates open, a second Mutate call on a fresh
	// clone of the seed completes without panicking. Which kernels fired
	// is not observed here.
	assert.NotPanics(t, func() {
		evolve.Mutate(&before, &inst, cfg, rng)
	})
}

func TestMutateNeverFiresWhenBothRatesAreZero(t *testing.T) {
	inst := twoDeptInstance()
	cfg := config.Default()
	cfg.MutationRate = 0
	cfg.BalanceMutationRate = 0
	rng := rand.New(rand.NewSource(7))
	sched := seed.Build(&inst, cfg, rng)
	before := sched.Clone()

	evolve.Mutate(&sched, &inst, cfg, rng)

	assert.Equal(t, before, sched)
}

func TestHillClimbNeverWorsensFitness(t *testing.T) {
	inst := twoDeptInstance()
	cfg := config.Default()
	cfg.HillClimbSteps = 20
	rng := rand.New(rand.NewSource(5))

	sched := seed.Build(&inst, cfg, rng)
	before := fitness.Scalar(&sched, &inst, cfg)

	climbed := evolve.HillClimb(sched, &inst, cfg, rng)
	after := fitness.Scalar(&climbed, &inst, cfg)

	assert.LessOrEqual(t, after, before)
}

func TestHillClimbCloneDoesNotAliasInput(t *testing.T) {
	inst := twoDeptInstance()
	cfg := config.Default()
	rng := rand.New(rand.NewSource(5))
	sched := seed.Build(&inst, cfg, rng)

	origCell := append([]int(nil), sched.CellByRoom(0, 0, "A1")...)
	_ = evolve.HillClimb(sched, &inst, cfg, rng)

	assert.Equal(t, origCell, sched.CellByRoom(0, 0, "A1"))
}
