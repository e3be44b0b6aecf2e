package driver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalroster/duty-scheduler/internal/roster/config"
	"github.com/hospitalroster/duty-scheduler/internal/roster/driver"
	"github.com/hospitalroster/duty-scheduler/internal/roster/model"
	"github.com/hospitalroster/duty-scheduler/internal/roster/schedule"
)

func minimalScenarioInstance() model.ProblemInstance {
	// 1 department, 1 room, 3 days, 4 doctors + 6 nurses (2 senior each).
	inst := model.ProblemInstance{
		Days:   3,
		Shifts: model.StandardShifts(),
		Departments: []model.Department{
			{Name: "A", Rooms: []string{"A1"}},
		},
	}
	nextID := 1
	for i := 0; i < 4; i++ {
		years := 1
		if i < 2 {
			years = 10
		}
		inst.Employees = append(inst.Employees, model.Employee{
			ID: nextID, Name: "Doc", Role: model.RoleDoctor, Department: "A", YearsExp: years,
		})
		nextID++
	}
	for i := 0; i < 6; i++ {
		years := 1
		if i < 2 {
			years = 10
		}
		inst.Employees = append(inst.Employees, model.Employee{
			ID: nextID, Name: "Nurse", Role: model.RoleNurse, Department: "A", YearsExp: years,
		})
		nextID++
	}
	inst.Build()
	return inst
}

func smallRunConfig() config.Config {
	cfg := config.Default()
	cfg.PopulationSize = 20
	cfg.Generations = 10
	cfg.EliteSize = 2
	return cfg
}

func runToCompletion(t *testing.T, inst *model.ProblemInstance, cfg config.Config, seed int64) (best driver.Event, history []float64) {
	t.Helper()
	run := driver.NewRun()
	go run.Execute(inst, cfg, seed)

	for ev := range run.Events() {
		switch ev.Type {
		case driver.EventProgress, driver.EventStagnationHillClimb:
			history = append(history, ev.BestScore)
		case driver.EventCompleted, driver.EventFailed, driver.EventCancelled:
			best = ev
		}
	}
	return best, history
}

func TestMinimalInstanceConverges(t *testing.T) {
	inst := minimalScenarioInstance()
	cfg := smallRunConfig()

	best, history := runToCompletion(t, &inst, cfg, 42)
	require.Equal(t, driver.EventCompleted, best.Type)
	require.NotEmpty(t, history)

	assert.LessOrEqual(t, history[len(history)-1], history[0], "best score should not regress across the run")

	cells := 0
	best.Schedule.Walk(func(c schedule.Cursor) { cells++ })
	assert.Equal(t, inst.Days*len(inst.Shifts)*1, cells)
}

func TestDeterminismAcrossRunsWithSameSeed(t *testing.T) {
	inst := minimalScenarioInstance()
	cfg := smallRunConfig()

	bestA, historyA := runToCompletion(t, &inst, cfg, 42)
	bestB, historyB := runToCompletion(t, &inst, cfg, 42)

	require.Equal(t, driver.EventCompleted, bestA.Type)
	require.Equal(t, driver.EventCompleted, bestB.Type)
	assert.Equal(t, bestA.BestScore, bestB.BestScore)
	assert.Equal(t, historyA, historyB)
}

func TestMonotoneIncumbentAcrossProgressEvents(t *testing.T) {
	inst := minimalScenarioInstance()
	cfg := smallRunConfig()
	_, history := runToCompletion(t, &inst, cfg, 7)

	for i := 1; i < len(history); i++ {
		assert.LessOrEqual(t, history[i], history[i-1], "incumbent fitness must never increase between progress events")
	}
}

func TestCancellationReturnsBestIncumbentSoFar(t *testing.T) {
	inst := minimalScenarioInstance()
	cfg := smallRunConfig()
	cfg.Generations = 1000

	run := driver.NewRun()
	go run.Execute(&inst, cfg, 42)

	var lastProgress float64
	generationsSeen := 0
	for ev := range run.Events() {
		switch ev.Type {
		case driver.EventProgress:
			lastProgress = ev.BestScore
			generationsSeen++
			if generationsSeen == 3 {
				run.Cancel()
			}
		case driver.EventCancelled:
			assert.Equal(t, lastProgress, ev.BestScore)
		case driver.EventCompleted:
			t.Fatal("run should have been cancelled before completion")
		}
	}
}

func TestSeniorityScarcityProducesExpectedNoSeniorCount(t *testing.T) {
	inst := minimalScenarioInstance()
	for i := range inst.Employees {
		inst.Employees[i].YearsExp = 1 // nobody meets the seniority bar
	}
	cfg := smallRunConfig()
	cfg.Generations = 3

	best, _ := runToCompletion(t, &inst, cfg, 42)
	require.Equal(t, driver.EventCompleted, best.Type)
	expected := len(inst.Shifts) * 1 * inst.Days
	assert.Equal(t, expected, best.Breakdown.NoSenior)
}
