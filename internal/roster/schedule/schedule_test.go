package schedule_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalroster/duty-scheduler/internal/roster/model"
	"github.com/hospitalroster/duty-scheduler/internal/roster/schedule"
)

func twoRoomInstance() model.ProblemInstance {
	inst := model.ProblemInstance{
		Days:   2,
		Shifts: model.StandardShifts(),
		Departments: []model.Department{
			{Name: "A", Rooms: []string{"A1", "A2"}},
		},
		Employees: []model.Employee{
			{ID: 1, Name: "Alice", Role: model.RoleDoctor, Department: "A", YearsExp: 10},
		},
	}
	inst.Build()
	return inst
}

func TestNewCoversFullCrossProduct(t *testing.T) {
	inst := twoRoomInstance()
	sched := schedule.New(&inst)

	count := 0
	sched.Walk(func(c schedule.Cursor) { count++ })
	assert.Equal(t, inst.Days*len(inst.Shifts)*2, count)
}

func TestSetCellAndCellRoundTrip(t *testing.T) {
	inst := twoRoomInstance()
	sched := schedule.New(&inst)
	sched.SetCellByRoom(0, 0, "A1", []int{1})
	assert.Equal(t, []int{1}, sched.CellByRoom(0, 0, "A1"))
	assert.Empty(t, sched.CellByRoom(0, 0, "A2"))
}

func TestCloneDoesNotAliasCells(t *testing.T) {
	inst := twoRoomInstance()
	sched := schedule.New(&inst)
	sched.SetCellByRoom(0, 0, "A1", []int{1})

	clone := sched.Clone()
	if diff := cmp.Diff(sched.CellByRoom(0, 0, "A1"), clone.CellByRoom(0, 0, "A1")); diff != "" {
		t.Fatalf("clone diverged from source before mutation: %s", diff)
	}

	mutated := clone.CellByRoom(0, 0, "A1")
	mutated[0] = 999
	clone.SetCellByRoom(0, 0, "A1", mutated)

	assert.Equal(t, []int{1}, sched.CellByRoom(0, 0, "A1"), "mutating the clone must not alias the original")
	assert.Equal(t, []int{999}, clone.CellByRoom(0, 0, "A1"))
}

func TestRoomIndexUnknownRoom(t *testing.T) {
	inst := twoRoomInstance()
	sched := schedule.New(&inst)
	assert.Equal(t, -1, sched.RoomIndex("nope"))
}

func TestWorkloadDerivations(t *testing.T) {
	inst := twoRoomInstance()
	sched := schedule.New(&inst)
	sched.SetCellByRoom(0, 0, "A1", []int{1}) // Morning, 8h
	sched.SetCellByRoom(0, 2, "A1", []int{1}) // Night, 12h, same day

	total := schedule.HoursPerEmployeeTotal(&sched, &inst)
	require.InDelta(t, 20.0, total[1], 0.001)

	perWeek := schedule.HoursPerEmployeeWeek(&sched, &inst)
	require.InDelta(t, 20.0, perWeek[1][0], 0.001)

	counts := schedule.ShiftCountPerEmployee(&sched)
	assert.Equal(t, 2, counts[1])

	timeline := schedule.TimelinePerEmployee(&sched, &inst)
	require.Len(t, timeline[1], 2)
	assert.Equal(t, 0, timeline[1][0].ShiftIdx) // Morning sorts before Night
	assert.Equal(t, 2, timeline[1][1].ShiftIdx)
}
