package model

import (
	"math/rand"
	"strconv"
)

// StandardShifts returns the Morning/Afternoon/Night catalogue used by the
// sample instance and tests. Night wraps past 24 (18->30).
func StandardShifts() []Shift {
	return []Shift{
		{Name: "Morning", Start: 6, End: 14, Hours: 8},
		{Name: "Afternoon", Start: 14, End: 18, Hours: 4},
		{Name: "Night", Start: 18, End: 30, Hours: 12},
	}
}

// SampleSizing controls how big a synthetic instance NewSampleInstance
// builds. Every field except DayOffCount has a sane default applied by
// NewSampleInstance when left at zero; a zero DayOffCount gives no days off.
type SampleSizing struct {
	Departments    int
	RoomsPerDept   int
	Days           int
	DoctorsPerDept int
	NursesPerDept  int
	SeniorYears    int
	DayOffCount    int
}

func (s SampleSizing) withDefaults() SampleSizing {
	if s.Departments <= 0 {
		s.Departments = 2
	}
	if s.RoomsPerDept <= 0 {
		s.RoomsPerDept = 2
	}
	if s.Days <= 0 {
		s.Days = 7
	}
	if s.DoctorsPerDept <= 0 {
		s.DoctorsPerDept = 4
	}
	if s.NursesPerDept <= 0 {
		s.NursesPerDept = 6
	}
	if s.SeniorYears <= 0 {
		s.SeniorYears = 5
	}
	return s
}

// NewSampleInstance deterministically fabricates a problem instance from a
// seeded RNG: randomized staff experience and day-off sets over a fixed
// department/room/shift skeleton. Only used by the `roster sample` CLI
// command — data acquisition proper is an external concern.
func NewSampleInstance(rng *rand.Rand, sizing SampleSizing) ProblemInstance {
	sizing = sizing.withDefaults()

	var depts []Department
	var employees []Employee
	nextID := 1

	for d := 0; d < sizing.Departments; d++ {
		deptName := deptLetterName(d)
		rooms := make([]string, sizing.RoomsPerDept)
		for r := 0; r < sizing.RoomsPerDept; r++ {
			rooms[r] = deptName + "-Room" + strconv.Itoa(r+1)
		}
		depts = append(depts, Department{Name: deptName, Rooms: rooms})

		for i := 0; i < sizing.DoctorsPerDept; i++ {
			employees = append(employees, newSampleEmployee(rng, &nextID, deptName, RoleDoctor, sizing))
		}
		for i := 0; i < sizing.NursesPerDept; i++ {
			employees = append(employees, newSampleEmployee(rng, &nextID, deptName, RoleNurse, sizing))
		}
	}

	inst := ProblemInstance{
		Days:        sizing.Days,
		Shifts:      StandardShifts(),
		Departments: depts,
		Employees:   employees,
	}
	inst.Build()
	return inst
}

func newSampleEmployee(rng *rand.Rand, nextID *int, dept string, role Role, sizing SampleSizing) Employee {
	id := *nextID
	*nextID++

	years := rng.Intn(sizing.SeniorYears * 2)
	daysOff := make(map[int]struct{})
	for i := 0; i < sizing.DayOffCount; i++ {
		daysOff[rng.Intn(sizing.Days)] = struct{}{}
	}

	return Employee{
		ID:         id,
		Name:       string(role) + "-" + strconv.Itoa(id),
		Role:       role,
		Department: dept,
		YearsExp:   years,
		DaysOff:    daysOff,
	}
}

func deptLetterName(i int) string {
	return "Dept" + string(rune('A'+i))
}
