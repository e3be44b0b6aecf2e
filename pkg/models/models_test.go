package models

import (
	"testing"
	"time"
)

func TestToProblemInstanceExpandsLeaveRRule(t *testing.T) {
	horizon := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) // a Monday
	in := InstanceInput{
		Days:         14,
		HorizonStart: horizon,
		Shifts:       []ShiftInput{{Name: "Morning", Start: 6, End: 14, Hours: 8}},
		Departments:  []DepartmentInput{{Name: "A", Rooms: []string{"A1"}}},
		Employees: []EmployeeInput{
			{
				ID: 1, Name: "Alice", Role: "doctor", Department: "A",
				LeaveRRule: []string{"FREQ=WEEKLY;BYDAY=SA,SU"},
			},
		},
	}

	inst, errs := in.ToProblemInstance()
	if len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}

	emp := inst.Employees[0]
	if !emp.IsOff(5) || !emp.IsOff(6) {
		t.Errorf("expected the first weekend (days 5,6) to be expanded into DaysOff, got %v", emp.DaysOff)
	}
	if emp.IsOff(0) {
		t.Errorf("Monday (day 0) should not be a day off")
	}
}

func TestToProblemInstanceMergesExplicitAndExpandedLeave(t *testing.T) {
	horizon := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	in := InstanceInput{
		Days:         7,
		HorizonStart: horizon,
		Shifts:       []ShiftInput{{Name: "Morning", Start: 6, End: 14, Hours: 8}},
		Departments:  []DepartmentInput{{Name: "A", Rooms: []string{"A1"}}},
		Employees: []EmployeeInput{
			{
				ID: 1, Name: "Bob", Role: "nurse", Department: "A",
				DaysOff:    []int{2},
				LeaveRRule: []string{"FREQ=WEEKLY;BYDAY=SA"},
			},
		},
	}

	inst, errs := in.ToProblemInstance()
	if len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}

	emp := inst.Employees[0]
	if !emp.IsOff(2) {
		t.Errorf("explicit day-off 2 should survive merging with expanded leave")
	}
	if !emp.IsOff(5) {
		t.Errorf("expanded Saturday (day 5) should also be present")
	}
}

func TestToProblemInstanceReportsInvalidRRule(t *testing.T) {
	in := InstanceInput{
		Days:        3,
		Shifts:      []ShiftInput{{Name: "Morning", Start: 6, End: 14, Hours: 8}},
		Departments: []DepartmentInput{{Name: "A", Rooms: []string{"A1"}}},
		Employees: []EmployeeInput{
			{ID: 1, Name: "Carol", Role: "doctor", Department: "A", LeaveRRule: []string{"NOT-A-VALID-RRULE"}},
		},
	}

	_, errs := in.ToProblemInstance()
	if len(errs) == 0 {
		t.Fatal("expected a validation error for a malformed RRULE")
	}
}
