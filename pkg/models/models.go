// Package models defines the JSON wire shapes the HTTP API binds
// requests and responses to, converting between them and the engine's
// internal/roster/model types at the boundary; the external interface
// never exposes internal/roster types directly.
package models

import (
	"fmt"
	"time"

	"github.com/hospitalroster/duty-scheduler/internal/roster/leave"
	"github.com/hospitalroster/duty-scheduler/internal/roster/model"
	"github.com/hospitalroster/duty-scheduler/internal/roster/validator"
)

// EmployeeInput is the wire shape of one staff member. DaysOff is a flat
// list of horizon-relative day indices; LeaveRRule supplements it with
// recurring patterns (e.g. "FREQ=WEEKLY;BYDAY=SA,SU") expanded against
// HorizonStart at conversion time, so a caller doesn't have to enumerate
// every weekend day by hand.
type EmployeeInput struct {
	ID         int      `json:"id" binding:"required"`
	Name       string   `json:"name" binding:"required"`
	Role       string   `json:"role" binding:"required,oneof=doctor nurse"`
	Department string   `json:"department" binding:"required"`
	YearsExp   int      `json:"years_experience"`
	DaysOff    []int    `json:"days_off"`
	LeaveRRule []string `json:"leave_rrules,omitempty"`
}

// ShiftInput is the wire shape of one shift definition.
type ShiftInput struct {
	Name  string `json:"name" binding:"required"`
	Start int    `json:"start" binding:"gte=0"`
	End   int    `json:"end" binding:"required"`
	Hours int    `json:"hours" binding:"gt=0"`
}

// DepartmentInput is the wire shape of one department and its rooms.
type DepartmentInput struct {
	Name  string   `json:"name" binding:"required"`
	Rooms []string `json:"rooms" binding:"required,min=1"`
}

// InstanceInput is the full problem instance as submitted over HTTP.
// HorizonStart anchors day 0 for any employee's LeaveRRule expansion; it
// may be left zero when no employee uses recurring leave.
type InstanceInput struct {
	Days         int               `json:"days" binding:"required,gt=0"`
	HorizonStart time.Time         `json:"horizon_start,omitempty"`
	Shifts       []ShiftInput      `json:"shifts" binding:"required,min=1,dive"`
	Departments  []DepartmentInput `json:"departments" binding:"required,min=1,dive"`
	Employees    []EmployeeInput   `json:"employees" binding:"required,min=1,dive"`
}

// ToProblemInstance converts the wire shape into the engine's
// model.ProblemInstance, expanding any LeaveRRule patterns against
// HorizonStart and merging them into each employee's DaysOff before
// running the engine's fail-fast structural validation.
func (in InstanceInput) ToProblemInstance() (model.ProblemInstance, []model.ValidationError) {
	inst := model.ProblemInstance{
		Days:        in.Days,
		Shifts:      make([]model.Shift, len(in.Shifts)),
		Departments: make([]model.Department, len(in.Departments)),
		Employees:   make([]model.Employee, len(in.Employees)),
	}

	for i, s := range in.Shifts {
		inst.Shifts[i] = model.Shift{Name: s.Name, Start: s.Start, End: s.End, Hours: s.Hours}
	}
	for i, d := range in.Departments {
		inst.Departments[i] = model.Department{Name: d.Name, Rooms: append([]string(nil), d.Rooms...)}
	}

	expandedLeave, leaveErr := expandLeaveRules(in, inst.Days)

	for i, e := range in.Employees {
		daysOff := make(map[int]struct{}, len(e.DaysOff))
		for _, d := range e.DaysOff {
			daysOff[d] = struct{}{}
		}
		for d := range expandedLeave[e.ID] {
			daysOff[d] = struct{}{}
		}
		inst.Employees[i] = model.Employee{
			ID:         e.ID,
			Name:       e.Name,
			Role:       model.Role(e.Role),
			Department: e.Department,
			YearsExp:   e.YearsExp,
			DaysOff:    daysOff,
		}
	}

	inst.Build()
	errs := model.Validate(&inst)
	if leaveErr != nil {
		errs = append(errs, model.ValidationError{Field: "employees[].leave_rrules", Message: leaveErr.Error()})
	}
	return inst, errs
}

// expandLeaveRules collects every employee's LeaveRRule strings and expands
// them in one leave.Expand call, so a malformed rule surfaces as a single
// instance-invalid error rather than failing silently per employee.
func expandLeaveRules(in InstanceInput, days int) (map[int]map[int]struct{}, error) {
	var rules []leave.Rule
	for _, e := range in.Employees {
		for _, r := range e.LeaveRRule {
			rules = append(rules, leave.Rule{EmployeeID: e.ID, RRule: r})
		}
	}
	if len(rules) == 0 {
		return nil, nil
	}
	horizonStart := in.HorizonStart
	if horizonStart.IsZero() {
		horizonStart = time.Now().Truncate(24 * time.Hour)
	}
	return leave.Expand(rules, horizonStart, days)
}

// RunRequest submits an instance plus optional tuning for one optimisation
// run. ConfigOverrides keys match config.Config's YAML tag names.
type RunRequest struct {
	Instance        InstanceInput  `json:"instance" binding:"required"`
	Seed            int64          `json:"seed"`
	ConfigOverrides map[string]any `json:"config_overrides"`
}

// RunAccepted is returned immediately after a run is queued.
type RunAccepted struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// AssignmentOutput is one (day, shift, room) cell in a flattened,
// wire-friendly form.
type AssignmentOutput struct {
	Day       int    `json:"day"`
	Shift     string `json:"shift"`
	Room      string `json:"room"`
	Employees []int  `json:"employee_ids"`
}

// RunStatus reports a run's progress or, once finished, its full result.
type RunStatus struct {
	RunID       string             `json:"run_id"`
	Status      string             `json:"status"`
	Generation  int                `json:"generation"`
	BestScore   float64            `json:"best_score"`
	Assignments []AssignmentOutput `json:"assignments,omitempty"`
	Report      *validator.Report  `json:"report,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// ValidationResult is the response body of the instance-validation
// endpoint.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidationResult flattens model.ValidationError into plain strings
// for the wire.
func NewValidationResult(errs []model.ValidationError) ValidationResult {
	if len(errs) == 0 {
		return ValidationResult{Valid: true}
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return ValidationResult{Valid: false, Errors: out}
}
