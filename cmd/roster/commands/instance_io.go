package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hospitalroster/duty-scheduler/internal/roster/model"
	"github.com/hospitalroster/duty-scheduler/pkg/models"
)

// loadInstance reads and parses an instance JSON file in the same shape
// the HTTP API's InstanceInput binds, so a file validated or generated by
// the CLI is also a valid /api/runs request body.
func loadInstance(path string) (model.ProblemInstance, []model.ValidationError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ProblemInstance{}, nil, fmt.Errorf("failed to read instance file: %w", err)
	}

	var input models.InstanceInput
	if err := json.Unmarshal(data, &input); err != nil {
		return model.ProblemInstance{}, nil, fmt.Errorf("failed to parse instance JSON: %w", err)
	}

	inst, errs := input.ToProblemInstance()
	return inst, errs, nil
}

// instanceToInput converts an engine instance back into the wire DTO, the
// shape `sample` prints so its output is directly usable by `generate`
// and `validate`.
func instanceToInput(inst model.ProblemInstance) models.InstanceInput {
	out := models.InstanceInput{
		Days:        inst.Days,
		Shifts:      make([]models.ShiftInput, len(inst.Shifts)),
		Departments: make([]models.DepartmentInput, len(inst.Departments)),
		Employees:   make([]models.EmployeeInput, len(inst.Employees)),
	}
	for i, s := range inst.Shifts {
		out.Shifts[i] = models.ShiftInput{Name: s.Name, Start: s.Start, End: s.End, Hours: s.Hours}
	}
	for i, d := range inst.Departments {
		out.Departments[i] = models.DepartmentInput{Name: d.Name, Rooms: append([]string(nil), d.Rooms...)}
	}
	for i, e := range inst.Employees {
		var daysOff []int
		for d := range e.DaysOff {
			daysOff = append(daysOff, d)
		}
		out.Employees[i] = models.EmployeeInput{
			ID:         e.ID,
			Name:       e.Name,
			Role:       string(e.Role),
			Department: e.Department,
			YearsExp:   e.YearsExp,
			DaysOff:    daysOff,
		}
	}
	return out
}
