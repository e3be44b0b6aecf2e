package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hospitalroster/duty-scheduler/internal/roster/config"
	"github.com/hospitalroster/duty-scheduler/internal/roster/driver"
	"github.com/hospitalroster/duty-scheduler/internal/roster/model"
	"github.com/hospitalroster/duty-scheduler/internal/roster/schedule"
	"github.com/hospitalroster/duty-scheduler/internal/roster/validator"
	"github.com/hospitalroster/duty-scheduler/pkg/database"
	"github.com/hospitalroster/duty-scheduler/pkg/models"
)

// runState is the in-memory record of one run in flight, updated by the
// goroutine draining its event channel and read by GetRun/CancelRun.
type runState struct {
	mu sync.Mutex

	run        *driver.Run
	status     string
	generation int
	bestScore  float64
	sched      *schedule.Schedule
	report     *validator.Report
	err        error
}

func (s *runState) snapshot() models.RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := models.RunStatus{
		Status:     s.status,
		Generation: s.generation,
		BestScore:  s.bestScore,
	}
	if s.err != nil {
		out.Error = s.err.Error()
	}
	if s.report != nil {
		out.Report = s.report
	}
	if s.sched != nil {
		out.Assignments = flattenSchedule(s.sched)
	}
	return out
}

func flattenSchedule(sched *schedule.Schedule) []models.AssignmentOutput {
	var out []models.AssignmentOutput
	sched.Walk(func(c schedule.Cursor) {
		out = append(out, models.AssignmentOutput{
			Day:       c.Day,
			Shift:     c.ShiftName,
			Room:      c.Room,
			Employees: append([]int(nil), c.IDs...),
		})
	})
	return out
}

// CreateRun validates the submitted instance, resolves the run's config,
// and launches optimisation in the background, returning immediately with
// the run id the caller polls via GetRun.
func (h *Handler) CreateRun(c *gin.Context) {
	var req models.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inst, errs := req.Instance.ToProblemInstance()
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, models.NewValidationResult(errs))
		return
	}

	cfg := config.Default()
	if len(req.ConfigOverrides) > 0 {
		if err := config.ApplyOverrides(&cfg, req.ConfigOverrides); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if err := config.Validate(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seedVal := req.Seed
	if seedVal == 0 {
		seedVal = time.Now().UnixNano()
	}

	id := uuid.NewString()
	run := driver.NewRun()
	state := &runState{run: run, status: "running"}

	h.mu.Lock()
	h.runs[id] = state
	h.mu.Unlock()

	h.RecordUsage(c, 1, len(inst.Employees))
	h.persistQueued(id, seedVal)

	go h.driveRun(id, state, &inst, cfg, seedVal)

	c.JSON(http.StatusAccepted, models.RunAccepted{RunID: id, Status: "running"})
}

// driveRun executes the run and keeps state in sync with each event,
// persisting the terminal outcome to the database once the event channel
// closes.
func (h *Handler) driveRun(id string, state *runState, inst *model.ProblemInstance, cfg config.Config, seedVal int64) {
	go state.run.Execute(inst, cfg, seedVal)

	for ev := range state.run.Events() {
		state.mu.Lock()
		state.generation = ev.Generation
		state.bestScore = ev.BestScore

		switch ev.Type {
		case driver.EventCompleted:
			state.status = "completed"
			sc := ev.Schedule
			state.sched = &sc
			rep := validator.Validate(&sc, inst, cfg)
			state.report = &rep
		case driver.EventCancelled:
			state.status = "cancelled"
		case driver.EventFailed:
			state.status = "failed"
			state.err = ev.Err
		}
		state.mu.Unlock()

		if h.Logger != nil {
			h.Logger.Debug("run event",
				zap.String("run_id", id),
				zap.String("type", ev.Type.String()),
				zap.Int("generation", ev.Generation),
				zap.Float64("best_score", ev.BestScore))
		}
	}

	h.persistFinal(id, state)
}

// GetRun reports a run's current status, or its full result once
// completed.
func (h *Handler) GetRun(c *gin.Context) {
	id := c.Param("id")
	h.mu.Lock()
	state, ok := h.runs[id]
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	status := state.snapshot()
	status.RunID = id
	c.JSON(http.StatusOK, status)
}

// CancelRun requests cooperative cancellation of a run still in progress.
func (h *Handler) CancelRun(c *gin.Context) {
	id := c.Param("id")
	h.mu.Lock()
	state, ok := h.runs[id]
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	state.run.Cancel()
	c.JSON(http.StatusAccepted, gin.H{"message": "cancellation requested"})
}

func (h *Handler) persistQueued(id string, seedVal int64) {
	h.DB.Create(&database.RosterRun{
		ID:        id,
		Status:    "running",
		Seed:      seedVal,
		StartedAt: time.Now(),
	})
}

func (h *Handler) persistFinal(id string, state *runState) {
	snap := state.snapshot()
	now := time.Now()
	update := map[string]interface{}{
		"status":       snap.Status,
		"generation":   snap.Generation,
		"best_score":   snap.BestScore,
		"error_reason": snap.Error,
		"finished_at":  &now,
	}
	h.DB.Model(&database.RosterRun{}).Where("id = ?", id).Updates(update)
}

// RunsCSV parses a CSV-uploaded instance, runs it to completion
// synchronously, and returns the resulting assignments as CSV, for
// operators who don't want to hand-author JSON.
func (h *Handler) RunsCSV(c *gin.Context) {
	employeesFile, _ := c.FormFile("employees_file")
	shiftsFile, _ := c.FormFile("shifts_file")
	departmentsFile, _ := c.FormFile("departments_file")
	if employeesFile == nil || shiftsFile == nil || departmentsFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employees_file, shifts_file and departments_file are required"})
		return
	}

	days, _ := strconv.Atoi(c.PostForm("days"))
	if days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days form field must be a positive integer"})
		return
	}

	departments, err := parseDepartmentsCSV(departmentsFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	shifts, err := parseShiftsCSV(shiftsFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employees, err := parseEmployeesCSV(employeesFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := models.InstanceInput{Days: days, Shifts: shifts, Departments: departments, Employees: employees}
	inst, errs := input.ToProblemInstance()
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, models.NewValidationResult(errs))
		return
	}

	cfg := config.Default()
	run := driver.NewRun()
	go run.Execute(&inst, cfg, time.Now().UnixNano())

	var final schedule.Schedule
	for ev := range run.Events() {
		if ev.Type == driver.EventCompleted {
			final = ev.Schedule
		}
	}

	h.RecordUsage(c, 1, len(inst.Employees))

	var out strings.Builder
	writer := csv.NewWriter(&out)
	writer.Write([]string{"day", "shift", "room", "employee_ids"})
	final.Walk(func(cur schedule.Cursor) {
		ids := make([]string, len(cur.IDs))
		for i, id := range cur.IDs {
			ids[i] = strconv.Itoa(id)
		}
		writer.Write([]string{strconv.Itoa(cur.Day), cur.ShiftName, cur.Room, strings.Join(ids, "|")})
	})
	writer.Flush()

	c.JSON(http.StatusOK, gin.H{"csv": out.String()})
}

func parseDepartmentsCSV(fh *multipart.FileHeader) ([]models.DepartmentInput, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open departments file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read departments header: %w", err)
	}
	cols := columnIndex(header)

	var out []models.DepartmentInput
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		rooms := strings.Split(record[cols["rooms"]], "|")
		out = append(out, models.DepartmentInput{Name: record[cols["name"]], Rooms: rooms})
	}
	return out, nil
}

func parseShiftsCSV(fh *multipart.FileHeader) ([]models.ShiftInput, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open shifts file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read shifts header: %w", err)
	}
	cols := columnIndex(header)

	var out []models.ShiftInput
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		start, _ := strconv.Atoi(record[cols["start"]])
		end, _ := strconv.Atoi(record[cols["end"]])
		hours, _ := strconv.Atoi(record[cols["hours"]])
		out = append(out, models.ShiftInput{Name: record[cols["name"]], Start: start, End: end, Hours: hours})
	}
	return out, nil
}

func parseEmployeesCSV(fh *multipart.FileHeader) ([]models.EmployeeInput, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open employees file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read employees header: %w", err)
	}
	cols := columnIndex(header)

	var out []models.EmployeeInput
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		id, _ := strconv.Atoi(record[cols["id"]])
		years, _ := strconv.Atoi(record[cols["years_experience"]])

		var daysOff []int
		if idx, ok := cols["days_off"]; ok && record[idx] != "" {
			for _, part := range strings.Split(record[idx], "|") {
				if d, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
					daysOff = append(daysOff, d)
				}
			}
		}

		out = append(out, models.EmployeeInput{
			ID:         id,
			Name:       record[cols["name"]],
			Role:       record[cols["role"]],
			Department: record[cols["department"]],
			YearsExp:   years,
			DaysOff:    daysOff,
		})
	}
	return out, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols
}
