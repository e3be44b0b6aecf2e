package evolve

import (
	"math/rand"

	"github.com/hospitalroster/duty-scheduler/internal/roster/config"
	"github.com/hospitalroster/duty-scheduler/internal/roster/model"
)

// satisfiesHardPreconditions reports whether a cell's occupants already
// clear the per-cell hard bar the crossover rule checks before accepting
// parent B's cell verbatim: enough doctors, enough nurses, and at least
// one senior. Department/day-off correctness is not part of this
// check — those are the wrong_dept/day_off categories, which crossover
// does not try to repair.
func satisfiesHardPreconditions(ids []int, inst *model.ProblemInstance, cfg config.Config) bool {
	doctors, nurses := 0, 0
	hasSenior := false
	for _, id := range ids {
		e := findEmployee(inst, id)
		if e == nil {
			continue
		}
		if e.Role == model.RoleDoctor {
			doctors++
		} else {
			nurses++
		}
		if e.IsSenior(cfg.MinExperienceYears) {
			hasSenior = true
		}
	}
	return doctors >= cfg.MinDoctorPerShift && nurses >= cfg.MinNursePerShift && hasSenior
}

// createValidAssignment synthesizes a fresh cell for (day, dept) by
// randomly sampling from the department's available (not-on-leave) pool,
// the operator-local counterpart of seed.Build's load-balancing pick rule.
// When no senior is available in the pool the cell is left without one:
// the validator's no_senior category catches this, the operator never
// fails because of it.
func createValidAssignment(inst *model.ProblemInstance, cfg config.Config, day int, dept string, rng *rand.Rand) []int {
	var doctors, nurses []model.Employee
	for _, e := range inst.EmployeesIn(dept) {
		if e.IsOff(day) {
			continue
		}
		if e.Role == model.RoleDoctor {
			doctors = append(doctors, e)
		} else {
			nurses = append(nurses, e)
		}
	}

	shuffle(doctors, rng)
	shuffle(nurses, rng)

	var chosen []model.Employee
	chosen = append(chosen, takeN(doctors, cfg.MinDoctorPerShift)...)
	chosen = append(chosen, takeN(nurses, cfg.MinNursePerShift)...)

	if !anySenior(chosen, cfg.MinExperienceYears) {
		if senior := randomSenior(append(doctors, nurses...), chosen, cfg.MinExperienceYears, rng); senior != nil {
			chosen = append(chosen, *senior)
		}
	}

	ids := make([]int, len(chosen))
	for i, e := range chosen {
		ids[i] = e.ID
	}
	return ids
}

func shuffle(emps []model.Employee, rng *rand.Rand) {
	rng.Shuffle(len(emps), func(i, j int) { emps[i], emps[j] = emps[j], emps[i] })
}

func takeN(emps []model.Employee, n int) []model.Employee {
	if n > len(emps) {
		n = len(emps)
	}
	if n <= 0 {
		return nil
	}
	return emps[:n]
}

func randomSenior(pool, chosen []model.Employee, minYears int, rng *rand.Rand) *model.Employee {
	already := make(map[int]bool, len(chosen))
	for _, e := range chosen {
		already[e.ID] = true
	}
	var candidates []model.Employee
	for _, e := range pool {
		if !already[e.ID] && e.IsSenior(minYears) {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	pick := candidates[rng.Intn(len(candidates))]
	return &pick
}

func anySenior(emps []model.Employee, minYears int) bool {
	for _, e := range emps {
		if e.IsSenior(minYears) {
			return true
		}
	}
	return false
}

func findEmployee(inst *model.ProblemInstance, id int) *model.Employee {
	for i := range inst.Employees {
		if inst.Employees[i].ID == id {
			return &inst.Employees[i]
		}
	}
	return nil
}
