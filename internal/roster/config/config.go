// Package config reifies the scheduler's tunables as an immutable value
// threaded through every core operation, rather than scattered module-level
// constants. Loading follows the shape of jakec-github-ilford-drop-in's
// internal/config package: YAML on disk, validated with
// go-playground/validator, with a documented default for every field.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the full set of hard bounds, soft targets, penalty weights and
// evolutionary parameters the scheduler is tuned by. Every field has a default
// (see Default()); override keys in ApplyOverrides match the YAML tag names
// used here (e.g. "MAX_HOURS_PER_WEEK").
type Config struct {
	// Hard per-cell staffing minimums.
	MinDoctorPerShift  int `yaml:"MIN_DOCTOR_PER_SHIFT" validate:"min=0"`
	MinNursePerShift   int `yaml:"MIN_NURSE_PER_SHIFT" validate:"min=0"`
	MinTotalPerShift   int `yaml:"MIN_TOTAL_PER_SHIFT" validate:"min=0"`
	MinExperienceYears int `yaml:"MIN_EXPERIENCE_YEARS" validate:"min=0"`

	// Soft hour/rest bounds.
	MaxHoursPerWeek  int `yaml:"MAX_HOURS_PER_WEEK" validate:"gt=0"`
	MinRestHours     int `yaml:"MIN_REST_HOURS" validate:"gte=0"`
	MaxHoursPerMonth int `yaml:"MAX_HOURS_PER_MONTH" validate:"gt=0"`
	MinHoursPerMonth int `yaml:"MIN_HOURS_PER_MONTH" validate:"gte=0"`

	// Hard-category weights. Kept far above any plausible soft total so a
	// single hard violation always dominates the total score.
	WNoDoctor  float64 `yaml:"W_NO_DOCTOR" validate:"gt=0"`
	WNoNurse   float64 `yaml:"W_NO_NURSE" validate:"gt=0"`
	WLessThan5 float64 `yaml:"W_LESS_5" validate:"gt=0"`
	WNoSenior  float64 `yaml:"W_NO_SENIOR" validate:"gt=0"`
	WWrongDept float64 `yaml:"W_WRONG_DEPT" validate:"gt=0"`
	WDayOff    float64 `yaml:"W_DAY_OFF" validate:"gt=0"`

	// Soft-category weights.
	WOver30h      float64 `yaml:"W_OVER_30H" validate:"gt=0"`
	WNoRest       float64 `yaml:"W_NO_REST" validate:"gt=0"`
	WOverMonthly  float64 `yaml:"W_OVER_MONTHLY" validate:"gt=0"`
	WUnderMonthly float64 `yaml:"W_UNDER_MONTHLY" validate:"gt=0"`
	WFairness     float64 `yaml:"W_FAIRNESS" validate:"gt=0"`

	// Evolutionary parameters.
	PopulationSize  int     `yaml:"POPULATION_SIZE" validate:"gt=1"`
	Generations     int     `yaml:"GENERATIONS" validate:"gt=0"`
	EliteSize       int     `yaml:"ELITE_SIZE" validate:"gte=0"`
	TournamentK     int     `yaml:"TOURNAMENT_K" validate:"gt=0"`
	ParentPoolRatio float64 `yaml:"PARENT_POOL_RATIO" validate:"gt=0,lte=1"`
	MutationRate    float64 `yaml:"MUTATION_RATE" validate:"gte=0,lte=1"`
	// BalanceMutationRate gates evolve.BalanceMutate independently of
	// MutationRate/ScrambleMutate, per the spec's two separate
	// "with probability" clauses for the two mutation kernels.
	BalanceMutationRate float64 `yaml:"BALANCE_MUTATION_RATE" validate:"gte=0,lte=1"`
	StagnationLimit     int     `yaml:"STAGNATION_LIMIT" validate:"gt=0"`
	HillClimbSteps      int     `yaml:"HILL_CLIMB_STEPS" validate:"gt=0"`

	// StrictInvariants controls what driver.Run.Execute does with a panic
	// raised during a run: when set, the panic is re-raised; when unset, it
	// is recovered and published as a Failed event. Execute does not itself
	// compare the breakdown sum against the scalar fitness.
	StrictInvariants bool `yaml:"STRICT_INVARIANTS"`
}

// Default returns the published defaults for every tunable.
func Default() Config {
	return Config{
		MinDoctorPerShift:  1,
		MinNursePerShift:   2,
		MinTotalPerShift:   3,
		MinExperienceYears: 5,

		MaxHoursPerWeek:  40,
		MinRestHours:     12,
		MaxHoursPerMonth: 180,
		MinHoursPerMonth: 120,

		WNoDoctor:  100_000,
		WNoNurse:   100_000,
		WLessThan5: 100_000,
		WNoSenior:  100_000,
		WWrongDept: 100_000,
		WDayOff:    100_000,

		WOver30h:      10,
		WNoRest:       20,
		WOverMonthly:  5,
		WUnderMonthly: 5,
		WFairness:     5,

		PopulationSize:      50,
		Generations:         100,
		EliteSize:           4,
		TournamentK:         5,
		ParentPoolRatio:     0.5,
		MutationRate:        0.2,
		BalanceMutationRate: 0.3,
		StagnationLimit:     15,
		HillClimbSteps:      30,

		StrictInvariants: false,
	}
}

var validate = validator.New()

// Validate runs struct-tag validation over the bound values, plus one
// cross-field check: ELITE_SIZE must be smaller than POPULATION_SIZE.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.EliteSize >= cfg.PopulationSize {
		return fmt.Errorf("config validation failed: ELITE_SIZE (%d) must be smaller than POPULATION_SIZE (%d)", cfg.EliteSize, cfg.PopulationSize)
	}
	return nil
}

// LoadFromPath reads a YAML config file layered on top of Default() and
// validates the result, mirroring
// jakec-github-ilford-drop-in/v2/internal/config.LoadFromPath.
func LoadFromPath(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyOverrides mutates cfg in place from a map whose keys match the YAML
// tag names used above (e.g. "MAX_HOURS_PER_WEEK"). Unknown keys are
// reported but do not abort earlier successful overrides.
func ApplyOverrides(cfg *Config, overrides map[string]any) error {
	fields := map[string]func(any) error{
		"MIN_DOCTOR_PER_SHIFT":  intSetter(&cfg.MinDoctorPerShift),
		"MIN_NURSE_PER_SHIFT":   intSetter(&cfg.MinNursePerShift),
		"MIN_TOTAL_PER_SHIFT":   intSetter(&cfg.MinTotalPerShift),
		"MIN_EXPERIENCE_YEARS":  intSetter(&cfg.MinExperienceYears),
		"MAX_HOURS_PER_WEEK":    intSetter(&cfg.MaxHoursPerWeek),
		"MIN_REST_HOURS":        intSetter(&cfg.MinRestHours),
		"MAX_HOURS_PER_MONTH":   intSetter(&cfg.MaxHoursPerMonth),
		"MIN_HOURS_PER_MONTH":   intSetter(&cfg.MinHoursPerMonth),
		"W_NO_DOCTOR":           floatSetter(&cfg.WNoDoctor),
		"W_NO_NURSE":            floatSetter(&cfg.WNoNurse),
		"W_LESS_5":              floatSetter(&cfg.WLessThan5),
		"W_NO_SENIOR":           floatSetter(&cfg.WNoSenior),
		"W_WRONG_DEPT":          floatSetter(&cfg.WWrongDept),
		"W_DAY_OFF":             floatSetter(&cfg.WDayOff),
		"W_OVER_30H":            floatSetter(&cfg.WOver30h),
		"W_NO_REST":             floatSetter(&cfg.WNoRest),
		"W_OVER_MONTHLY":        floatSetter(&cfg.WOverMonthly),
		"W_UNDER_MONTHLY":       floatSetter(&cfg.WUnderMonthly),
		"W_FAIRNESS":            floatSetter(&cfg.WFairness),
		"POPULATION_SIZE":       intSetter(&cfg.PopulationSize),
		"GENERATIONS":           intSetter(&cfg.Generations),
		"ELITE_SIZE":            intSetter(&cfg.EliteSize),
		"TOURNAMENT_K":          intSetter(&cfg.TournamentK),
		"PARENT_POOL_RATIO":     floatSetter(&cfg.ParentPoolRatio),
		"MUTATION_RATE":         floatSetter(&cfg.MutationRate),
		"BALANCE_MUTATION_RATE": floatSetter(&cfg.BalanceMutationRate),
		"STAGNATION_LIMIT":      intSetter(&cfg.StagnationLimit),
		"HILL_CLIMB_STEPS":      intSetter(&cfg.HillClimbSteps),
	}

	var unknown []string
	for key, value := range overrides {
		setter, ok := fields[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		if err := setter(value); err != nil {
			return fmt.Errorf("override %q: %w", key, err)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown config override keys: %v", unknown)
	}
	return nil
}

func intSetter(dst *int) func(any) error {
	return func(v any) error {
		switch n := v.(type) {
		case int:
			*dst = n
		case float64:
			*dst = int(n)
		default:
			return fmt.Errorf("expected an integer, got %T", v)
		}
		return nil
	}
}

func floatSetter(dst *float64) func(any) error {
	return func(v any) error {
		switch n := v.(type) {
		case int:
			*dst = float64(n)
		case float64:
			*dst = n
		default:
			return fmt.Errorf("expected a number, got %T", v)
		}
		return nil
	}
}
