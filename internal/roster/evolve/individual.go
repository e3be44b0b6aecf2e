// Package evolve implements the genetic operators the scheduler breeds
// schedules with: truncated tournament selection, structure-preserving
// uniform crossover, two mutation operators, and a first-improvement hill
// climber. Every operator takes its *rand.Rand explicitly; none reads the
// global source, so a run is reproducible end to end from one seed.
package evolve

import "github.com/hospitalroster/duty-scheduler/internal/roster/schedule"

// Individual pairs a candidate Schedule with its already-computed scalar
// fitness, so the population never recomputes a score it already has.
type Individual struct {
	Sched   schedule.Schedule
	Fitness float64
}
