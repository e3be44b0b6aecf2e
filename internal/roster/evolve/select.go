package evolve

import (
	"math"
	"math/rand"
	"sort"

	"github.com/hospitalroster/duty-scheduler/internal/roster/config"
)

// Select runs truncated tournament selection: the population is first
// narrowed to its fittest ParentPoolRatio share, then TournamentK
// competitors are drawn from that pool (with replacement) and the fittest
// of them wins. Truncating first keeps a weak individual from ever being
// selected, even by a lucky draw.
func Select(pop []Individual, cfg config.Config, rng *rand.Rand) Individual {
	sorted := append([]Individual(nil), pop...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Fitness < sorted[j].Fitness })

	poolSize := int(math.Ceil(float64(len(sorted)) * cfg.ParentPoolRatio))
	if poolSize < 1 {
		poolSize = 1
	}
	if poolSize > len(sorted) {
		poolSize = len(sorted)
	}
	pool := sorted[:poolSize]

	best := pool[rng.Intn(len(pool))]
	for i := 1; i < cfg.TournamentK; i++ {
		challenger := pool[rng.Intn(len(pool))]
		if challenger.Fitness < best.Fitness {
			best = challenger
		}
	}
	return best
}
