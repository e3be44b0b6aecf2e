package commands

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/hospitalroster/duty-scheduler/internal/roster/model"
)

// SampleCmd writes a deterministically-generated problem instance, in the
// same JSON shape `generate`/`validate` read, so it can be piped straight
// into either of them.
func SampleCmd() *cobra.Command {
	var departments, roomsPerDept, days, doctorsPerDept, nursesPerDept, dayOffCount int
	var seedFlag int64
	var outPath string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a synthetic problem instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := rand.New(rand.NewSource(seedFlag))
			inst := model.NewSampleInstance(rng, model.SampleSizing{
				Departments:    departments,
				RoomsPerDept:   roomsPerDept,
				Days:           days,
				DoctorsPerDept: doctorsPerDept,
				NursesPerDept:  nursesPerDept,
				DayOffCount:    dayOffCount,
			})

			data, err := json.MarshalIndent(instanceToInput(inst), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal sample instance: %w", err)
			}
			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			return os.WriteFile(outPath, data, 0o644)
		},
	}

	cmd.Flags().IntVar(&departments, "departments", 2, "number of departments")
	cmd.Flags().IntVar(&roomsPerDept, "rooms-per-dept", 2, "rooms per department")
	cmd.Flags().IntVar(&days, "days", 7, "horizon length in days")
	cmd.Flags().IntVar(&doctorsPerDept, "doctors-per-dept", 4, "doctors per department")
	cmd.Flags().IntVar(&nursesPerDept, "nurses-per-dept", 6, "nurses per department")
	cmd.Flags().IntVar(&dayOffCount, "days-off", 1, "number of random day-off indices per employee")
	cmd.Flags().Int64Var(&seedFlag, "seed", 42, "RNG seed for reproducible sample data")
	cmd.Flags().StringVar(&outPath, "out", "", "write the instance JSON here instead of stdout")

	return cmd
}
