package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hospitalroster/duty-scheduler/internal/roster/config"
	"github.com/hospitalroster/duty-scheduler/internal/roster/driver"
	"github.com/hospitalroster/duty-scheduler/internal/roster/validator"
)

// GenerateCmd runs the evolutionary scheduler to completion against a
// problem instance file and prints (or writes) the validator report of the
// best schedule found. The report does not include the assignments
// themselves.
func GenerateCmd() *cobra.Command {
	var instancePath, configPath, outPath string
	var seedFlag int64

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the evolutionary scheduler against a problem instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, errs, err := loadInstance(instancePath)
			if err != nil {
				return err
			}
			if len(errs) > 0 {
				return fmt.Errorf("instance is invalid: %v", errs)
			}

			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.LoadFromPath(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			seedVal := seedFlag
			if seedVal == 0 {
				seedVal = time.Now().UnixNano()
			}

			run := driver.NewRun()
			go run.Execute(&inst, cfg, seedVal)

			for ev := range run.Events() {
				switch ev.Type {
				case driver.EventProgress:
					fmt.Fprintf(cmd.OutOrStdout(), "generation %d: best score %.2f\n", ev.Generation, ev.BestScore)
				case driver.EventStagnationHillClimb:
					fmt.Fprintf(cmd.OutOrStdout(), "generation %d: stagnation hill climb -> %.2f\n", ev.Generation, ev.BestScore)
				case driver.EventCompleted:
					report := validator.Validate(&ev.Schedule, &inst, cfg)
					return writeResult(outPath, cmd, report)
				case driver.EventFailed:
					return ev.Err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&instancePath, "instance", "", "path to a problem instance JSON file")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a tunables YAML file (defaults are used if omitted)")
	cmd.Flags().Int64Var(&seedFlag, "seed", 0, "RNG seed (0 derives one from the current time)")
	cmd.Flags().StringVar(&outPath, "out", "", "write the result JSON here instead of stdout")
	cmd.MarkFlagRequired("instance")

	return cmd
}

func writeResult(outPath string, cmd *cobra.Command, report validator.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if outPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	return os.WriteFile(outPath, data, 0o644)
}
