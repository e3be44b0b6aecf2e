package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidateCmd checks a problem instance file for structural validity
// without running the optimiser, the CLI counterpart of
// /api/instances/validate.
func ValidateCmd() *cobra.Command {
	var instancePath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a problem instance file without running the optimiser",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, errs, err := loadInstance(instancePath)
			if err != nil {
				return err
			}
			if len(errs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "instance is valid")
				return nil
			}
			for _, e := range errs {
				fmt.Fprintln(cmd.OutOrStdout(), e.Error())
			}
			return fmt.Errorf("instance has %d validation error(s)", len(errs))
		},
	}

	cmd.Flags().StringVar(&instancePath, "instance", "", "path to a problem instance JSON file")
	cmd.MarkFlagRequired("instance")

	return cmd
}
