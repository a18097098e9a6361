/*
Copyright © 2025 pilipandr770

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"

	"github.com/gnames/gn"
	"github.com/pilipandr770/sekretar-sub004/pkg/lifecycle"
	"github.com/spf13/cobra"
)

// getRepairCmd returns the repair command.
func getRepairCmd() *cobra.Command {
	var autoFix, dryRun bool

	repairCmd := &cobra.Command{
		Use:   "repair",
		Short: "Fix detected database problems",
		Long: `Detect and fix database problems.

Runs the health check battery and applies the idempotent fix for every
detected issue: missing tables and indexes are recreated, missing
baseline records are reseeded. Issues without an automatic fix (for
example orphaned rows) are reported as manual steps.

Without --auto-fix the command only reports what it would do.

Examples:
  sekretardb repair
  sekretardb repair --auto-fix
  sekretardb repair --auto-fix --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepair(autoFix, dryRun)
		},
	}

	repairCmd.Flags().BoolVarP(&autoFix, "auto-fix", "a", false,
		"apply the fixes instead of only reporting them")
	repairCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"report planned fixes without touching the database")

	return repairCmd
}

func runRepair(autoFix, dryRun bool) error {
	ctx := context.Background()

	op, err := connectOperator(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	res := buildInitializer(op).Repair(ctx, lifecycle.RepairOptions{
		AutoFix: autoFix,
		DryRun:  dryRun,
	})

	if len(res.RepairsPerformed) == 0 && len(res.ManualSteps) == 0 &&
		len(res.Errors) == 0 {
		gn.Info("Database is healthy, nothing to repair")
		return nil
	}

	for _, r := range res.RepairsPerformed {
		gn.Info("  repaired: %s", r)
	}
	for _, s := range res.ManualSteps {
		gn.Warn("  manual step: %s", s)
	}
	for _, e := range res.Errors {
		gn.Warn("  error: %s", e)
	}

	if !res.Success {
		return errors.New("repair failed")
	}
	return nil
}
