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
	"sort"
	"time"

	"github.com/gnames/gn"
	"github.com/pilipandr770/sekretar-sub004/internal/iohealth"
	"github.com/pilipandr770/sekretar-sub004/pkg/lifecycle"
	"github.com/spf13/cobra"
)

// getHealthCmd returns the health command.
func getHealthCmd() *cobra.Command {
	var detailed, performance bool

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Run the health check battery",
		Long: `Run the health check battery against the sekretar database.

Checks connectivity, schema completeness and the seeded baseline, then
grades the result as healthy, warning or unhealthy. Every issue comes
with a suggested remedy. The command exits non-zero when the database
is unhealthy, so it can gate deployments.

Examples:
  sekretardb health
  sekretardb health --detailed
  sekretardb health --performance`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth(detailed, performance)
		},
	}

	healthCmd.Flags().BoolVarP(&detailed, "detailed", "d", false,
		"include per-check counts and pool statistics")
	healthCmd.Flags().BoolVarP(&performance, "performance", "p", false,
		"measure query round-trip latencies")

	return healthCmd
}

func runHealth(detailed, performance bool) error {
	ctx := context.Background()

	op, err := connectOperator(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	validator := iohealth.NewValidator(op, cfg)
	res := validator.Check(ctx)

	switch res.Status {
	case lifecycle.Healthy:
		gn.Info("Database is <em>healthy</em> (%s)",
			res.Duration.Round(time.Millisecond))
	case lifecycle.Warning:
		gn.Warn("Database is degraded: <em>warning</em>")
	case lifecycle.Unhealthy:
		gn.Warn("Database is <em>unhealthy</em>")
	}

	for _, issue := range res.Issues {
		gn.Warn("  issue: %s", issue)
	}
	for _, s := range res.Suggestions {
		gn.Info("  suggestion: %s", s)
	}

	if detailed {
		gn.Info("Checks passed: %d, failed: %d",
			res.ChecksPassed, res.ChecksFailed)
		stats := op.Stats()
		gn.Info("Pool: %d max, %d open, %d idle, %d in use",
			stats.MaxConns, stats.OpenConns,
			stats.IdleConns, stats.InUseConns)
	}

	if performance {
		perf := validator.CheckPerformance(ctx)
		names := make([]string, 0, len(perf))
		for name := range perf {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			gn.Info("  %s: %.2f ms", name, perf[name])
		}
	}

	if res.Status == lifecycle.Unhealthy {
		return errors.New("database is unhealthy")
	}
	return nil
}
