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

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getStatusCmd returns the status command.
func getStatusCmd() *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Report the database state",
		Long: `Report the state of the sekretar database without changing anything.

The report covers:
  - whether all required tables exist
  - whether all required indexes exist
  - whether the baseline records are seeded
  - which tables are missing, if any

Examples:
  sekretardb status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}

	return statusCmd
}

func runStatus() error {
	ctx := context.Background()

	op, err := connectOperator(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	status := buildInitializer(op).Status(ctx)

	gn.Info("Environment:        <em>%s</em>", classifiedEnv().String())
	gn.Info("Schema complete:    <em>%s</em>", yesNo(status.SchemaExists))
	gn.Info("Migrations current: <em>%s</em>",
		yesNo(status.MigrationsCurrent))
	gn.Info("Seeding complete:   <em>%s</em>",
		yesNo(status.SeedingComplete))

	if len(status.MissingTables) > 0 {
		gn.Warn("Missing %s tables:",
			humanize.Comma(int64(len(status.MissingTables))))
		for _, name := range status.MissingTables {
			gn.Warn("  - %s", name)
		}
		gn.Info("Run <em>sekretardb init</em> to create them")
	}

	if !status.LastInitialization.IsZero() {
		gn.Info("Last initialization: %s",
			humanize.Time(status.LastInitialization))
	}

	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
