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
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getResetCmd returns the reset command.
func getResetCmd() *cobra.Command {
	var confirm, keepData bool

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop everything and re-initialize",
		Long: `Drop all tables and re-initialize the database from scratch.

This destroys ALL data. The command prompts for confirmation unless
--confirm is set, and refuses to run in production regardless of flags.

With --keep-data the tables are not dropped; initialization is forced
over the existing data instead (missing tables and records are created,
existing ones stay untouched).

Examples:
  sekretardb reset
  sekretardb reset --confirm
  sekretardb reset --keep-data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(confirm, keepData)
		},
	}

	resetCmd.Flags().BoolVar(&confirm, "confirm", false,
		"skip the confirmation prompt")
	resetCmd.Flags().BoolVar(&keepData, "keep-data", false,
		"re-initialize without dropping tables")

	return resetCmd
}

func runReset(confirm, keepData bool) error {
	ctx := context.Background()

	if !confirm && !keepData {
		gn.Warn("Reset will drop ALL tables and data.")
		fmt.Print("\nDo you want to continue? (yes/no): ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			gn.Warn("Failed to read user input")
			return err
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response != "yes" && response != "y" {
			gn.Info("Aborted. No changes made.")
			return nil
		}
	}

	op, err := connectOperator(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if err := buildInitializer(op).Reset(ctx, keepData); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Database reset complete")
	return nil
}
