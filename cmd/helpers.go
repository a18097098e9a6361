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

	"github.com/gnames/gn"
	"github.com/pilipandr770/sekretar-sub004/internal/iodb"
	"github.com/pilipandr770/sekretar-sub004/internal/iohealth"
	"github.com/pilipandr770/sekretar-sub004/internal/ioinit"
	"github.com/pilipandr770/sekretar-sub004/internal/ioschema"
	"github.com/pilipandr770/sekretar-sub004/internal/ioseed"
	"github.com/pilipandr770/sekretar-sub004/pkg/config"
	"github.com/pilipandr770/sekretar-sub004/pkg/db"
	"github.com/pilipandr770/sekretar-sub004/pkg/environment"
	"github.com/pilipandr770/sekretar-sub004/pkg/lifecycle"
)

// classifiedEnv returns the environment the current config classifies to.
func classifiedEnv() environment.Environment {
	return environment.Classify(cfg.Environment, cfg.Testing)
}

// currentPolicy derives the provisioning policy from the current config.
func currentPolicy() environment.Policy {
	return environment.DerivePolicy(classifiedEnv()).
		ApplyAbortOverride(cfg.AbortOnDBFailure)
}

// connectOperator connects the dialect-appropriate operator with
// environment-sized pool settings.
func connectOperator(ctx context.Context) (db.Operator, error) {
	op := iodb.NewOperator(cfg.Database.Dialect)
	settings := db.SettingsFor(classifiedEnv(), cfg.Database.Dialect)

	if err := op.Connect(ctx, cfg, settings); err != nil {
		gn.PrintErrorMessage(err)
		return nil, err
	}

	if cfg.Database.Dialect == config.SQLite {
		gn.Info("Connected to SQLite database <em>%s</em>",
			cfg.Database.Path)
	} else {
		gn.Info("Connected to PostgreSQL database <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	}

	return op, nil
}

// buildInitializer assembles the pipeline over a connected operator.
// Schema ensurer options let the init command attach a progress bar.
func buildInitializer(
	op db.Operator, ensurerOpts ...ioschema.Option,
) lifecycle.Initializer {
	return ioinit.New(
		op, cfg,
		ioschema.NewEnsurer(op, ensurerOpts...),
		ioseed.NewSeeder(op, cfg),
		iohealth.NewValidator(op, cfg),
	)
}
