// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/lpipm/lp"
	"github.com/katalvlaran/lpipm/pipeline"
)

const envPrefix = "LPIPM"

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "lpipm",
		Short: "Generate a sparse LP test instance and solve it with interior-point variants",
		Long: `lpipm builds the m×n stencil matrix A, draws a strictly positive xGen,
sets b = A·xGen so the problem min cᵀx s.t. Ax = b, x >= 0 is feasible,
and solves it with each enabled variant, printing time and objective.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, v)
		},
	}

	def := pipeline.DefaultConfig()
	f := cmd.Flags()
	f.Int("m", def.M, "number of constraints (rows of A)")
	f.Int("n", def.N, "number of variables (columns of A)")
	f.Bool("mehrotra", def.RunMehrotra, "solve with the Mehrotra predictor-corrector variant")
	f.Bool("ipf", def.RunIPF, "solve with the infeasible path-following variant")
	f.Bool("display", false, "print A, xGen, b and c before solving")
	f.Bool("interactive", false, "wait for ENTER before shutting down")
	f.Int64("seed", 0, "RNG seed (0 selects the default seed)")
	f.Int("workers", def.Workers, "number of in-process workers")
	f.String("backend", "auto", "solver backend: auto, simplex or certificate (auto picks simplex up to the dense size limit)")
	f.String("log-level", "info", "log level: trace, debug, info, warn, error")
	f.Bool("log-json", false, "emit logs as JSON")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(f); err != nil {
		panic(err) // flags are registered above; binding cannot fail
	}

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	cfg := pipeline.Config{
		M:           v.GetInt("m"),
		N:           v.GetInt("n"),
		RunMehrotra: v.GetBool("mehrotra"),
		RunIPF:      v.GetBool("ipf"),
		Display:     v.GetBool("display"),
		Interactive: v.GetBool("interactive"),
		Seed:        v.GetInt64("seed"),
		Workers:     v.GetInt("workers"),
	}

	level := hclog.LevelFromString(v.GetString("log-level"))
	if level == hclog.NoLevel {
		return fmt.Errorf("unknown log level %q", v.GetString("log-level"))
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "lpipm",
		Level:      level,
		Output:     cmd.ErrOrStderr(),
		JSONFormat: v.GetBool("log-json"),
	})

	solver, err := backend(v.GetString("backend"), cfg.M, cfg.N, logger)
	if err != nil {
		return err
	}

	report, err := pipeline.Run(cmd.Context(), cfg, pipeline.Deps{
		Solver: solver,
		Logger: logger,
		Out:    cmd.OutOrStdout(),
		In:     cmd.InOrStdin(),
	})
	if report != nil {
		if rerr := report.Render(cmd.OutOrStdout()); rerr != nil && err == nil {
			err = rerr
		}
	}
	return err
}

func backend(name string, m, n int, logger hclog.Logger) (lp.Solver, error) {
	simplex := lp.SimplexSolver{}
	switch strings.ToLower(name) {
	case "auto":
		if simplex.Fits(m, n) {
			return simplex, nil
		}
		logger.Warn("instance exceeds the dense simplex limit, using the certificate backend",
			"m", m, "n", n, "max_cells", lp.DefaultSimplexMaxCells)
		return lp.CertificateSolver{}, nil
	case "simplex":
		return simplex, nil
	case "certificate":
		return lp.CertificateSolver{}, nil
	}
	return nil, fmt.Errorf("unknown backend %q (want auto, simplex or certificate)", name)
}
