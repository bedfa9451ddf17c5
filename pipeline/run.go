// SPDX-License-Identifier: MIT

package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lpipm/dist"
	"github.com/katalvlaran/lpipm/generator"
	"github.com/katalvlaran/lpipm/lp"
	"github.com/katalvlaran/lpipm/matrix"
	"github.com/katalvlaran/lpipm/problem"
)

const tracerName = "github.com/katalvlaran/lpipm/pipeline"

// Deps are the collaborators of a run. Zero fields get defaults: the
// simplex backend, a null logger, io.Discard, os.Stdin and the global
// tracer provider.
type Deps struct {
	Solver lp.Solver
	Logger hclog.Logger
	Out    io.Writer // display output and the interactive prompt
	In     io.Reader // read by the interactive pause
	Tracer trace.Tracer
}

func (d Deps) withDefaults() Deps {
	if d.Solver == nil {
		d.Solver = lp.SimplexSolver{}
	}
	if d.Logger == nil {
		d.Logger = hclog.NewNullLogger()
	}
	if d.Out == nil {
		d.Out = io.Discard
	}
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Tracer == nil {
		d.Tracer = otel.Tracer(tracerName)
	}
	return d
}

// Run generates the instance, assembles it and solves it with every
// enabled variant.
//
// Generation and assembly failures end the run with a *PhaseError and no
// Report. A failed variant is logged and recorded and the next variant
// still runs; the Report is then returned together with the aggregated
// variant failures (a *multierror.Error of *PhaseError).
//
// Every worker finalizes its comm as its last action, on success and
// failure paths alike, after the optional interactive pause.
func Run(ctx context.Context, cfg Config, deps Deps) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	deps = deps.withDefaults()

	ctx, span := deps.Tracer.Start(ctx, "pipeline.run", trace.WithAttributes(
		attribute.Int("m", cfg.M),
		attribute.Int("n", cfg.N),
		attribute.Int("workers", max(cfg.Workers, 1)),
	))
	defer span.End()

	var (
		mu      sync.Mutex
		report  *Report
		failure error
	)
	worker := func(ctx context.Context, comm dist.Comm) error {
		rep, verr, err := runWorker(ctx, cfg, deps, comm)
		if comm.Rank() == 0 {
			mu.Lock()
			report, failure = rep, verr
			mu.Unlock()
		}
		return err
	}

	var err error
	if cfg.Workers <= 1 {
		err = worker(ctx, dist.NewLocal())
	} else {
		err = dist.Run(ctx, cfg.Workers, worker)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if failure != nil {
		span.SetStatus(codes.Error, failure.Error())
	}
	return report, failure
}

// runWorker is the collective program of one worker. The fatal error ends
// the run; variant failures are returned separately so that a failing
// variant never cancels the peers of a multi-worker run.
func runWorker(ctx context.Context, cfg Config, deps Deps, comm dist.Comm) (rep *Report, variantErr, err error) {
	log := deps.Logger.With("rank", comm.Rank())
	lead := comm.Rank() == 0

	defer func() {
		if ferr := comm.Finalize(); ferr != nil && err == nil {
			err = phaseErr(PhaseTeardown, ferr)
		}
		log.Debug("finalized")
	}()

	log.Debug("generating matrix", "m", cfg.M, "n", cfg.N)
	genCtx, span := deps.Tracer.Start(ctx, "pipeline.generate", trace.WithAttributes(attribute.Int("rank", comm.Rank())))
	a, err := generator.Rectang(genCtx, comm, cfg.M, cfg.N)
	endSpan(span, err)
	if err != nil {
		log.Error("matrix generation failed", "error", err)
		return nil, nil, phaseErr(PhaseGenerate, err)
	}

	log.Debug("assembling problem", "seed", cfg.Seed)
	asmCtx, span := deps.Tracer.Start(ctx, "pipeline.assemble", trace.WithAttributes(attribute.Int("rank", comm.Rank())))
	inst, start, err := problem.Assemble(asmCtx, a, problem.WithSeed(cfg.Seed))
	endSpan(span, err)
	if err != nil {
		log.Error("problem assembly failed", "error", err)
		return nil, nil, phaseErr(PhaseAssemble, err)
	}

	if cfg.Display {
		dispCtx, span := deps.Tracer.Start(ctx, "pipeline.display")
		err = inst.Display(dispCtx, deps.Out)
		endSpan(span, err)
		if err != nil {
			return nil, nil, phaseErr(PhaseDisplay, err)
		}
	}

	rep = &Report{M: cfg.M, N: cfg.N, Workers: comm.Size(), Seed: cfg.Seed}
	var failures *multierror.Error
	for _, v := range cfg.Variants() {
		res, row, serr := solveVariant(ctx, deps, log, inst, start, v)
		if serr != nil {
			if lead {
				log.Error("solver failed", "variant", v.String(), "error", serr)
			}
			failures = multierror.Append(failures, solveErr(v, serr))
			rep.Rows = append(rep.Rows, Row{Variant: v, Err: serr})
			continue
		}
		if lead {
			log.Info("solved", "variant", v.String(), "elapsed", row.Elapsed, "objective", row.Objective, "residual", row.Residual)
		}
		rep.Rows = append(rep.Rows, *row)

		if cfg.Display {
			if err = displaySolution(ctx, deps.Out, v, res); err != nil {
				return nil, nil, phaseErr(PhaseDisplay, err)
			}
		}
	}

	if cfg.Interactive {
		pauseCtx, span := deps.Tracer.Start(ctx, "pipeline.pause")
		err = pause(pauseCtx, comm, deps.Out, deps.In)
		endSpan(span, err)
		if err != nil {
			return nil, nil, phaseErr(PhasePause, err)
		}
	}

	return rep, failures.ErrorOrNil(), nil
}

func solveVariant(ctx context.Context, deps Deps, log hclog.Logger, inst *problem.Instance, start *problem.Start, v lp.Variant) (*lp.Result, *Row, error) {
	ctx, span := deps.Tracer.Start(ctx, "pipeline.solve", trace.WithAttributes(attribute.String("variant", v.String())))
	log.Debug("solving", "variant", v.String())

	res, err := lp.Invoke(ctx, deps.Solver, v, inst, start)
	if err != nil {
		endSpan(span, err)
		return nil, nil, err
	}
	resid, err := problem.Residual(ctx, inst.A, res.X, inst.B)
	if err != nil {
		endSpan(span, err)
		return nil, nil, err
	}
	span.SetAttributes(
		attribute.Float64("objective", res.Objective),
		attribute.Int64("elapsed_us", res.Elapsed.Microseconds()),
	)
	endSpan(span, nil)
	return res, &Row{Variant: v, Objective: res.Objective, Elapsed: res.Elapsed, Residual: resid}, nil
}

// displaySolution prints x, y and z of one variant from rank 0. Collective.
func displaySolution(ctx context.Context, w io.Writer, v lp.Variant, res *lp.Result) error {
	for _, part := range []struct {
		name string
		vec  *matrix.Vector
	}{{"x", res.X}, {"y", res.Y}, {"z", res.Z}} {
		if err := part.vec.Display(ctx, w, part.name+" "+v.String()); err != nil {
			return err
		}
	}
	return nil
}

// pause blocks rank 0 until a line (or EOF) is read from in; the other
// workers wait at a barrier.
func pause(ctx context.Context, comm dist.Comm, out io.Writer, in io.Reader) error {
	if comm.Rank() == 0 {
		if _, err := fmt.Fprint(out, "Press ENTER to finish... "); err != nil {
			return err
		}
		if _, err := bufio.NewReader(in).ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}
	return comm.Barrier(ctx)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
