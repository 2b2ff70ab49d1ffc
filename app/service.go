// Package app wires configuration, logging and metrics around the model
// pipeline: define, load, solve, post-solve.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jszinai/switch/config"
	"github.com/jszinai/switch/core/dispatch"
	"github.com/jszinai/switch/core/lp"
	"github.com/jszinai/switch/core/model"
	"github.com/jszinai/switch/core/policy/curtail"
	"github.com/jszinai/switch/infra/logger"
	"github.com/jszinai/switch/infra/metrics"
)

// Service runs one model build-solve-report cycle.
type Service struct {
	cfg   *config.Config
	log   logger.Logger
	sink  *metrics.SolveSink
	runID string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	var sink *metrics.SolveSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err = metrics.NewSolveSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
	}
	return &Service{
		cfg:   cfg,
		log:   logger.New("service"),
		sink:  sink,
		runID: uuid.NewString(),
	}, nil
}

// Run executes the pipeline and blocks until it completes or ctx is
// cancelled. The optional metrics server lives for the duration of the run.
func (s *Service) Run(ctx context.Context) error {
	if s.sink != nil {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	s.log.Infof("run %s: inputs=%s outputs=%s", s.runID, s.cfg.InputsDir, s.cfg.OutputsDir)

	sys := model.NewSystem()
	prog := lp.New()
	b := dispatch.NewBuilder(sys, prog)

	if err := b.LoadInputs(s.cfg.InputsDir); err != nil {
		return fmt.Errorf("load base inputs: %w", err)
	}
	if err := b.DefineComponents(); err != nil {
		return fmt.Errorf("define dispatch components: %w", err)
	}

	cm, err := curtail.Define(b)
	if err != nil {
		return fmt.Errorf("define curtailment components: %w", err)
	}
	if err := cm.LoadInputs(s.cfg.InputsDir); err != nil {
		return fmt.Errorf("load curtailment inputs: %w", err)
	}

	s.log.Debugw("model built", map[string]any{
		"run_id":      s.runID,
		"variables":   prog.NumVars(),
		"constraints": prog.NumConstraints(),
	})
	if s.sink != nil {
		s.sink.RecordModelSize(prog.NumVars(), prog.NumConstraints())
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	sol, err := prog.Solve(s.cfg.Solver.Tolerance)
	elapsed := time.Since(start)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if s.sink != nil {
		s.sink.RecordSolve(outcome, elapsed.Seconds())
	}
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	s.log.Infof("run %s: solved in %s", s.runID, elapsed)

	if err := os.MkdirAll(s.cfg.OutputsDir, 0o755); err != nil {
		return fmt.Errorf("outputs dir: %w", err)
	}
	if err := cm.PostSolve(sol, s.cfg.OutputsDir); err != nil {
		return fmt.Errorf("post-solve reports: %w", err)
	}
	s.log.Infof("run %s: reports written to %s", s.runID, s.cfg.OutputsDir)
	return nil
}
