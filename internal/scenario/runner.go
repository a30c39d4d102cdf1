package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/konnekting/konnekting-go/pkg/config"
	"github.com/konnekting/konnekting-go/pkg/log"
)

// Config configures a Runner. All fields are optional.
type Config struct {
	// Logger receives operational logs of the simulated devices.
	Logger *slog.Logger

	// ProtocolLogger captures the protocol events of every scenario.
	ProtocolLogger log.Logger
}

// Runner executes scenarios. Each scenario gets its own device and store.
type Runner struct {
	handlers map[string]actionHandler
	checkers map[string]ExpectChecker
	config   Config
}

// NewRunner creates a runner with the built-in actions and checkers.
func NewRunner(cfg Config) *Runner {
	return &Runner{
		handlers: defaultHandlers(),
		checkers: defaultCheckers(),
		config:   cfg,
	}
}

// RegisterChecker registers a checker for an expectation key.
func (r *Runner) RegisterChecker(key string, checker ExpectChecker) {
	r.checkers[key] = checker
}

// Run executes a scenario. Execution stops at the first failing step.
func (r *Runner) Run(ctx context.Context, sc *Scenario) *Result {
	start := time.Now()
	result := &Result{Scenario: sc}
	defer func() { result.Duration = time.Since(start) }()

	desc := sc.Device
	if desc == nil {
		desc = config.Default()
	}
	h, err := newHarness(desc, r.config.Logger, r.config.ProtocolLogger)
	if err != nil {
		result.Error = fmt.Errorf("setup: %w", err)
		return result
	}

	for i := range sc.Steps {
		if err := ctx.Err(); err != nil {
			result.Error = err
			return result
		}

		sr := r.executeStep(h, &sc.Steps[i], i)
		result.StepResults = append(result.StepResults, sr)
		if !sr.Passed {
			result.Error = fmt.Errorf("step %d (%s): %w", i, sr.Step.Action, sr.Error)
			return result
		}
	}

	result.Passed = true
	return result
}

func (r *Runner) executeStep(h *harness, step *Step, index int) *StepResult {
	result := &StepResult{
		Step:          step,
		StepIndex:     index,
		Output:        make(map[string]any),
		ExpectResults: make(map[string]*ExpectResult),
	}

	handler, ok := r.handlers[step.Action]
	if !ok {
		result.Error = fmt.Errorf("unknown action: %s", step.Action)
		return result
	}

	outputs, err := handler(h, step)
	if err != nil {
		result.Error = err
		return result
	}
	for k, v := range outputs {
		result.Output[k] = v
	}

	restarted, err := h.settle()
	if err != nil {
		result.Error = fmt.Errorf("restart: %w", err)
		return result
	}
	result.Output[KeyRestarted] = restarted

	result.Passed = true
	for key, expected := range step.Expect {
		er := r.checkExpectation(key, expected, result.Output)
		result.ExpectResults[key] = er
		if !er.Passed && result.Error == nil {
			result.Passed = false
			result.Error = fmt.Errorf("expectation failed: %s - %s", key, er.Message)
		}
	}
	return result
}

func (r *Runner) checkExpectation(key string, expected any, outputs map[string]any) *ExpectResult {
	actual, ok := outputs[key]
	if !ok {
		return &ExpectResult{
			Key:      key,
			Expected: expected,
			Message:  fmt.Sprintf("output key %q not found", key),
		}
	}
	checker, ok := r.checkers[key]
	if !ok {
		checker = defaultChecker
	}
	return checker(key, expected, actual)
}

// RunSuite executes scenarios in order and aggregates the results.
func (r *Runner) RunSuite(ctx context.Context, name string, scenarios []*Scenario) *SuiteResult {
	start := time.Now()
	suite := &SuiteResult{Name: name}

	for _, sc := range scenarios {
		res := r.Run(ctx, sc)
		suite.Results = append(suite.Results, res)
		if res.Passed {
			suite.PassCount++
		} else {
			suite.FailCount++
		}
	}

	suite.Duration = time.Since(start)
	return suite
}
