// Package scenario runs YAML provisioning scenarios against a simulated
// device.
//
// A scenario describes the device (same keys as a device description file)
// and a list of steps. Each step performs an action as a configuration tool
// or user would, then checks the step outputs against its expectations:
//
//	id: KP-PROG-001
//	name: Programming mode by address
//	steps:
//	  - action: send
//	    params: {frame: "01 0A 11 FE 01"}
//	    expect: {reply: "01 00 00 00"}
//
// Frames are written as hex; missing trailing bytes are padded with 0xFF.
package scenario

import (
	"time"

	"github.com/konnekting/konnekting-go/pkg/config"
)

// Scenario is a single scenario loaded from YAML.
type Scenario struct {
	// ID is the unique scenario identifier (e.g., "KP-MEM-002").
	ID string `yaml:"id"`

	// Name is a human-readable name.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description"`

	// Device describes the simulated device. Nil uses config.Default().
	Device *config.Device `yaml:"device,omitempty"`

	// Steps are the actions to execute in order.
	Steps []Step `yaml:"steps"`

	// Tags for categorizing scenarios.
	Tags []string `yaml:"tags,omitempty"`
}

// Step is a single action in a scenario.
type Step struct {
	// Action is the action to perform (e.g., "send", "button", "wait").
	Action string `yaml:"action"`

	// Params are parameters for the action.
	Params map[string]any `yaml:"params,omitempty"`

	// Expect maps output keys to their expected values.
	Expect map[string]any `yaml:"expect,omitempty"`

	// Description explains what this step does.
	Description string `yaml:"description,omitempty"`
}

// Result is the outcome of one scenario.
type Result struct {
	Scenario    *Scenario
	Passed      bool
	Error       error
	StepResults []*StepResult
	Duration    time.Duration
}

// StepResult is the outcome of one step.
type StepResult struct {
	Step          *Step
	StepIndex     int
	Passed        bool
	Error         error
	Output        map[string]any
	ExpectResults map[string]*ExpectResult
}

// ExpectResult is the outcome of one expectation.
type ExpectResult struct {
	Key      string
	Expected any
	Actual   any
	Passed   bool
	Message  string
}

// SuiteResult aggregates the results of several scenarios.
type SuiteResult struct {
	Name      string
	Results   []*Result
	PassCount int
	FailCount int
	Duration  time.Duration
}

// LoadError provides details about a scenario loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
