package scenario

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTestdata(t *testing.T) {
	scenarios, err := LoadDirectory("testdata")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	runner := NewRunner(Config{})
	for _, sc := range scenarios {
		t.Run(sc.ID, func(t *testing.T) {
			res := runner.Run(context.Background(), sc)
			if !res.Passed {
				var buf bytes.Buffer
				NewTextReporter(&buf, true).ReportResult(res)
				t.Fatalf("scenario failed:\n%s", buf.String())
			}
		})
	}
}

func mustParse(t *testing.T, data string) *Scenario {
	t.Helper()
	sc, err := Parse([]byte(data))
	require.NoError(t, err)
	return sc
}

func TestRunStopsAtFailedExpectation(t *testing.T) {
	sc := mustParse(t, `
id: KP-FAIL
steps:
  - action: send
    params: {frame: "01 01 11 FE 00"}
    expect: {reply: "01 02 00 00"}
  - action: state
`)

	res := NewRunner(Config{}).Run(context.Background(), sc)

	assert.False(t, res.Passed)
	require.Len(t, res.StepResults, 1)
	er := res.StepResults[0].ExpectResults[KeyReply]
	require.NotNil(t, er)
	assert.False(t, er.Passed)
	assert.Equal(t, "01 02 DE AD 01 00 FF 00 FF FF FF FF FF FF", er.Actual)
}

func TestRunUnknownAction(t *testing.T) {
	sc := mustParse(t, "id: X\nsteps:\n  - action: teleport\n")

	res := NewRunner(Config{}).Run(context.Background(), sc)

	assert.False(t, res.Passed)
	assert.ErrorContains(t, res.Error, "unknown action: teleport")
}

func TestRunMissingParam(t *testing.T) {
	sc := mustParse(t, "id: X\nsteps:\n  - action: send\n")

	res := NewRunner(Config{}).Run(context.Background(), sc)

	assert.False(t, res.Passed)
	assert.ErrorIs(t, res.Error, errMissingParam)
}

func TestRunMissingOutputKey(t *testing.T) {
	sc := mustParse(t, "id: X\nsteps:\n  - action: button\n    expect: {address: \"1.1.254\"}\n")

	res := NewRunner(Config{}).Run(context.Background(), sc)

	assert.False(t, res.Passed)
	assert.ErrorContains(t, res.Error, `output key "address" not found`)
}

func TestRunCancelled(t *testing.T) {
	sc := mustParse(t, "id: X\nsteps:\n  - action: state\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewRunner(Config{}).Run(ctx, sc)

	assert.False(t, res.Passed)
	assert.ErrorIs(t, res.Error, context.Canceled)
}

func TestRegisterChecker(t *testing.T) {
	sc := mustParse(t, "id: X\nsteps:\n  - action: state\n    expect: {address: anything}\n")
	runner := NewRunner(Config{})
	runner.RegisterChecker(KeyAddress, func(key string, expected, actual any) *ExpectResult {
		return &ExpectResult{Key: key, Expected: expected, Actual: actual, Passed: true}
	})

	res := runner.Run(context.Background(), sc)

	assert.True(t, res.Passed, "error: %v", res.Error)
}

func TestRunSuiteAndReport(t *testing.T) {
	pass := mustParse(t, "id: OK-1\nname: passes\nsteps:\n  - action: state\n    expect: {factory: true}\n")
	fail := mustParse(t, "id: BAD-1\nname: fails\nsteps:\n  - action: state\n    expect: {factory: false}\n")

	suite := NewRunner(Config{}).RunSuite(context.Background(), "unit", []*Scenario{pass, fail})

	assert.Equal(t, 1, suite.PassCount)
	assert.Equal(t, 1, suite.FailCount)

	var buf bytes.Buffer
	NewTextReporter(&buf, true).ReportSuite(suite)
	out := buf.String()
	for _, want := range []string{
		"=== Suite: unit ===",
		"[PASS] OK-1 - passes",
		"[FAIL] BAD-1 - fails",
		"[FAILED] factory: expected false, got true",
		"Passed:  1",
		"Failed:  1",
	} {
		assert.True(t, strings.Contains(out, want), "missing %q in:\n%s", want, out)
	}
}
