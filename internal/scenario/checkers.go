package scenario

import (
	"fmt"
	"strings"
)

// ExpectChecker compares an expected value from YAML with a step output.
type ExpectChecker func(key string, expected, actual any) *ExpectResult

func defaultCheckers() map[string]ExpectChecker {
	return map[string]ExpectChecker{
		KeyReply: checkFrame,
		KeyData:  checkHex,
	}
}

// toFloat64 converts the numeric types YAML and the actions produce.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// defaultChecker compares numbers by value and everything else by its
// printed form.
func defaultChecker(key string, expected, actual any) *ExpectResult {
	var passed bool
	en, ok1 := toFloat64(expected)
	an, ok2 := toFloat64(actual)
	if ok1 && ok2 {
		passed = en == an
	} else {
		passed = fmt.Sprint(expected) == fmt.Sprint(actual)
	}
	return &ExpectResult{
		Key:      key,
		Expected: expected,
		Actual:   actual,
		Passed:   passed,
		Message:  fmt.Sprintf("expected %v, got %v", expected, actual),
	}
}

// checkFrame compares a reply frame. The expected frame is padded with 0xFF;
// "none" or an empty string expects no reply.
func checkFrame(key string, expected, actual any) *ExpectResult {
	want := strings.TrimSpace(fmt.Sprint(expected))
	if strings.EqualFold(want, "none") {
		want = ""
	}
	if want != "" {
		f, err := parseFrame(want)
		if err != nil {
			return &ExpectResult{Key: key, Expected: expected, Actual: actual, Message: err.Error()}
		}
		want = f.String()
	}

	got := fmt.Sprint(actual)
	return &ExpectResult{
		Key:      key,
		Expected: want,
		Actual:   got,
		Passed:   want == got,
		Message:  fmt.Sprintf("expected [%s], got [%s]", want, got),
	}
}

// checkHex compares byte dumps ignoring case and separators.
func checkHex(key string, expected, actual any) *ExpectResult {
	want, err := parseHexBytes(fmt.Sprint(expected))
	if err != nil {
		return &ExpectResult{Key: key, Expected: expected, Actual: actual, Message: err.Error()}
	}
	got := fmt.Sprint(actual)
	return &ExpectResult{
		Key:      key,
		Expected: formatHex(want),
		Actual:   got,
		Passed:   formatHex(want) == got,
		Message:  fmt.Sprintf("expected [%s], got [%s]", formatHex(want), got),
	}
}
