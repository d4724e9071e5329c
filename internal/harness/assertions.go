package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when an assertion fails. It carries the event
// trace to help debug the failure.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, ev := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %+v\n", ev.Seq, ev.Event, ev.Payload)
	}
	return buf.String()
}

// EvaluateAssertions checks every assertion and returns one message per
// failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			failures = append(failures, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}
	return failures
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertEventCount:
		return assertEventCount(result, a)
	case AssertEventOrder:
		return assertEventOrder(result, a)
	case AssertWindowCalls:
		return assertExact(result, a.Type, orEmpty(a.Calls), result.WindowCalls)
	case AssertWindowCallCount:
		n := 0
		for _, c := range result.WindowCalls {
			if c == a.Call {
				n++
			}
		}
		if n != *a.Count {
			return fail(result, a.Type,
				fmt.Sprintf("%s called %d times", a.Call, *a.Count),
				fmt.Sprintf("%s called %d times (calls: %v)", a.Call, n, result.WindowCalls))
		}
		return nil
	case AssertOpened:
		want := slices.Sorted(slices.Values(orEmpty(a.Targets)))
		got := slices.Sorted(slices.Values(result.Opened))
		if !slices.Equal(want, got) {
			return fail(result, a.Type, fmt.Sprintf("opened %v (any order)", a.Targets), fmt.Sprintf("opened %v", result.Opened))
		}
		return nil
	case AssertExitCodes:
		want := a.Codes
		if want == nil {
			want = []int{}
		}
		if !slices.Equal(want, result.ExitCodes) {
			return fail(result, a.Type, fmt.Sprintf("exit codes %v", want), fmt.Sprintf("exit codes %v", result.ExitCodes))
		}
		return nil
	case AssertTrayItems:
		return assertExact(result, a.Type, orEmpty(a.Items), trayItems(result))
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertEventCount(result *Result, a Assertion) error {
	n := 0
	for _, ev := range result.Trace {
		if ev.Event == a.Event {
			n++
		}
	}
	if n != *a.Count {
		return fail(result, a.Type,
			fmt.Sprintf("%s published %d times", a.Event, *a.Count),
			fmt.Sprintf("%s published %d times", a.Event, n))
	}
	return nil
}

// assertEventOrder checks that the first occurrence of each event comes
// after the first occurrence of the one before it. Other events may come in
// between.
func assertEventOrder(result *Result, a Assertion) error {
	positions := make(map[string]int, len(a.Events))
	for i, ev := range result.Trace {
		if _, seen := positions[ev.Event]; !seen {
			positions[ev.Event] = i
		}
	}

	for _, name := range a.Events {
		if _, ok := positions[name]; !ok {
			return fail(result, a.Type, fmt.Sprintf("all events present: %v", a.Events), "missing event: "+name)
		}
	}
	for i := 1; i < len(a.Events); i++ {
		prev, curr := a.Events[i-1], a.Events[i]
		if positions[prev] >= positions[curr] {
			return fail(result, a.Type,
				fmt.Sprintf("events in order: %v", a.Events),
				fmt.Sprintf("%s (pos %d) should be before %s (pos %d)", prev, positions[prev], curr, positions[curr]))
		}
	}
	return nil
}

func assertExact(result *Result, typ string, want, got []string) error {
	if !slices.Equal(want, got) {
		return fail(result, typ, fmt.Sprintf("%v", want), fmt.Sprintf("%v", got))
	}
	return nil
}

func trayItems(result *Result) []string {
	if result.Tray == nil {
		return []string{}
	}
	ids := make([]string, len(result.Tray.Items))
	for i, item := range result.Tray.Items {
		if item.Separator {
			ids[i] = "-"
			continue
		}
		ids[i] = item.ID
	}
	return ids
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func fail(result *Result, typ, expected, actual string) error {
	return &AssertionError{Type: typ, Expected: expected, Actual: actual, Trace: result.Trace}
}
