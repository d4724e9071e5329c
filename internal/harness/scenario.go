package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes one end-to-end run of the pipeline.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Setup is written straight to the store before any step runs; it
	// publishes no events.
	Setup Setup `yaml:"setup,omitempty"`

	// Shell configures the recording collaborators.
	Shell ShellSetup `yaml:"shell,omitempty"`

	// Steps run in order; the bus is drained after each one.
	Steps []Step `yaml:"steps"`

	// Assertions are checked after the last step.
	Assertions []Assertion `yaml:"assertions"`
}

// Setup seeds launchers, their resources and settings.
type Setup struct {
	Launchers []LauncherSetup  `yaml:"launchers,omitempty"`
	Settings  map[string]string `yaml:"settings,omitempty"`
}

// LauncherSetup creates one launcher. Ids are assigned in file order
// starting at 1.
type LauncherSetup struct {
	Name      string          `yaml:"name"`
	Sort      *int64          `yaml:"sort,omitempty"`
	Resources []ResourceSetup `yaml:"resources,omitempty"`
}

// ResourceSetup creates one resource; an empty name is derived from the path.
type ResourceSetup struct {
	Name string `yaml:"name,omitempty"`
	Path string `yaml:"path"`
}

// ShellSetup configures the fake window and opener.
type ShellSetup struct {
	WindowVisible bool     `yaml:"window_visible,omitempty"`
	WindowWidth   int      `yaml:"window_width,omitempty"`
	WindowHeight  int      `yaml:"window_height,omitempty"`
	FailOpen      []string `yaml:"fail_open,omitempty"`
}

// Step is one action. Exactly one field other than Expect must be set.
type Step struct {
	// Startup announces startup with the given argv (program name first).
	Startup []string `yaml:"startup,omitempty"`
	// Redirect forwards a second invocation's argv.
	Redirect []string `yaml:"redirect,omitempty"`

	Launch    *int64 `yaml:"launch,omitempty"`
	Menu      string `yaml:"menu,omitempty"`
	TrayClick bool   `yaml:"tray_click,omitempty"`
	Close     bool   `yaml:"close,omitempty"`
	Drop      []string `yaml:"drop,omitempty"`
	// Scale reports a scale change at this many milliseconds after the
	// scenario's start.
	Scale *int64 `yaml:"scale,omitempty"`

	CreateLauncher *string      `yaml:"create_launcher,omitempty"`
	RenameLauncher *RenameStep  `yaml:"rename_launcher,omitempty"`
	CopyLauncher   *int64       `yaml:"copy_launcher,omitempty"`
	DeleteLauncher *int64       `yaml:"delete_launcher,omitempty"`
	SaveSetting    *SettingStep `yaml:"save_setting,omitempty"`

	// Expect, when set, names the error code the step must fail with.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// RenameStep renames a launcher.
type RenameStep struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

// SettingStep saves a setting through the command surface.
type SettingStep struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// ExpectClause specifies the expected step failure.
type ExpectClause struct {
	Error string `yaml:"error"`
}

// action returns the step's action name and how many actions are set.
func (s Step) action() (string, int) {
	var name string
	n := 0
	set := func(ok bool, label string) {
		if ok {
			n++
			name = label
		}
	}
	set(s.Startup != nil, "startup")
	set(s.Redirect != nil, "redirect")
	set(s.Launch != nil, "launch")
	set(s.Menu != "", "menu")
	set(s.TrayClick, "tray_click")
	set(s.Close, "close")
	set(s.Drop != nil, "drop")
	set(s.Scale != nil, "scale")
	set(s.CreateLauncher != nil, "create_launcher")
	set(s.RenameLauncher != nil, "rename_launcher")
	set(s.CopyLauncher != nil, "copy_launcher")
	set(s.DeleteLauncher != nil, "delete_launcher")
	set(s.SaveSetting != nil, "save_setting")
	return name, n
}

// Assertion checks the recorded result.
type Assertion struct {
	Type string `yaml:"type"`

	// Event names an event (event_count).
	Event string `yaml:"event,omitempty"`
	// Events lists event names in order (event_order).
	Events []string `yaml:"events,omitempty"`
	// Count is the expected number of occurrences (event_count,
	// window_call_count).
	Count *int `yaml:"count,omitempty"`
	// Calls is the exact window call sequence (window_calls).
	Calls []string `yaml:"calls,omitempty"`
	// Call names one window call (window_call_count).
	Call string `yaml:"call,omitempty"`
	// Targets lists opened targets (opened).
	Targets []string `yaml:"targets,omitempty"`
	// Codes lists exit codes (exit_codes).
	Codes []int `yaml:"codes,omitempty"`
	// Items lists tray menu ids (tray_items).
	Items []string `yaml:"items,omitempty"`
}

// Assertion type constants.
const (
	AssertEventCount      = "event_count"
	AssertEventOrder      = "event_order"
	AssertWindowCalls     = "window_calls"
	AssertWindowCallCount = "window_call_count"
	AssertOpened          = "opened"
	AssertExitCodes       = "exit_codes"
	AssertTrayItems       = "tray_items"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, l := range s.Setup.Launchers {
		if l.Name == "" {
			return fmt.Errorf("setup launcher %d: name is required", i)
		}
		for j, r := range l.Resources {
			if r.Path == "" {
				return fmt.Errorf("setup launcher %d resource %d: path is required", i, j)
			}
		}
	}

	for i, step := range s.Steps {
		name, n := step.action()
		switch {
		case n == 0:
			return fmt.Errorf("step %d: no action", i)
		case n > 1:
			return fmt.Errorf("step %d: more than one action", i)
		case (name == "startup" || name == "redirect") && len(append(step.Startup, step.Redirect...)) == 0:
			return fmt.Errorf("step %d: %s needs at least the program name", i, name)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertion %d: %w", i, err)
		}
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertEventCount:
		if a.Event == "" || a.Count == nil {
			return fmt.Errorf("event_count needs event and count")
		}
	case AssertEventOrder:
		if len(a.Events) < 2 {
			return fmt.Errorf("event_order needs at least two events")
		}
	case AssertWindowCallCount:
		if a.Call == "" || a.Count == nil {
			return fmt.Errorf("window_call_count needs call and count")
		}
	case AssertWindowCalls, AssertOpened, AssertExitCodes, AssertTrayItems:
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
