package harness

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/roach88/oneclick/internal/commands"
	"github.com/roach88/oneclick/internal/event"
	"github.com/roach88/oneclick/internal/model"
	"github.com/roach88/oneclick/internal/orchestrator"
	"github.com/roach88/oneclick/internal/platform"
	"github.com/roach88/oneclick/internal/startup"
	"github.com/roach88/oneclick/internal/store"
	"github.com/roach88/oneclick/internal/testutil"
)

// scaleEpoch is the time origin for scale steps.
var scaleEpoch = time.Unix(0, 0).UTC()

// Harness wires the real store, bus, orchestrator, command surface and
// startup sequencer to recording fakes.
type Harness struct {
	store   *store.Store
	bus     *event.Bus
	orch    *orchestrator.Orchestrator
	svc     *commands.Service
	seq     *startup.Sequencer
	window  *testutil.Window
	tray    *testutil.Tray
	opener  *testutil.Opener
	process *testutil.Process

	mu    sync.Mutex
	trace []TraceEvent
}

// Run executes a scenario in a fresh temporary database and returns the
// result. The error is non-nil only when the scenario could not be run at
// all; failed assertions are reported in the result.
func Run(scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "oneclick-scenario-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario dir: %w", err)
	}
	defer os.RemoveAll(dir)

	st, err := store.Open(filepath.Join(dir, "scenario.db"), store.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario store: %w", err)
	}
	defer st.Close()

	h := newHarness(st, scenario.Shell)
	ctx := context.Background()

	if err := h.seed(ctx, scenario.Setup); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		h.execute(ctx, i, step, result)
		h.bus.Wait()
	}
	h.collect(result)

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func newHarness(st *store.Store, shell ShellSetup) *Harness {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	size := orchestrator.DefaultMinSize
	if shell.WindowWidth > 0 {
		size.Width = shell.WindowWidth
	}
	if shell.WindowHeight > 0 {
		size.Height = shell.WindowHeight
	}

	h := &Harness{
		store:   st,
		bus:     event.New(event.WithLogger(discard), event.WithIDGenerator(testutil.NewSequenceIDs("evt"))),
		window:  testutil.NewWindow(size),
		tray:    &testutil.Tray{},
		opener:  testutil.NewOpener(shell.FailOpen...),
		process: &testutil.Process{},
	}
	h.window.SetVisible(shell.WindowVisible)

	h.orch = orchestrator.New(st, h.bus, orchestrator.Shell{
		Window:  h.window,
		Tray:    h.tray,
		Opener:  h.opener,
		Process: h.process,
	}, orchestrator.WithLogger(discard))
	h.orch.Register()

	h.svc = commands.New(st, h.bus, h.orch, commands.WithLogger(discard))
	h.seq = startup.NewSequencer(h.bus, h.window, h.orch, startup.WithLogger(discard))

	h.bus.Tap("harness-trace", h.record)
	return h
}

func (h *Harness) record(_ context.Context, env event.Envelope) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.trace = append(h.trace, TraceEvent{
		Seq:     env.Seq,
		Event:   env.Event.Kind().String(),
		Payload: env.Event,
	})
	return nil
}

func (h *Harness) seed(ctx context.Context, setup Setup) error {
	for i, l := range setup.Launchers {
		id, err := h.store.CreateLauncher(ctx, l.Name, l.Sort)
		if err != nil {
			return fmt.Errorf("launcher %d: %w", i, err)
		}
		if len(l.Resources) == 0 {
			continue
		}
		inputs := make([]model.ResourceInput, len(l.Resources))
		for j, r := range l.Resources {
			inputs[j] = model.ResourceInput{Name: r.Name, Path: r.Path}
		}
		if _, err := h.store.CreateResources(ctx, id, inputs); err != nil {
			return fmt.Errorf("launcher %d resources: %w", i, err)
		}
	}

	keys := make([]string, 0, len(setup.Settings))
	for k := range setup.Settings {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := h.store.SaveSetting(ctx, k, setup.Settings[k]); err != nil {
			return fmt.Errorf("setting %s: %w", k, err)
		}
	}
	return nil
}

// execute runs one step and checks its expectation.
func (h *Harness) execute(ctx context.Context, i int, step Step, result *Result) {
	action, _ := step.action()
	err := h.dispatch(ctx, step)

	if err != nil {
		result.StepErrors = append(result.StepErrors, StepError{
			Step:   i,
			Action: action,
			Code:   string(model.CodeOf(err)),
		})
	}

	switch {
	case step.Expect == nil && err != nil:
		result.AddError(fmt.Sprintf("step %d (%s): unexpected error: %v", i, action, err))
	case step.Expect != nil && err == nil:
		result.AddError(fmt.Sprintf("step %d (%s): expected error %s, got success", i, action, step.Expect.Error))
	case step.Expect != nil && string(model.CodeOf(err)) != step.Expect.Error:
		result.AddError(fmt.Sprintf("step %d (%s): expected error %s, got %s", i, action, step.Expect.Error, model.CodeOf(err)))
	}
}

func (h *Harness) dispatch(ctx context.Context, step Step) error {
	switch {
	case step.Startup != nil:
		h.seq.Start(ctx, step.Startup)
	case step.Redirect != nil:
		h.seq.Redirect(ctx, step.Redirect)
	case step.Launch != nil:
		return h.svc.Launch(ctx, *step.Launch)
	case step.Menu != "":
		h.orch.HandleMenuEvent(ctx, step.Menu)
	case step.TrayClick:
		h.orch.HandleTrayClick()
	case step.Close:
		h.orch.HandleCloseRequested(ctx)
	case step.Drop != nil:
		h.orch.HandleDragDrop(ctx, step.Drop)
	case step.Scale != nil:
		h.orch.HandleScaleChanged(scaleEpoch.Add(time.Duration(*step.Scale) * time.Millisecond))
	case step.CreateLauncher != nil:
		_, err := h.svc.CreateLauncher(ctx, *step.CreateLauncher)
		return err
	case step.RenameLauncher != nil:
		return h.svc.RenameLauncher(ctx, step.RenameLauncher.ID, step.RenameLauncher.Name)
	case step.CopyLauncher != nil:
		_, err := h.svc.CopyLauncher(ctx, *step.CopyLauncher)
		return err
	case step.DeleteLauncher != nil:
		return h.svc.DeleteLauncher(ctx, *step.DeleteLauncher)
	case step.SaveSetting != nil:
		return h.svc.SaveSetting(ctx, step.SaveSetting.Key, step.SaveSetting.Value)
	}
	return nil
}

// collect copies the recorded state into result.
func (h *Harness) collect(result *Result) {
	h.mu.Lock()
	trace := slices.Clone(h.trace)
	h.mu.Unlock()
	slices.SortFunc(trace, func(a, b TraceEvent) int { return cmp.Compare(a.Seq, b.Seq) })
	result.Trace = append(result.Trace, trace...)

	result.WindowCalls = append(result.WindowCalls, h.window.Calls()...)
	result.Opened = append(result.Opened, h.opener.Opened()...)
	result.ExitCodes = append(result.ExitCodes, h.process.Codes()...)
	if menu, ok := h.tray.Last(); ok {
		result.Tray = &platform.Menu{Items: slices.Clone(menu.Items)}
	}
}
