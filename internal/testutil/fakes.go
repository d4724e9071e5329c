package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/roach88/oneclick/internal/platform"
)

// Window records every call made to it. It implements platform.Window.
//
// Thread-safety: all methods are safe for concurrent use.
type Window struct {
	mu      sync.Mutex
	calls   []string
	visible bool
	theme   platform.Theme
	size    platform.Size

	// Err, when set, is returned by every mutating call.
	Err error
}

// NewWindow creates a hidden window with the given inner size.
func NewWindow(size platform.Size) *Window {
	return &Window{size: size}
}

func (w *Window) record(call string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, call)
	if w.Err != nil {
		return w.Err
	}
	switch call {
	case "show":
		w.visible = true
	case "hide":
		w.visible = false
	}
	return nil
}

func (w *Window) Show() error       { return w.record("show") }
func (w *Window) Hide() error       { return w.record("hide") }
func (w *Window) Focus() error      { return w.record("focus") }
func (w *Window) Unminimize() error { return w.record("unminimize") }
func (w *Window) Unmaximize() error { return w.record("unmaximize") }

func (w *Window) IsVisible() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible, nil
}

// SetVisible sets visibility without recording a call.
func (w *Window) SetVisible(v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = v
}

func (w *Window) SetTheme(theme platform.Theme) error {
	if err := w.record("set_theme"); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.theme = theme
	return nil
}

func (w *Window) InnerSize() (platform.Size, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size, nil
}

func (w *Window) SetSize(size platform.Size) error {
	if err := w.record("set_size"); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.size = size
	return nil
}

// Calls returns a copy of the recorded call names in order.
func (w *Window) Calls() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

// Count returns how many times call was recorded.
func (w *Window) Count(call string) int {
	n := 0
	for _, c := range w.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

// Theme returns the last theme set.
func (w *Window) Theme() platform.Theme {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.theme
}

// Size returns the current inner size.
func (w *Window) Size() platform.Size {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Tray records every menu set on it. It implements platform.Tray.
type Tray struct {
	mu    sync.Mutex
	menus []platform.Menu

	// Err, when set, is returned by SetMenu and the menu is not recorded.
	Err error
}

func (t *Tray) SetMenu(menu platform.Menu) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}
	t.menus = append(t.menus, menu)
	return nil
}

// Menus returns every menu set so far.
func (t *Tray) Menus() []platform.Menu {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]platform.Menu(nil), t.menus...)
}

// Last returns the most recent menu and whether one was set.
func (t *Tray) Last() (platform.Menu, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.menus) == 0 {
		return platform.Menu{}, false
	}
	return t.menus[len(t.menus)-1], true
}

// ErrOpenFailed is returned by Opener for targets listed in Fail.
var ErrOpenFailed = errors.New("open failed")

// Opener records opened targets. It implements platform.Opener.
type Opener struct {
	mu     sync.Mutex
	opened []string
	fail   map[string]bool
}

// NewOpener creates an opener that fails for the given targets.
func NewOpener(failing ...string) *Opener {
	o := &Opener{fail: make(map[string]bool)}
	for _, f := range failing {
		o.fail[f] = true
	}
	return o
}

func (o *Opener) Open(_ context.Context, target string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail[target] {
		return ErrOpenFailed
	}
	o.opened = append(o.opened, target)
	return nil
}

// Opened returns the successfully opened targets in order.
func (o *Opener) Opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.opened...)
}

// Process records exit requests instead of exiting. It implements
// platform.Process.
type Process struct {
	mu    sync.Mutex
	codes []int
}

func (p *Process) Exit(code int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.codes = append(p.codes, code)
}

// Exited reports whether Exit was called.
func (p *Process) Exited() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.codes) > 0
}

// Codes returns every exit code requested.
func (p *Process) Codes() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int(nil), p.codes...)
}
