package platform

import (
	"log/slog"
	"sync"
)

// HeadlessWindow is a Window without a screen. It tracks visibility, theme
// and size in memory and logs every change. Used by the CLI and as the
// stand-in when no desktop front end is attached.
type HeadlessWindow struct {
	mu      sync.Mutex
	logger  *slog.Logger
	visible bool
	theme   Theme
	size    Size
}

// NewHeadlessWindow creates a hidden window of the given size.
func NewHeadlessWindow(logger *slog.Logger, size Size) *HeadlessWindow {
	if logger == nil {
		logger = slog.Default()
	}
	return &HeadlessWindow{logger: logger, size: size}
}

func (w *HeadlessWindow) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = true
	w.logger.Debug("window shown")
	return nil
}

func (w *HeadlessWindow) Hide() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = false
	w.logger.Debug("window hidden")
	return nil
}

func (w *HeadlessWindow) Focus() error {
	w.logger.Debug("window focused")
	return nil
}

func (w *HeadlessWindow) Unminimize() error {
	w.logger.Debug("window unminimized")
	return nil
}

func (w *HeadlessWindow) Unmaximize() error {
	w.logger.Debug("window unmaximized")
	return nil
}

func (w *HeadlessWindow) IsVisible() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible, nil
}

func (w *HeadlessWindow) SetTheme(theme Theme) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.theme = theme
	w.logger.Info("window theme changed", "theme", string(theme))
	return nil
}

// Theme returns the last theme set.
func (w *HeadlessWindow) Theme() Theme {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.theme
}

func (w *HeadlessWindow) InnerSize() (Size, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size, nil
}

func (w *HeadlessWindow) SetSize(size Size) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.size = size
	w.logger.Debug("window resized", "width", size.Width, "height", size.Height)
	return nil
}

// HeadlessTray is a Tray that keeps the current menu in memory.
type HeadlessTray struct {
	mu     sync.Mutex
	logger *slog.Logger
	menu   Menu
}

// NewHeadlessTray creates a tray with an empty menu.
func NewHeadlessTray(logger *slog.Logger) *HeadlessTray {
	if logger == nil {
		logger = slog.Default()
	}
	return &HeadlessTray{logger: logger}
}

func (t *HeadlessTray) SetMenu(menu Menu) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.menu = menu
	t.logger.Debug("tray menu updated", "items", len(menu.Items))
	return nil
}

// Menu returns the current menu.
func (t *HeadlessTray) Menu() Menu {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.menu
}
