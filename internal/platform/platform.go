// Package platform declares the external collaborators the orchestrator
// drives (window, tray, resource opener, process) and ships the
// implementations used by the oneclick binary: a headless window and tray
// that keep their state in memory, and an opener that hands targets to the
// operating system's default handler.
//
// A desktop front end supplies its own Window and Tray; nothing in this
// package renders anything.
package platform

import "context"

// Theme is the window theme requested through the theme setting.
type Theme string

const (
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
	ThemeSystem Theme = ""
)

// ParseTheme maps a theme setting value to a Theme. Unknown values follow
// the system theme.
func ParseTheme(value string) Theme {
	switch Theme(value) {
	case ThemeDark:
		return ThemeDark
	case ThemeLight:
		return ThemeLight
	default:
		return ThemeSystem
	}
}

// Size is a window's inner size in logical pixels.
type Size struct {
	Width  int
	Height int
}

// Window is the main application window.
type Window interface {
	Show() error
	Hide() error
	Focus() error
	Unminimize() error
	Unmaximize() error
	IsVisible() (bool, error)
	SetTheme(theme Theme) error
	InnerSize() (Size, error)
	SetSize(size Size) error
}

// MenuItem is one entry of the tray menu. A separator has no ID or Title.
type MenuItem struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	Separator bool   `json:"separator,omitempty"`
}

// Menu is the full tray menu, top to bottom.
type Menu struct {
	Items []MenuItem `json:"items"`
}

// Tray is the system-tray icon.
type Tray interface {
	SetMenu(menu Menu) error
}

// Opener opens a resource target (file, program or URL) with the
// operating system's default handler.
type Opener interface {
	Open(ctx context.Context, target string) error
}

// Process terminates the application.
type Process interface {
	Exit(code int)
}

// ExitFunc adapts a function to the Process interface.
type ExitFunc func(code int)

// Exit calls f(code).
func (f ExitFunc) Exit(code int) { f(code) }
