package model

// Launcher is a named, ordered group of resources triggered together.
type Launcher struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Sort int64  `json:"sort"`
}

// Resource is one launchable target owned by exactly one launcher.
// Path is opaque: a filesystem path, an application path or a URL.
type Resource struct {
	ID         int64  `json:"id"`
	LauncherID int64  `json:"launcher_id"`
	Name       string `json:"name"`
	Path       string `json:"path"`
}

// Setting is a single persisted key/value entry.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ResourceInput describes a resource to create. An empty Name is derived
// from Path with DeriveResourceName.
type ResourceInput struct {
	Name string `json:"name,omitempty"`
	Path string `json:"path"`
}

// SortUpdate assigns a new sort key to one launcher.
type SortUpdate struct {
	ID   int64 `json:"id"`
	Sort int64 `json:"sort"`
}

// LauncherView is a launcher together with its resources, as rendered by
// the UI layer.
type LauncherView struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Sort      int64      `json:"sort"`
	Resources []Resource `json:"resources"`
}

// Recognized settings keys.
const (
	SettingTheme                = "theme"
	SettingCloseMainPanel       = "close_main_panel"
	SettingAutoStartLauncherIDs = "auto_start_launcher_ids"
	SettingHideAfterAutoStart   = "hide_after_auto_start"
	SettingLaunchThenExit       = "launch_then_exit"
)

// CloseMainPanelExit is the close_main_panel value meaning "exit on close".
// Any other value hides the window instead.
const CloseMainPanelExit = "m2"
