package event

// Kind identifies an event in the closed catalogue.
type Kind int

const (
	// KindLauncherLaunched is published after a launcher's resources were opened.
	KindLauncherLaunched Kind = iota + 1
	// KindLauncherBasicInfoUpdated is published after launchers were created,
	// renamed, copied, reordered or deleted.
	KindLauncherBasicInfoUpdated
	// KindSettingUpdated is published after a setting was saved.
	KindSettingUpdated
	// KindApplicationStartupComplete is published once the process is ready.
	KindApplicationStartupComplete
	// KindResourceDragDrop is published when paths are dropped on the window.
	KindResourceDragDrop
)

var kindNames = map[Kind]string{
	KindLauncherLaunched:           "launcher:launched",
	KindLauncherBasicInfoUpdated:   "launcher:basic_info_updated",
	KindSettingUpdated:             "setting:updated",
	KindApplicationStartupComplete: "application:startup_complete",
	KindResourceDragDrop:           "resource:drag_drop",
}

// String returns the wire name of the event kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Kinds returns every kind in the catalogue in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindLauncherLaunched,
		KindLauncherBasicInfoUpdated,
		KindSettingUpdated,
		KindApplicationStartupComplete,
		KindResourceDragDrop,
	}
}

// Event is implemented only by the payload types in this package.
type Event interface {
	Kind() Kind
	sealed()
}

// LauncherLaunched reports that one or more launchers were launched.
type LauncherLaunched struct {
	LauncherIDs []int64 `json:"launcher_ids"`
}

// LauncherBasicInfoUpdated reports that launcher names or ordering changed.
type LauncherBasicInfoUpdated struct {
	LauncherIDs []int64 `json:"launcher_ids"`
}

// SettingUpdated reports a saved setting.
type SettingUpdated struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ApplicationStartupComplete carries the raw process arguments.
type ApplicationStartupComplete struct {
	Args []string `json:"args"`
}

// ResourceDragDrop carries the paths dropped onto the main window.
type ResourceDragDrop struct {
	Paths []string `json:"paths"`
}

func (LauncherLaunched) Kind() Kind           { return KindLauncherLaunched }
func (LauncherBasicInfoUpdated) Kind() Kind   { return KindLauncherBasicInfoUpdated }
func (SettingUpdated) Kind() Kind             { return KindSettingUpdated }
func (ApplicationStartupComplete) Kind() Kind { return KindApplicationStartupComplete }
func (ResourceDragDrop) Kind() Kind           { return KindResourceDragDrop }

func (LauncherLaunched) sealed()           {}
func (LauncherBasicInfoUpdated) sealed()   {}
func (SettingUpdated) sealed()             {}
func (ApplicationStartupComplete) sealed() {}
func (ResourceDragDrop) sealed()           {}
