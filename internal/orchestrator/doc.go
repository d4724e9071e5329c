// Package orchestrator is the listener pipeline: it reacts to bus events and
// window notifications by reading the stores and driving the window, tray,
// opener and process collaborators.
//
// # Listeners
//
// Register installs one listener per event kind:
//
//   - application:startup_complete: window visibility, tray refresh,
//     autostart launchers, then the launcher named on the command line.
//     Each step logs and continues on failure.
//   - launcher:launched: hide the window when exactly one launcher ran, then
//     exit when launch_then_exit is enabled.
//   - launcher:basic_info_updated: rebuild the tray menu.
//   - setting:updated: apply the theme.
//
// # Collaborators
//
// All platform access goes through the Shell passed to New. Nothing in this
// package keeps launcher or setting state; every decision reads the store.
package orchestrator
