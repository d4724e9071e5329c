// Package harness runs scenario files against the real listener pipeline.
//
// A scenario seeds a fresh database, drives the application through a list
// of steps (startup, redirects, tray clicks, commands) with recording fakes
// in place of the window, tray, opener and process, and then checks
// assertions against what happened.
//
// # Scenario Format
//
//	name: single_launch_hides
//	description: "Launching one launcher hides the window"
//	setup:
//	  launchers:
//	    - name: Work
//	      resources:
//	        - path: /usr/bin/editor
//	  settings:
//	    launch_then_exit: "true"
//	shell:
//	  fail_open: [/broken]
//	steps:
//	  - startup: [oneclick, launch, "1"]
//	  - menu: quit
//	assertions:
//	  - type: window_calls
//	    calls: [show, hide]
//	  - type: exit_codes
//	    codes: [0, 0]
//
// # Assertion Types
//
//   - event_count: an event name occurs exactly count times
//   - event_order: event names occur in this relative order
//   - window_calls: the exact sequence of window calls
//   - window_call_count: one window call occurs exactly count times
//   - opened: the opened targets, in any order
//   - exit_codes: the exact exit codes requested
//   - tray_items: the ids of the last tray menu ("-" is a separator)
//
// # Determinism
//
// Event ids come from a sequence generator, every step waits for the bus to
// drain, and the recorded trace is ordered by the bus sequence number, so a
// scenario produces the same snapshot on every run. Snapshots are compared
// with golden files.
package harness
