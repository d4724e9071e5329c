// Package event implements the in-process publish/subscribe bus that drives
// oneclick's orchestration layer.
//
// EVENT CATALOGUE:
//
// The set of events is closed. Event is a sealed interface implemented only
// by the payload types declared in this package:
//
//	launcher:launched             LauncherLaunched{LauncherIDs}
//	launcher:basic_info_updated   LauncherBasicInfoUpdated{LauncherIDs}
//	setting:updated               SettingUpdated{Key, Value}
//	application:startup_complete  ApplicationStartupComplete{Args}
//	resource:drag_drop            ResourceDragDrop{Paths}
//
// Subscriptions are typed: On[E] derives the kind from E, so a listener is
// only ever called with its own payload type. There is no runtime decoding.
//
// DELIVERY:
//
// Publish stamps the event with a UUIDv7 id and a logical sequence number,
// then runs each listener registered for its kind in its own goroutine and
// returns immediately. Consequences:
//   - No ordering between listeners of the same event.
//   - No ordering between listeners of different events.
//   - A listener's error or panic is logged and reported to the Observer;
//     it never reaches the publisher or another listener.
//   - Listener contexts are detached from the publisher's cancellation.
//
// The listener set is fixed at startup; there is no unsubscribe. Wait blocks
// until every detached task, including tasks started by listeners, is done.
package event
