// Package store provides SQLite-backed persistence for oneclick.
//
// The store owns three tables:
//   - launcher: named, ordered groups (Launcher Store, launchers.go)
//   - launcher_resource: launchable targets owned by one launcher
//     (Resource Store, resources.go)
//   - settings: key/value configuration (Settings Store, settings.go)
//
// # Ordering Contracts
//
//   - Launchers: ORDER BY sort ASC, id DESC
//   - Resources: ORDER BY id DESC (most recently created first)
//
// The UI renders both lists directly in this order.
//
// # Transactions
//
// Operations that perform more than one write run inside a single
// transaction and roll back completely on failure: copy launcher, delete
// launcher (resources first, then the launcher), batch reorder, batch
// resource creation. Single-statement writes run directly on the pool.
// Resource creation checks the owning launcher inside the same transaction
// so that no resource can reference a missing launcher.
//
// # Errors
//
// Every error returned is a *model.Error: STORAGE_ERROR for driver
// failures, NOT_FOUND for missing rows, INVALID_ARGUMENT for unusable input.
// Nothing is retried.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - _txlock=immediate: writers lock at BEGIN
//   - pool of DefaultMaxConnections (5) unless configured
package store
