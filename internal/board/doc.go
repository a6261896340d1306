// Package board implements the list view controller, the core of taskboard.
//
// A Controller holds the in-memory task snapshot for one signed-in
// session and orchestrates every operation against the task store:
//
//   - Refresh: full snapshot replace from the store
//   - AddTask: create, append locally, then reconcile via Refresh
//   - ToggleTask / DeleteTask: optimistic local mutation with a
//     fire-and-forget background write
//   - DeleteAllFor: bulk delete of one owner's tasks, then Refresh
//   - SetShowOthers: flips between "my tasks" and "all owners"
//
// The derived view (Groups) partitions the snapshot by owner, orders
// owners ascending by byte comparison, and orders each owner's tasks
// ascending by parsed calendar date.
//
// # Failure Semantics
//
// Store failures on the optimistic paths are logged and otherwise
// dropped: local state is never rolled back and no error reaches the
// user. The snapshot may diverge from the store until the next Refresh.
// A retry queue would change this observable behavior and is deliberately
// not implemented.
package board
