// Package console holds the view/controller state of one region console user.
//
// A [Session] owns the authoritative snapshot last loaded from the region
// service, the displayed (search-filtered) list, the selection, and the
// modal that is open. Every mutating action calls the service and then
// reloads the full list, so the view never drifts from the store.
//
// Selection is a set of region ids, not row positions: searching, reloading
// or reordering the displayed list cannot point a selection at the wrong
// record.
//
// The modal area is a small state machine. Exactly one of
//
//	Closed
//	FormOpen(editing, region?)
//	DetailOpen(region)
//
// is active; opening one replaces whatever was open.
package console
