// Package core provides the data access layer for the region console.
//
// This package owns the authoritative region collection and everything that
// reads or mutates it, independent of any UI or transport layer. It can be
// used by web handlers, the console session, or tests without modification.
//
// # Architecture
//
//   - Region: the sole managed record (id, name, countries, active flag).
//   - Store: the five-operation contract (list, get, create, update, delete).
//     [MemoryStore] is the in-process implementation seeded at startup.
//   - Service: the entry point used by callers. It adds request-scoped
//     logging, error context and the bulk delete fan-out on top of a Store.
//
// # Store Contract
//
//	regions, _ := store.List(ctx)           // storage order, never filtered
//	r, err := store.Get(ctx, id)            // ErrNotFound when absent
//	r, err = store.Create(ctx, region)      // caller assigns the id
//	r, err = store.Update(ctx, region)      // wholesale replace by id
//	err = store.Delete(ctx, id)             // ErrNotFound when absent
//
// # Bulk Delete
//
// [Service.DeleteMany] issues one delete per id with bounded parallelism and
// collects an outcome for every id. A missing id never aborts its siblings;
// the aggregate is available through [BulkDeleteResult.Err].
//
// # Error Handling
//
// Failures are sentinel errors ([ErrNotFound], [ErrDuplicateID],
// [ErrMissingID]) wrapped with operation context. [MapError] turns any error
// into a user-facing message with a support code:
//
//   - REG001-REG003: region lookups and identity
//   - BLK001: partial bulk delete
//   - REQ001-REQ003: request lifecycle and input
//   - RATE001: throttling
package core
