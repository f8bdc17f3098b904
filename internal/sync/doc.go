// Package sync reconciles the local collections with the hosted record
// store.
//
// # Overview
//
// The app is local-first: every mutation lands in local storage immediately
// and the interface never waits on the network. While a session is active
// the reconciler mirrors each mutation to the remote store best-effort, and
// on sign-in it pulls the remote copy down.
//
//	UI action
//	    ↓
//	Reconciler ── always ──→ local storage (whole-collection write)
//	    └────── if signed in ──→ remote gateway (async, best effort)
//
// # Merge policy
//
// On the transition to the authenticated state the reconciler fetches both
// remote collections. A non-empty remote collection replaces the local one
// outright (the server is the source of truth once it holds anything); an
// empty remote collection leaves the local data untouched so a new user's
// offline work is never discarded.
//
// # Identifier reconciliation
//
// Records created locally carry a temporary token id. A successful remote
// insert promotes the record in place to the returned server row id; the
// record keeps its position and fields. Updates to a record that is still
// temporary are promoted to inserts, since no remote row exists yet.
// Deletes only reach the remote store for records holding a server id.
//
// # Failure policy
//
// Remote failures are logged and swallowed; the optimistic local state
// always stands. Nothing is retried or queued. Deletions performed while
// anonymous are never replayed after a later sign-in.
package sync
