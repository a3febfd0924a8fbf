// Package controller turns user actions into store calls and view reloads.
//
// Every action runs to completion before returning:
//
//	validate input -> store mutation -> reload view
//
// Search skips the mutation step and reloads with the new filter. The view
// is always rebuilt from storage, never patched, so it cannot drift from
// the table.
//
// Problems are reported twice: once to the Notifier, as the modal message
// the user sees, and once as the returned error, for callers that need an
// exit status. Validation failures never reach the store.
package controller
