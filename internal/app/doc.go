// Package app is the composition root for pawmatch.
//
// # Overview
//
// NewServices wires the catalog client, the session, the breed vocabulary,
// the search orchestrator and the match requester from a loaded config. The
// session is both the client's Authorizer and the expiry handler for search
// and match, so any non-success status drops the credential in one place.
//
// Run is the TUI entry point:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        TOML + .env + PAWMATCH_*
//	       ├─────> logging.OpenFile()   tint, no color, tailed by the UI
//	       ├─────> prefs.Load()         theme, page size, sort
//	       ├─────> NewServices()        session, client, search, match
//	       └─────> ui.Run()             blocks until quit
//
// CLI commands call NewServices directly with a stderr logger and sign in
// through Services.Login using the configured name and email.
//
// # Error Handling
//
// Config, log file and client construction failures are returned from Run.
// Everything after the UI starts is reported inside the UI.
package app
