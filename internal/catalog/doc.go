// Package catalog provides an HTTP client for the adoptable-dog catalog API.
//
// # Overview
//
// The catalog service exposes a small JSON API: a breed vocabulary, an id-only
// search with offset cursors, a batch lookup that turns ids into records, and
// a match endpoint that picks one dog out of a list of ids. This package
// defines the client and the transport types for those endpoints.
//
// # Architecture
//
//   - client.go: HTTP client, request/response handling, StatusError
//   - types.go: data structures mirroring the API schema, query encoding
//   - catalogtest: an in-memory chi server implementing the same contract
//
// # Client Usage
//
//	client, err := catalog.NewClient(cfg.APIURL,
//		catalog.WithAuthorizer(session),
//		catalog.WithLogger(logger),
//	)
//	if err != nil {
//		return fmt.Errorf("init catalog client: %w", err)
//	}
//
//	resp, err := client.Search(ctx, catalog.SearchQuery{Breeds: []string{"Beagle"}})
//	dogs, err := client.Dogs(ctx, resp.ResultIDs)
//
// # API Endpoints
//
//   - GET /dogs/breeds: breed vocabulary
//   - GET /dogs/search: ids, total, next/prev cursors
//   - POST /dogs: id array in, records out
//   - POST /dogs/match: id array in, {match: id} out
//
// Login and logout live in package auth; they share the base URL but not the
// credential handling.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and a User-Agent
//   - Carry a fresh X-Request-ID (uuid v4) that is logged at debug level
//   - Pass through the configured Authorizer before being sent
//
// # Error Handling
//
// Any status outside 2xx becomes a *StatusError. The service uses non-success
// statuses to signal a missing or stale credential, so every StatusError
// matches ErrSessionExpired under errors.Is. Callers hand those to the session
// collaborator; the client never retries.
//
// Network and decode failures are wrapped with fmt.Errorf:
//   - "execute request: dial tcp: connection refused"
//   - "decode response: unexpected end of JSON input"
//
// # Thread Safety
//
// The Client is safe for concurrent use.
package catalog
