// Package client contains the client-side plumbing for the contacts API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register, SignIn, ListContacts, UpdateContact, DeleteContact,
//     CreateContact.
//  2. A JSON-over-HTTP implementation (see HTTPClient). Every request gets
//     an X-Request-ID and the configured timeout; extra behaviour such as
//     bearer-token injection is added as RoundTripper middleware
//     (WithMiddleware).
//  3. Local persistence bootstrap (InitDatabase, RunMigrations): an SQLite
//     database with embedded goose migrations.
//
// # Error Handling
//
// Each call accepts exactly one success status (200, 201 or 204, as the API
// documents). Anything else becomes a *StatusError that unwraps to
// ErrUnauthorized, ErrNotFound, ErrUnavailable or ErrUnexpectedStatus.
// Transport failures wrap ErrUnavailable.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
