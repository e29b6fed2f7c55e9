// Package client contains the client-side plumbing that talks to the outside
// world: the remote REST backend and the local state database.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     fitness backend: Login, Register, Ping, List, Create and Subscribe.
//  2. A REST implementation (see RESTClient) built on resty. It injects the
//     bearer token, unwraps {mensagem, data} envelopes, retries idempotent
//     reads with exponential backoff and maps HTTP statuses to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens the
//     SQLite or Postgres state store and applies embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses are returned as *RemoteError, which matches
// ErrUnauthorized, common.ErrorNotFound and common.ErrVersionConflict with
// errors.Is. Transport failures wrap ErrUnavailable.
//
// Concurrency & Contexts
//
// RESTClient is safe for concurrent use. All remote operations accept
// context.Context and honour cancellation.
package client
