// Package internal implements the console bootstrap.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/console" instead, which re-exports the public API.
//
// # Stages
//
// A run walks a fixed sequence of stages, each one a precondition for the next:
//
//	Init → RequestBuilt → ResponseBuilt → PoolReady → RouterReady →
//	ModulesInitialized → Routed → Dispatched → Rendered → Emitted
//
// Init loads and validates the configuration and opens the file logger.
// PoolReady registers all six database roles, the cache pool, settings and
// the account manager. ModulesInitialized merges module translations and
// initializes active modules in manifest order.
//
// # Outcomes
//
// Stage functions return errors; nothing below the App writes to the response
// on failure. The first error stops the pipeline and is classified once:
//
//   - storage errors (pool configuration, lookup, connection) render
//     "Database error: ..." and exit with code 1
//   - route misses render "Not found: <path>" and exit with code 0
//   - unresolvable targets render "Dispatch error: ..." and exit with code 0
//   - anything else, including recovered panics, renders "Critical error: ..."
//     and exits with code 1
//
// Storage and critical failures are logged as exactly one critical entry with
// the failing stage and source line. In every case a response exists and its
// body is written exactly once.
package internal
