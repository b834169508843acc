// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics, pool tunables, and debug introspection layer for the
// buffer core.
//
// Provides concurrent-safe state handling primitives including:
//   - Immutable snapshot config reads and atomic updates
//   - Runtime observers for tunable reloads
//   - Metrics telemetry contracts
//   - Debug hooks, probe registration, and periodic probe logging
//
// The buffer and pool hot paths never log; all observability funnels
// through this package.
package control
