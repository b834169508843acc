// Package api
// Author: momentics <momentics@gmail.com>
//
// Contract surface of the hioload-buf segmented byte-buffer core.
//
// Defines the Buffer public surface consumed by sources and sinks, the
// Source/Sink streaming contracts, pool accounting types, debug probe
// interfaces, and the structured error taxonomy shared by all packages.
//
// The api package has no dependencies and carries no implementation.
package api
