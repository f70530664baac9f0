// Package rptnetwork implements the transport-agnostic half of the Network
// Backend contract (rptcore.Backend): client sessions, the actor registry,
// RPTL parsing, and per-client outbound queues. Concrete transports (see
// internal/rptnetwork/wsbackend) only ever push connection/message/error
// notifications onto one channel; all RPTL parsing and state mutation runs
// on the executor goroutine inside WaitForInput, preserving the
// single-writer guarantee spec.md §5 requires of the core.
package rptnetwork
