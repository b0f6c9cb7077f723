// Package memguard implements signal-driven guard-band management for
// the engine's stack zones. A hardware fault on a zone's protected
// tail is intercepted, routed to the owning zone and either resolved
// by extending the accessible region or escalated to an unrecoverable
// failure with diagnostics.
//
// Three mutually exclusive delivery strategies normalize platform
// signal conventions into one shape (signal, optional fault address,
// optional opaque context): an inline sigaction handler on cgo-enabled
// builds, the Go runtime's structured fault panics, and a bare
// notification fallback that carries no address and treats every
// delivery as fatal.
//
// Everything on the fault path obeys signal-handler constraints: fixed
// buffers, one raw write per diagnostic line, no unbounded recursion.
// Engine bootstrap concerns (setup, config, inspection) use the
// ordinary logging stack.
package memguard
