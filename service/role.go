// Package service implements the Frontend/Filter/Backend pipeline that
// sits on top of the wire codec and message taxonomy: bidirectional
// cooperative forwarding, direction-aware typing, and outstanding-request
// correlation (spec.md Sec.4.3-4.6).
package service

import "github.com/gibbz00/language-service-go/protocol"

// Role describes which message direction a backend consumes as incoming
// and produces as outgoing. spec.md Sec.3 models this as a compile-time
// generic parameter F with six associated type sets; here it is a small
// runtime value instead (spec.md Sec.9 explicitly allows this: "an
// alternative design passes a role descriptor as runtime data"), which
// keeps the taxonomy itself (protocol package) free of a type parameter
// while still making every direction check explicit and centralized.
type Role struct {
	Name string

	// Incoming is the direction of requests/notifications this backend
	// receives from the wire.
	Incoming protocol.Direction

	// Outgoing is the direction of requests/notifications this backend
	// sends to the wire.
	Outgoing protocol.Direction
}

// ServerRole is the canonical "this backend implements a language
// server" role: it receives client-originated messages and sends
// server-originated ones.
var ServerRole = Role{Name: "server", Incoming: protocol.ClientOrigin, Outgoing: protocol.ServerOrigin}

// ClientRole is ServerRole's mirror: a backend implementing an LSP
// client.
var ClientRole = Role{Name: "client", Incoming: protocol.ServerOrigin, Outgoing: protocol.ClientOrigin}

// acceptsIncoming reports whether a method with the given direction
// belongs to this role's incoming set. ImplementationDependent methods
// ($/cancelRequest, $/progress) are accepted regardless of role.
func (r Role) acceptsIncoming(dir protocol.Direction) bool {
	return dir == r.Incoming || dir == protocol.ImplementationDependent
}
