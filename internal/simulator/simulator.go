// Package simulator provides a deterministic stand-in for RackLink
// hardware: it maps decoded request frames to synthetic response frames so
// the codec can be exercised without a device on the wire.
package simulator

import (
	"github.com/whatcheers/racklinkctl/internal/protocol"
)

// Responder maps a decoded request envelope to a response envelope.
// Returning nil means the device stays silent for that request. Implementations
// must be stateless; the same request always yields the same answer.
type Responder func(dest, cmd, sub byte, params []byte) []byte

// Simulator closes the decoder-to-encoder loop with a pluggable response
// policy. A transport adapter talking to real hardware can be substituted
// for it without touching the codec.
type Simulator struct {
	respond Responder
}

// New creates a simulator with the given policy, or DefaultResponder when
// respond is nil.
func New(respond Responder) *Simulator {
	if respond == nil {
		respond = DefaultResponder
	}
	return &Simulator{respond: respond}
}

// Respond decodes a request frame, consults the policy and encodes the
// resulting envelope into a response frame. It returns nil when the frame is
// too short, the envelope has fewer than 3 unescaped bytes, or the policy
// declines to answer.
func (s *Simulator) Respond(frame []byte) []byte {
	envelope, ok := protocol.ParseEnvelope(frame)
	if !ok || len(envelope) < 3 {
		return nil
	}

	response := s.respond(envelope[0], envelope[1], envelope[2], envelope[3:])
	if response == nil {
		return nil
	}
	return protocol.BuildFrame(response)
}

// DefaultResponder is the stock device policy: a healthy single-outlet unit
// that accepts any login, answers pings, and reports outlet 1 as "Outlet 1",
// switched on. Commands outside the table get no response.
func DefaultResponder(dest, cmd, sub byte, params []byte) []byte {
	switch cmd {
	case protocol.CmdLogin:
		// 0x01 flags a successful login
		return protocol.NewEnvelope(0x00, protocol.CmdLogin, protocol.SubResponse, 0x01)

	case protocol.CmdOutletName:
		if sub != protocol.SubGet {
			return nil
		}
		name := []byte("Outlet 1")
		return protocol.NewEnvelope(0x00, protocol.CmdOutletName, protocol.SubResponse,
			append([]byte{requestedIndex(params)}, name...)...)

	case protocol.CmdPowerOutlets:
		// Reports the requested outlet as ON
		return protocol.NewEnvelope(0x00, protocol.CmdPowerOutlets, protocol.SubResponse,
			requestedIndex(params), 0x01)

	case protocol.CmdPing:
		return protocol.NewEnvelope(0x00, protocol.CmdPing, protocol.SubResponse)
	}

	return nil
}

// requestedIndex returns the outlet index from the request parameters,
// defaulting to outlet 1 when none was sent.
func requestedIndex(params []byte) byte {
	if len(params) > 0 {
		return params[0]
	}
	return 0x01
}
