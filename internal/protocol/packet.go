package protocol

import (
	"github.com/whatcheers/racklinkctl/internal/escape"
)

// Frame layout constants
const (
	FrameHeader = 0xFE
	FrameTail   = 0xFF

	// MinFrameLen is the smallest viable frame:
	// header + length + one envelope byte + checksum + tail.
	MinFrameLen = 5

	// MaxEnvelopeLen is the largest envelope a single length byte can
	// describe. Longer envelopes are a caller contract violation.
	MaxEnvelopeLen = 255
)

// BuildFrame composes a data envelope into a complete wire frame:
// header, length, escaped envelope, checksum, tail. The length byte and the
// checksum cover the unescaped envelope, never the on-wire escaped form.
func BuildFrame(envelope []byte) []byte {
	length := byte(len(envelope))
	sum := Checksum(FrameHeader, length, envelope)
	escaped := escape.Escape(envelope)

	frame := make([]byte, 0, len(escaped)+4)
	frame = append(frame, FrameHeader, length)
	frame = append(frame, escaped...)
	frame = append(frame, sum, FrameTail)
	return frame
}

// NewEnvelope assembles a data envelope from its logical parts:
// destination, command code, subcommand code, parameter bytes.
func NewEnvelope(dest, cmd, sub byte, params ...byte) []byte {
	env := make([]byte, 0, 3+len(params))
	env = append(env, dest, cmd, sub)
	env = append(env, params...)
	return env
}

// ParseEnvelope extracts and unescapes the data envelope from a raw frame,
// the bytes between the length byte and the trailing checksum/tail pair.
// It reports false when the frame is shorter than MinFrameLen. Header, tail
// and checksum are not validated here; that is the decoder's job.
func ParseEnvelope(frame []byte) ([]byte, bool) {
	if len(frame) < MinFrameLen {
		return nil, false
	}
	return escape.Unescape(frame[2 : len(frame)-2]), true
}
