package protocol

import (
	"fmt"

	"github.com/whatcheers/racklinkctl/internal/escape"
	"github.com/whatcheers/racklinkctl/internal/hexfmt"
)

// Field is one entry of a frame breakdown: a label, the raw bytes the entry
// covers, and a human description carrying any validity notes. Fields are
// purely descriptive and are not meant to be round-tripped.
type Field struct {
	Label string
	Bytes []byte
	Desc  string
}

// Decoder renders raw byte sequences as diagnostic frame breakdowns.
type Decoder struct {
	names *Registry
}

// NewDecoder creates a decoder resolving names through the given registry,
// or the default registry when names is nil.
func NewDecoder(names *Registry) *Decoder {
	if names == nil {
		names = defaultRegistry
	}
	return &Decoder{names: names}
}

// Decode breaks raw bytes down field by field. It never fails: an invalid
// header, checksum or tail is annotated on its own field and decoding
// continues, so captured or hand-crafted garbage still yields a readable
// breakdown. Strict accept/reject belongs to the transport layer, not here.
//
// Inputs shorter than MinFrameLen return an empty breakdown.
func (d *Decoder) Decode(raw []byte) []Field {
	if len(raw) < MinFrameLen {
		return nil
	}

	fields := make([]Field, 0, 9)

	header := raw[0]
	desc := "Valid"
	if header != FrameHeader {
		desc = fmt.Sprintf("INVALID Header (expected 0x%02X)", FrameHeader)
	}
	fields = append(fields, Field{"Header", raw[0:1], desc})

	// Declared envelope length. Informational only: it is not checked
	// against the actual body size.
	length := raw[1]
	fields = append(fields, Field{
		"Length", raw[1:2],
		fmt.Sprintf("Declares %d envelope byte(s)", length),
	})

	escaped := raw[2 : len(raw)-2]
	envelope, marks := escape.UnescapeMarked(escaped)
	escapeCount := 0
	for _, m := range marks {
		if m {
			escapeCount++
		}
	}
	envDesc := "Unescaped: " + hexfmt.Format(envelope)
	if escapeCount > 0 {
		envDesc += fmt.Sprintf(" (%d escape sequence(s))", escapeCount)
	}
	fields = append(fields, Field{"Data Envelope", escaped, envDesc})

	if len(envelope) > 0 {
		dest := envelope[0]
		desc := fmt.Sprintf("Target id 0x%02X", dest)
		if dest == 0x00 {
			desc = "Broadcast/device address"
		}
		fields = append(fields, Field{"Destination", envelope[0:1], desc})
	}

	if len(envelope) > 1 {
		fields = append(fields, Field{
			"Command", envelope[1:2],
			d.names.CommandName(envelope[1]),
		})
	}

	// Shorter envelopes simply omit the subcommand entry
	if len(envelope) > 2 {
		fields = append(fields, Field{
			"Subcommand", envelope[2:3],
			d.names.SubcommandName(envelope[2]),
		})
	}

	if len(envelope) > 3 {
		params := envelope[3:]
		fields = append(fields, Field{
			"Parameters", params,
			fmt.Sprintf("%d byte(s), ASCII: %q", len(params), asciiPreview(params)),
		})
	}

	// The expected sum always uses the 0xFE header constant, so a frame
	// whose header byte was corrupted still shows its checksum as valid.
	sum := raw[len(raw)-2]
	expected := Checksum(FrameHeader, length, envelope)
	desc = "Valid"
	if sum != expected {
		desc = fmt.Sprintf("INVALID (expected 0x%02X)", expected)
	}
	fields = append(fields, Field{"Checksum", raw[len(raw)-2 : len(raw)-1], desc})

	tail := raw[len(raw)-1]
	desc = "Valid"
	if tail != FrameTail {
		desc = fmt.Sprintf("INVALID Tail (expected 0x%02X)", FrameTail)
	}
	fields = append(fields, Field{"Tail", raw[len(raw)-1:], desc})

	return fields
}

// Decode breaks raw bytes down using the default registry.
func Decode(raw []byte) []Field {
	return NewDecoder(nil).Decode(raw)
}

// asciiPreview renders bytes as printable ASCII, substituting '.' for
// everything outside the printable range.
func asciiPreview(data []byte) string {
	out := make([]byte, len(data))
	for i, b := range data {
		if b >= 0x20 && b <= 0x7E {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
