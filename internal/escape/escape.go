package escape

// Protected byte values. These may never appear literally inside a frame
// body; the escaper replaces them with Esc followed by the one's complement
// of the original byte.
const (
	Esc    = 0xFD
	Header = 0xFE
	Tail   = 0xFF
)

func isProtected(b byte) bool {
	return b == Esc || b == Header || b == Tail
}

// Escape replaces protected bytes with two-byte escape sequences.
func Escape(data []byte) []byte {
	// Pre-allocate with some extra space for escapes
	result := make([]byte, 0, len(data)+4)

	for _, b := range data {
		if isProtected(b) {
			result = append(result, Esc, ^b)
		} else {
			result = append(result, b)
		}
	}

	return result
}

// Unescape reverses Escape: an Esc byte followed by another byte yields the
// complement of that following byte.
//
// A lone Esc as the final input byte is emitted literally rather than
// rejected as a truncated sequence. Observed device traffic relies on this
// leniency; whether the protocol manual intends it is unconfirmed, so the
// behavior is kept as-is.
func Unescape(data []byte) []byte {
	out, _ := UnescapeMarked(data)
	return out
}

// UnescapeMarked unescapes data and additionally reports, per output byte,
// whether it was produced from an escape sequence. The markers are only for
// diagnostic rendering; checksums and lengths use the bytes alone.
func UnescapeMarked(data []byte) ([]byte, []bool) {
	result := make([]byte, 0, len(data))
	escaped := make([]bool, 0, len(data))

	i := 0
	for i < len(data) {
		if data[i] == Esc && i+1 < len(data) {
			result = append(result, ^data[i+1])
			escaped = append(escaped, true)
			i += 2
		} else {
			result = append(result, data[i])
			escaped = append(escaped, false)
			i++
		}
	}

	return result, escaped
}
