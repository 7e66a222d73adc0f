package hexfmt

import "strings"

// Parse interprets s as hex-encoded bytes. Any character that is not a hex
// digit is stripped before interpretation, so "FE 03,00-21" and "fe030021"
// parse the same. A trailing odd digit has no partner byte and is dropped.
func Parse(s string) []byte {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if v, ok := hexVal(s[i]); ok {
			digits = append(digits, v)
		}
	}

	result := make([]byte, 0, len(digits)/2)
	for i := 0; i+1 < len(digits); i += 2 {
		result = append(result, digits[i]<<4|digits[i+1])
	}
	return result
}

// Format renders data as upper-case two-digit hex bytes separated by
// spaces, e.g. "FE 03 00 21 02 24 FF".
func Format(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	const hexDigits = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(data) * 3)
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(hexDigits[b>>4])
		sb.WriteByte(hexDigits[b&0x0F])
	}
	return sb.String()
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
