package protocol

// Checksum computes the 7-bit frame checksum: header + length + sum of the
// envelope bytes, masked to the low 7 bits. Accumulation is done in an int
// so the intermediate sum cannot overflow.
//
// The envelope must be the unescaped form. Escaped input produces a wrong
// sum that this function cannot detect; the caller upholds that contract.
func Checksum(header, length byte, envelope []byte) byte {
	sum := int(header) + int(length)
	for _, b := range envelope {
		sum += int(b)
	}
	return byte(sum & 0x7F)
}
