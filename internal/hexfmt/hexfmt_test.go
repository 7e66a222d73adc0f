package hexfmt

import (
	"bytes"
	"testing"
)

func TestParse_SpaceSeparated(t *testing.T) {
	result := Parse("FE 03 00 21 02 24 FF")
	expected := []byte{0xFE, 0x03, 0x00, 0x21, 0x02, 0x24, 0xFF}
	if !bytes.Equal(result, expected) {
		t.Errorf("Parse = %v, want %v", result, expected)
	}
}

func TestParse_MixedCaseNoSpaces(t *testing.T) {
	result := Parse("fe030021")
	expected := []byte{0xFE, 0x03, 0x00, 0x21}
	if !bytes.Equal(result, expected) {
		t.Errorf("Parse = %v, want %v", result, expected)
	}
}

func TestParse_StripsNonHexCharacters(t *testing.T) {
	result := Parse("FE, 03 | 00")
	expected := []byte{0xFE, 0x03, 0x00}
	if !bytes.Equal(result, expected) {
		t.Errorf("Parse = %v, want %v", result, expected)
	}
}

func TestParse_PrefixDigitsPairLeftToRight(t *testing.T) {
	// "0x" prefixes are not special: the 'x' is stripped but the leading
	// zero stays in the digit stream, so pairs shift accordingly
	result := Parse("0xFE, 0x03 | 0x00")
	expected := []byte{0x0F, 0xE0, 0x03, 0x00}
	if !bytes.Equal(result, expected) {
		t.Errorf("Parse = %v, want %v", result, expected)
	}
}

func TestParse_OddDigitTruncated(t *testing.T) {
	result := Parse("FE 03 0")
	expected := []byte{0xFE, 0x03}
	if !bytes.Equal(result, expected) {
		t.Errorf("Parse = %v, want %v", result, expected)
	}
}

func TestParse_Empty(t *testing.T) {
	if result := Parse(""); len(result) != 0 {
		t.Errorf("Parse(\"\") = %v, want empty", result)
	}
	if result := Parse("zz--"); len(result) != 0 {
		t.Errorf("Parse(non-hex) = %v, want empty", result)
	}
}

func TestFormat(t *testing.T) {
	result := Format([]byte{0xFE, 0x03, 0x00, 0x21, 0x02, 0x24, 0xFF})
	expected := "FE 03 00 21 02 24 FF"
	if result != expected {
		t.Errorf("Format = %q, want %q", result, expected)
	}
}

func TestFormat_Empty(t *testing.T) {
	if result := Format(nil); result != "" {
		t.Errorf("Format(nil) = %q, want \"\"", result)
	}
}

func TestParseFormat_RoundTrip(t *testing.T) {
	data := []byte{0x00, 0x01, 0xAB, 0xFF}
	if result := Parse(Format(data)); !bytes.Equal(result, data) {
		t.Errorf("Parse(Format(%v)) = %v", data, result)
	}
}
