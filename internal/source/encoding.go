package source

import (
	"bytes"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// hasUTF16BOM reports whether the content starts with a UTF-16 byte order
// mark, little or big endian.
func hasUTF16BOM(content []byte) bool {
	if len(content) < 2 {
		return false
	}
	return (content[0] == 0xFF && content[1] == 0xFE) ||
		(content[0] == 0xFE && content[1] == 0xFF)
}

// decodeUTF16 converts UTF-16 bytes to UTF-8. The BOM picks the byte
// order and is not carried into the output.
func decodeUTF16(content []byte) ([]byte, error) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	reader := transform.NewReader(bytes.NewReader(content), enc.NewDecoder())
	return io.ReadAll(reader)
}
