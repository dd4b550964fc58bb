package section

import "bytes"

// fixedString decodes a NUL padded string field.
func fixedString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}

	return string(b)
}

// putFixedString writes s into dst, truncating to len(dst) and NUL padding the rest.
func putFixedString(dst []byte, s string) {
	n := copy(dst, s)
	clear(dst[n:])
}
