package strutil

import "unsafe"

// UnsafeByt2Str views b as a string without copying, b must not be modified afterwards.
func UnsafeByt2Str(b []byte) string {
	if len(b) < 1 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// UnsafeStr2Byt views s as a read-only []byte without copying.
func UnsafeStr2Byt(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
