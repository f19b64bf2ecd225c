// Package byteutils contains helpers to build storage keys from byte slices.
package byteutils

// ConcatBytes returns a new byte slice that contains the given byte slices in order.
func ConcatBytes(params ...[]byte) []byte {
	length := 0
	for _, param := range params {
		length += len(param)
	}

	result := make([]byte, 0, length)
	for _, param := range params {
		result = append(result, param...)
	}

	return result
}

// ConcatBytesToString concatenates the given byte slices and returns the result as a string.
func ConcatBytesToString(params ...[]byte) string {
	return string(ConcatBytes(params...))
}

// HasPrefix returns true if the given key starts with the given prefix.
func HasPrefix(key, prefix []byte) bool {
	if len(key) < len(prefix) {
		return false
	}

	for i := range prefix {
		if key[i] != prefix[i] {
			return false
		}
	}

	return true
}

// KeyPrefixUpperBound returns the smallest key that is larger than all keys starting with the given prefix (nil if
// there is no such key because the prefix consists of 0xff bytes only).
func KeyPrefixUpperBound(prefix []byte) []byte {
	upperBound := ConcatBytes(prefix)
	for i := len(upperBound) - 1; i >= 0; i-- {
		upperBound[i]++
		if upperBound[i] != 0 {
			return upperBound[:i+1]
		}
	}

	return nil
}
