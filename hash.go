// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package immutable

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hasher maps a key to the 32-bit hash the dictionary trie routes on.
// It must be consistent with ==: equal keys must produce equal hashes.
type Hasher[K comparable] func(K) uint32

// HashString is a Hasher for string keys.
func HashString(s string) uint32 {
	return uint32(xxhash.Sum64String(s))
}

type anyInteger interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// IntHasher returns a Hasher for any integer key type. The key is
// widened to 64 bits, encoded little-endian and hashed with xxhash.
func IntHasher[I anyInteger]() Hasher[I] {
	return func(i I) uint32 {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		return uint32(xxhash.Sum64(buf[:]))
	}
}
