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

// Package immutable provides persistent immutable collections: an indexed
// sequence (Vector) backed by a 32-way bit-partitioned trie and an
// associative map (Dict) backed by a hash array mapped trie.
//
// Every update returns a new handle and shares all subtrees not on the
// edited path with its predecessors. Published handles and the nodes
// reachable from them are never mutated, so any number of goroutines may
// read them concurrently without locking.
package immutable

// Both tries branch 32 ways and consume the key (an index or a hash)
// five bits at a time.
const (
	branchFactor = 32
	digitBits    = 5
	digitMask    = branchFactor - 1

	// width of the hash consumed by the dictionary trie
	hashBits = 32
)
