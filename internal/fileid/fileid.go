// Package fileid generates the opaque identifiers that correlate a metadata
// row with its blob.
package fileid

import "math/rand/v2"

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	length   = 30
)

// New returns a 30-character identifier drawn uniformly from the ASCII
// letters. Uniqueness is not checked here; a collision surfaces as a
// primary-key violation when the metadata row is inserted, which the upload
// pipeline treats as a failed save.
func New() string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
