package build

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint identifies one rendering of a page. A page whose RenderHash
// matches the one stored in the catalog does not need writing again.
type Fingerprint struct {
	ContentHash   string // rendered page bytes
	ThemeHash     string // templates and static files
	ConfigHash    string // site settings
	GeneratorHash string
	RenderHash    string
}

func (f *Fingerprint) ComputeRenderHash() {
	h := sha256.New()
	for _, part := range []string{f.ContentHash, f.ThemeHash, f.ConfigHash, f.GeneratorHash} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	f.RenderHash = hex.EncodeToString(h.Sum(nil))
}

// HashBytes is the hex SHA-256 of b.
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// HashStrings hashes parts as one NUL separated sequence.
func HashStrings(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
