package driver

import (
	"crypto/sha256"
	"fmt"

	"jsvet/internal/lint"
)

// Digest is a SHA-256 value used as a cache key.
type Digest [32]byte

// combineDigest: H(content || part1 || part2 ...). parts are in a fixed order.
func combineDigest(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// RegistryDigest hashes the enabled rules with their settings. Two runs
// with the same digest report the same diagnostics for the same content.
// Option maps print with sorted keys, so the digest is stable.
func RegistryDigest(reg *lint.Registry) Digest {
	h := sha256.New()
	fmt.Fprintf(h, "schema=%d\n", diskCacheSchemaVersion)
	rules, settings := reg.Enabled()
	for i, r := range rules {
		fmt.Fprintf(h, "%s %d %v\n", r.Name(), settings[i].Severity, map[string]any(settings[i].Options))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
