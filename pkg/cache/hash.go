package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the SHA-256 content hash of a serialized snapshot or layout
// as a 64-character hex string. Layouts are content-addressed: equal bytes
// mean an equal graph and may share a cache entry.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a namespaced key from the parts that determine a layout's
// identity. Parts are serialized before hashing so option structs and plain
// strings key consistently.
func hashKey(namespace string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return namespace + ":" + Hash(data)
}
