package kvstore

// KeyValid returns true if the key can be stored. Keys are opaque byte
// sequences; only the empty key is rejected, since it cannot round-trip
// through the command line surface.
func KeyValid(key string) bool {
	return len(key) > 0
}
