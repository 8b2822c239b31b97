package kvstore

// DataPersister defines the methods the Store uses to move the mapping
// between memory and durable storage. The whole mapping travels as one
// snapshot: Load deserializes the database file in full and Persist
// replaces the file's contents with a newly serialized mapping.
//
// Load: returns an empty Mapping when the database file does not exist
// (an absent file is equivalent to an empty mapping, never an error).
//
// Persist: must never leave the file in a state observable by another
// process that is neither the old contents nor the new contents in full.
type DataPersister interface {

	// Load reads the database file and deserializes it into a Mapping.
	Load() (Mapping, error)

	// Persist serializes the Mapping and replaces the database file.
	Persist(m Mapping) error
}
