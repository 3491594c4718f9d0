package model

// Content is a keyed content fragment consumed by the front end (FAQ text,
// banner copy).  Key is globally unique and is the public identifier.
type Content struct {
	ID               uint64     `json:"id"`                // contents.id
	Key              string     `json:"key"`               // contents.key (unique)
	StringCollection StringList `json:"string_collection"` // contents.string_collection (JSON text)
	BigString        *string    `json:"big_string"`        // contents.big_string (nullable)
}
