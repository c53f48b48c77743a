package catalog

import "github.com/google/uuid"

// NewID returns a random UUID v4 in canonical 36-character form.
func NewID() string {
	return uuid.NewString()
}

// IsID reports whether s is a canonical lower-case UUID v4 string.
func IsID(s string) bool {
	if len(s) != 36 {
		return false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return u.Version() == 4 && u.Variant() == uuid.RFC4122 && u.String() == s
}
