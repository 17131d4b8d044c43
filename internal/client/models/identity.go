package models

import "strconv"

// Identity is who the current session belongs to, derived from token claims.
type Identity struct {
	ID        string
	Email     string
	AvatarRef string
}

func (i Identity) IsZero() bool {
	return i == Identity{}
}

// OwnerID is the numeric form of ID used to stamp new contacts; 0 when ID
// is not a number.
func (i Identity) OwnerID() int64 {
	n, err := strconv.ParseInt(i.ID, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
