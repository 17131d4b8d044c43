package auth

import "hash/fnv"

// pickAvatar maps an email onto one of the configured avatars so the same
// account always gets the same picture.
func pickAvatar(avatars []string, email string) string {
	if email == "" || len(avatars) == 0 {
		return ""
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return avatars[h.Sum32()%uint32(len(avatars))]
}
