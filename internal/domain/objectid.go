package domain

import "regexp"

// objectIDPattern matches the 24-character hex shape of backend entity IDs.
var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsObjectID reports whether s looks like a valid backend entity ID.
//
// This is a light format check performed before submission to avoid
// avoidable backend rejections. It is advisory only: the server remains
// the authority on whether a reference actually resolves.
func IsObjectID(s string) bool {
	return objectIDPattern.MatchString(s)
}
