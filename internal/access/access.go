// Package access holds the ownership rule applied by every single-read and
// mutating short link operation. Resolving a token for redirect is the one
// deliberately public operation and does not consult it.
package access

// Permit reports whether requesterID may read or mutate a resource owned by
// ownerID. Anonymous requesters (empty id) are always denied.
func Permit(requesterID, ownerID string) bool {
	return requesterID != "" && requesterID == ownerID
}
