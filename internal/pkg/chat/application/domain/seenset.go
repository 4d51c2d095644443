package chat

// SeenSet is an append-only set of user IDs that have seen a message.
// Membership only ever grows; there is no removal operation. It marshals as
// a plain JSON array.
type SeenSet []string

// Contains reports whether userID is in the set.
func (s SeenSet) Contains(userID string) bool {
	for _, id := range s {
		if id == userID {
			return true
		}
	}
	return false
}

// Add inserts userID and reports whether the set grew.
func (s *SeenSet) Add(userID string) bool {
	if userID == "" || s.Contains(userID) {
		return false
	}
	*s = append(*s, userID)
	return true
}
