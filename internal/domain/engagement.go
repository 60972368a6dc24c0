package domain

import "slices"

// EngagementState is the like/neutral/dislike state a user holds toward a book.
type EngagementState string

const (
	EngagementNone     EngagementState = "none"
	EngagementLiked    EngagementState = "liked"
	EngagementDisliked EngagementState = "disliked"
)

// Engagement returns the user's current state toward a book slug.
// A slug appears in at most one of the two sets; Liked wins if storage
// was ever left inconsistent by an older client.
func (u *User) Engagement(slug string) EngagementState {
	if contains(u.LikedBooks, slug) {
		return EngagementLiked
	}
	if contains(u.DislikedBooks, slug) {
		return EngagementDisliked
	}
	return EngagementNone
}

// MarkLiked adds the slug to the liked set. Returns false if the user
// already liked the book. Mutual exclusion is the caller's rule: a
// disliked book must be undone before it can be liked.
func (u *User) MarkLiked(slug string) bool {
	if contains(u.LikedBooks, slug) {
		return false
	}
	u.LikedBooks = append(u.LikedBooks, slug)
	u.Touch()
	return true
}

// MarkDisliked adds the slug to the disliked set. Returns false if already present.
func (u *User) MarkDisliked(slug string) bool {
	if contains(u.DislikedBooks, slug) {
		return false
	}
	u.DislikedBooks = append(u.DislikedBooks, slug)
	u.Touch()
	return true
}

// ClearEngagement removes the slug from both sets. Returns the state
// that was cleared, EngagementNone if the user had no engagement.
func (u *User) ClearEngagement(slug string) EngagementState {
	if removeString(&u.LikedBooks, slug) {
		u.Touch()
		return EngagementLiked
	}
	if removeString(&u.DislikedBooks, slug) {
		u.Touch()
		return EngagementDisliked
	}
	return EngagementNone
}

func contains(list []string, s string) bool {
	return slices.Contains(list, s)
}

func removeString(list *[]string, s string) bool {
	i := slices.Index(*list, s)
	if i < 0 {
		return false
	}
	*list = append((*list)[:i], (*list)[i+1:]...)
	return true
}
