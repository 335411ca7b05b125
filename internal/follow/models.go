package follow

// UserRef is the public projection of a follow edge endpoint.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type EdgeRequest struct {
	FollowerID  string `json:"followerId"`
	FollowingID string `json:"followingId"`
}

type ToggleResult struct {
	Following bool   `json:"following"`
	Message   string `json:"message"`
}
