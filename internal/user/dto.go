package user

// Profile is the /users/me response: the account plus the features the
// caller's role currently grants.
type Profile struct {
	User
	Features []string `json:"features"`
}
