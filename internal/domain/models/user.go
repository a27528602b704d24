package models

// User is a stored account. Hash holds the bcrypt digest of the
// password and is excluded from JSON so it can never appear in a
// response body.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Hash     string `json:"-"`
}

// Principal is the authenticated identity attached to a request after
// successful token verification. It carries no secret material and
// lives only for the duration of one request.
type Principal struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
