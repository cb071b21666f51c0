package user

// User is a courier account. This service never writes users, it only
// verifies credentials against the stored hash.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
