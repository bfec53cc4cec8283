package models

// User is a dashboard login identity. Only the email is ever projected
// to callers; the password hash stays server-side.
type User struct {
	ID           int    `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password"`
}

// UserEmail is the single-field projection returned by GET /api/user/{id}.
type UserEmail struct {
	Email string `json:"email" db:"email"`
}
