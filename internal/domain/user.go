package domain

// Role distinguishes administrative accounts from delivery couriers.
type Role string

// User is an account: either an administrator or a delivery courier.
// PasswordHash is a bcrypt hash and is never serialized.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}
