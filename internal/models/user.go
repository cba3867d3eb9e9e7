package models

// User represents a registered operator account.
type User struct {
	// Username is the generated 8-digit identifier. It is never chosen by the operator.
	Username int64

	// PasswordHash is the stored digest of the operator's password.
	PasswordHash string
}
