package domain

// User represents an account owner. All business entities are scoped to a
// user; nothing is shared between accounts.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuditFields
}
