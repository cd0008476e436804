package models

// User defines the base record shared by students and professors ('users' table)
type User struct {
	ID           int64  `db:"id"`        // Generated on insert, shared with the specialization row
	FullName     string `db:"full_name"` // Display name, also the listing sort key
	Email        string `db:"email"`     // Unique across all users
	PasswordHash string `db:"password_hash"`
}
