package service

// PasswordHasher defines the interface for password hashing operations.
type PasswordHasher interface {
	// Hash generates a hash from the given plaintext password.
	Hash(password string) (string, error)

	// Check verifies a plaintext password against a stored hash.
	Check(hashedPassword, password string) error
}
