package contract

// IHasher defines password hashing and token digest operations.
type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
	HashString(s string) string
}

// IUUIDGenerator generates opaque unique identifiers.
type IUUIDGenerator interface {
	NewUUID() string
}

// IRandomGenerator generates URL-safe random tokens of n bytes of entropy.
type IRandomGenerator interface {
	GenerateRandomToken(n int) (string, error)
}
