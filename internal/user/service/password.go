package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher isolates credential storage from the authentication check.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(digest, password string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a salted bcrypt hasher. A cost of 0 uses bcrypt.DefaultCost.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *bcryptHasher) Verify(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
