package auth

import "github.com/alexedwards/argon2id"

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) (bool, error)
}

// Argon2Hasher stores passwords as encoded argon2id hashes.
type Argon2Hasher struct {
	params *argon2id.Params
}

// NewArgon2Hasher uses argon2id.DefaultParams when params is nil.
func NewArgon2Hasher(params *argon2id.Params) *Argon2Hasher {
	if params == nil {
		params = argon2id.DefaultParams
	}
	return &Argon2Hasher{params: params}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	return argon2id.CreateHash(password, h.params)
}

func (h *Argon2Hasher) Compare(password, hash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, hash)
}
