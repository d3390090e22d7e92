// Package auth validates bearer credentials against the stored salted hash.
package auth

import "golang.org/x/crypto/bcrypt"

const hashCost = bcrypt.DefaultCost

// Guard checks presented credentials against a single stored bcrypt hash.
// The comparison is constant-time with respect to the presented secret.
type Guard struct {
	hash []byte
}

func NewGuard(passwordHash string) *Guard {
	return &Guard{hash: []byte(passwordHash)}
}

// Authenticate reports whether secret matches the stored hash. It never
// distinguishes between malformed and mismatching secrets.
func (g *Guard) Authenticate(secret string) bool {
	return bcrypt.CompareHashAndPassword(g.hash, []byte(secret)) == nil
}

// Hash derives the salted hash persisted in the agent config.
func Hash(secret []byte) (string, error) {
	h, err := bcrypt.GenerateFromPassword(secret, hashCost)
	if err != nil {
		return "", err
	}

	return string(h), nil
}
