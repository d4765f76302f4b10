package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes an administrator password with bcrypt. A cost outside
// bcrypt's valid range (a missing or mistyped AUTH_BCRYPT_COST) falls back
// to the library default rather than failing account creation.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword checks a login attempt against the stored hash.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
