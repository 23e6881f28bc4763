package security

import (
	"coachup_api/internal/common"
	"coachup_api/internal/platform/config"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLength is bcrypt's input cap; longer input is silently
// truncated by the algorithm, so we reject it instead.
const MaxPasswordLength = 72

// HashPassword applies a salted adaptive-cost hash. Hashing the same
// password twice yields different outputs; both verify.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", common.Errorf("password must not be empty: %w", common.ErrValidation)
	}
	if len(password) > MaxPasswordLength {
		return "", common.Errorf("password exceeds %d bytes: %w", MaxPasswordLength, common.ErrValidation)
	}

	cost := bcrypt.DefaultCost
	if config.AppConfig != nil && config.AppConfig.BcryptCost > 0 {
		cost = config.AppConfig.BcryptCost
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", common.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPasswordHash reports whether password matches the stored hash.
// Malformed stored hashes simply fail the check; it never errors.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
