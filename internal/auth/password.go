package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/Sanjeev1695/billing-software/internal/config"
)

// VerifyOperator checks the supplied credentials against the configured
// operator. When a bcrypt hash is configured it takes precedence; otherwise
// the plaintext fallback is compared in constant time.
func VerifyOperator(cfg *config.Config, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.OperatorUsername)) == 1

	var passOK bool
	if cfg.OperatorPasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(cfg.OperatorPasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(cfg.OperatorPassword)) == 1
	}

	return userOK && passOK
}

// HashPassword produces a bcrypt hash suitable for OPERATOR_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
