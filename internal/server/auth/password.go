package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost matches the cost used by existing dashboard accounts.
const PasswordCost = 10

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares in constant time. A malformed hash never matches.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// dummyHash is compared against when an account does not exist, so a miss
// costs about as much as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("travelboard-dummy"), PasswordCost)

func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
