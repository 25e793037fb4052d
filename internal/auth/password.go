package auth

import "golang.org/x/crypto/bcrypt"

// Coût bcrypt : facteur 10, volontairement lent — freine naturellement le
// credential stuffing
const bcryptCost = 10

// HashPassword hash un mot de passe avec bcrypt (salt inclus dans le hash)
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword vérifie si un mot de passe correspond au hash stocké
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
