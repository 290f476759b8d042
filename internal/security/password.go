package security

import "golang.org/x/crypto/bcrypt"

// HashPassword transforms a plaintext password into the stored credential.
// The credential is salted, so equal passwords produce distinct credentials.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored credential.
func CheckPassword(password, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(password)) == nil
}
