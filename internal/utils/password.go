package utils

import "crypto/rand"

const passwordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()_+[]{}|;:,.<>?"

// GeneratePassword returns a random password for admin-created member
// accounts.
func GeneratePassword(length int) string {
	if length <= 0 {
		length = 16
	}

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}

	for i, b := range bytes {
		bytes[i] = passwordCharset[int(b)%len(passwordCharset)]
	}

	return string(bytes)
}
