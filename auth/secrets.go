package auth

import (
	"os"
)

// retrieve the JWT secret used for signing backend tokens
func GetSecret() []byte {
	secret := os.Getenv("AIWEB_SECRET")
	return []byte(secret)
}
