package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Every fixture account documents "password" as its password; the stored
// hashes must actually verify against it or the accounts are dead weight.
func TestSeedPasswordHashesVerify(t *testing.T) {
	users := SeedUsers()
	require.NotEmpty(t, users)

	for _, u := range users {
		err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password"))
		assert.NoError(t, err, "seed user %s", u.Username)
	}
}

func TestSeedAdminReferencesSeedUser(t *testing.T) {
	users := SeedUsers()
	for _, a := range SeedAdmins() {
		found := false
		for _, u := range users {
			if u.ID == a.UserID {
				found = true
				break
			}
		}
		assert.True(t, found, "admin record %s points at a missing user", a.ID)
	}
}
