// Package testutil holds helpers shared by handler, router and service tests.
package testutil

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// userIDKey is the gin context key the JWT middleware stores the caller under
const userIDKey = "jwt_user_id"

var seedNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// NewTestUUID derives a stable UUID from seed so fixtures read the same on every run
func NewTestUUID(seed string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(seed))
}

// TestUserID is the account that owns fixtures unless a test says otherwise
func TestUserID() uuid.UUID {
	return NewTestUUID("test-user")
}

// AuthenticateAs stands in for the JWT middleware and marks every request
// as coming from id.
func AuthenticateAs(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(userIDKey, id.String())
		c.Next()
	}
}
