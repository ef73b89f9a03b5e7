package structs

import (
	"time"

	"github.com/google/uuid"
)

// AuthClaims are the verified access-token claims. This server only
// verifies tokens minted by the account service; it never issues them.
type AuthClaims struct {
	Sub   uuid.UUID `json:"sub"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
	Iat   time.Time `json:"iat"`
	Exp   time.Time `json:"exp"`
	Jti   uuid.UUID `json:"jti"`
}
