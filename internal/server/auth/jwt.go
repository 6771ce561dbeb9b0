// Package auth verifies bearer credentials for write operations. The service
// never issues tokens on the request path; GenerateToken exists for tests and
// operator tooling.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bibe1s/JRSolisPortfolio/internal/common"
)

// Claims carries the standard registered claims plus the identity claim
// compared against the configured admin.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Principal is the single authorized identity, derived per-request from a
// verified credential. Never persisted.
type Principal struct {
	Email string
}

// Verifier checks a raw Authorization header against the server secret and
// the one configured admin identity. Pure function of (header, secret,
// admin email); no storage, no side effects.
type Verifier struct {
	secret     []byte
	adminEmail string
}

func NewVerifier(secret []byte, adminEmail string) *Verifier {
	return &Verifier{secret: secret, adminEmail: adminEmail}
}

// Authenticate validates the header shape, the token signature and expiry,
// and finally authorizes the embedded identity against the admin policy.
// Every failure collapses into common.ErrorUnauthorized so the caller cannot
// distinguish which sub-check rejected the request.
func (v *Verifier) Authenticate(rawHeader string) (*Principal, error) {
	token, ok := strings.CutPrefix(rawHeader, "Bearer ")
	if !ok || token == "" {
		return nil, common.ErrorUnauthorized
	}

	claims, err := v.verify(token)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	if !v.authorize(claims) {
		return nil, common.ErrorUnauthorized
	}

	return &Principal{Email: claims.Email}, nil
}

// verify checks signature and expiry only. Authorization is a separate step
// so a future multi-admin policy stays a policy change.
func (v *Verifier) verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, common.ErrorUnauthorized
	}

	return claims, nil
}

// authorize applies the single-tenant allow-list of one.
func (v *Verifier) authorize(claims *Claims) bool {
	return claims.Email != "" && claims.Email == v.adminEmail
}

// GenerateToken mints an HS256 token for the given identity. Used by tests
// and the login tooling that sits outside this service.
func GenerateToken(email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Email: email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
