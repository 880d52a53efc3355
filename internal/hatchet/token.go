package hatchet

import (
	"fmt"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

// tokenClaims are the routing claims Hatchet embeds in client API tokens.
// The token is decoded without signature verification: the server is the
// verifying party, this client only needs to know where to send requests.
type tokenClaims struct {
	ServerURL string `json:"server_url"`
	TenantID  string `json:"sub"`
}

var tokenAlgs = []jose.SignatureAlgorithm{jose.HS256, jose.RS256, jose.ES256, jose.EdDSA}

func parseTokenClaims(raw string) (tokenClaims, error) {
	tok, err := jwt.ParseSigned(raw, tokenAlgs)
	if err != nil {
		return tokenClaims{}, fmt.Errorf("hatchet: parse client token: %w", err)
	}

	var claims tokenClaims
	if err := tok.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return tokenClaims{}, fmt.Errorf("hatchet: decode token claims: %w", err)
	}
	return claims, nil
}
