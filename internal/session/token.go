package session

import (
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/barberdev/barberdev-web/internal/domain/user"
)

// Identity is what a bearer credential decodes to. The decode is a
// best-effort structural parse for display purposes only: the signature is
// never checked client-side and nothing here is an authorization decision.
type Identity struct {
	ID       int
	Email    string
	FullName string
	Role     user.Role
}

// Claim URIs emitted by .NET backends alongside the short names.
const (
	roleClaimURI  = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
	emailClaimURI = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
	nameIDClaim   = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
)

// DecodeToken parses a credential into an Identity. It fails soft: any
// structural problem (wrong segment count, bad base64, missing claims)
// yields (nil, false) and the caller treats the session as absent.
func DecodeToken(token string) (*Identity, bool) {
	if strings.Count(token, ".") != 2 {
		return nil, false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, false
	}

	id := intClaim(claims, "nameid", nameIDClaim, "id", "userId", "sub")
	role := user.NormalizeRole(anyClaim(claims, roleClaimURI, "role", "Role", "roleid", "RoleId", "roleId", "userRole", "UserRole"))

	ident := &Identity{
		ID:       id,
		Email:    stringClaim(claims, "email", emailClaimURI, "Email", "EmailAddress"),
		FullName: stringClaim(claims, "fullName", "FullName", "name", "unique_name", "Name"),
		Role:     role,
	}
	if ident.ID <= 0 {
		return nil, false
	}
	return ident, true
}

func anyClaim(claims jwt.MapClaims, keys ...string) any {
	for _, k := range keys {
		if v, ok := claims[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringClaim(claims jwt.MapClaims, keys ...string) string {
	switch v := anyClaim(claims, keys...).(type) {
	case string:
		return v
	}
	return ""
}

func intClaim(claims jwt.MapClaims, keys ...string) int {
	switch v := anyClaim(claims, keys...).(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}
