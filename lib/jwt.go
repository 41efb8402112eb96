package lib

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims are the claims the external auth collaborator puts in the
// session token. The composition core only trusts Sub and Role.
type SessionClaims struct {
	Sub  uuid.UUID
	Role string
	Iat  time.Time
	Exp  time.Time
}

// ParseSessionToken parses and validates a session JWT and returns the claims.
func ParseSessionToken(tokenStr string, secret string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, WrapError(KindUnauthorized, "invalid session token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, NewError(KindUnauthorized, "invalid session token")
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return nil, NewError(KindUnauthorized, "invalid sub claim")
	}
	sub, err := uuid.Parse(subStr)
	if err != nil {
		return nil, WrapError(KindUnauthorized, fmt.Sprintf("invalid UUID in sub claim: %v", err), err)
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, NewError(KindUnauthorized, "invalid role claim")
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, NewError(KindUnauthorized, "invalid iat claim")
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, NewError(KindUnauthorized, "invalid exp claim")
	}

	return &SessionClaims{
		Sub:  sub,
		Role: role,
		Iat:  time.Unix(int64(iat), 0),
		Exp:  time.Unix(int64(exp), 0),
	}, nil
}

// ExtractSessionClaims reads the session cookie and parses its token.
func ExtractSessionClaims(r *http.Request, cookieName, secret string) (*SessionClaims, error) {
	tokenStr, err := GetCookieValue(cookieName, r)
	if err != nil {
		return nil, err
	}
	return ParseSessionToken(tokenStr, secret)
}
