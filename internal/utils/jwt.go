package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "sauna_booking_api"
	tokenAudience = "sauna_booking_client"
)

// AccessToken is a signed HS256 JWT together with its expiry.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// TokenUser is the identity carried inside the token's data claim.
type TokenUser struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// NewAccessToken builds and signs an HS256 JWT for a user.  Besides the
// registered claims (iss, aud, iat, nbf, exp) the token carries a data
// object with the user's id, username and role.
func NewAccessToken(secret string, user TokenUser, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": exp.Unix(),
		"data": map[string]any{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies signature, expiry, issuer and audience, and
// extracts the identity from the data claim.
func ParseAccessToken(secret, tokenString string) (TokenUser, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return TokenUser{}, err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return TokenUser{}, errors.New("invalid token claims")
	}
	data, ok := claims["data"].(map[string]any)
	if !ok {
		return TokenUser{}, errors.New("missing data claim")
	}

	var u TokenUser
	if id, ok := data["id"].(float64); ok {
		u.ID = uint64(id)
	}
	u.Username, _ = data["username"].(string)
	u.Role, _ = data["role"].(string)
	if u.ID == 0 || u.Role == "" {
		return TokenUser{}, errors.New("incomplete data claim")
	}
	return u, nil
}
