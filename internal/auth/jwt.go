package auth

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"resourcehub/internal/models"
)

func parseTTL() time.Duration {
	if s := os.Getenv("JWT_EXPIRES_IN"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return 24 * time.Hour
}

// TokenTTL is the session lifetime used for both the JWT exp claim
// and the session row.
func TokenTTL() time.Duration { return parseTTL() }

func Sign(u models.User, jti string) (string, error) {
	key := []byte(os.Getenv("JWT_SECRET"))
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(u.ID), 10),
		"name":  u.Name,
		"email": u.Email,
		"role":  string(u.Role),
		"tier":  string(u.Tier),
		"jti":   jti,
		"exp":   now.Add(parseTTL()).Unix(),
		"iat":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// Verify parses and validates an access token, returning the claims
// and the session JTI the middleware checks against the store.
func Verify(tokenStr string) (Claims, string, error) {
	key := []byte(os.Getenv("JWT_SECRET"))
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return Claims{}, "", errors.New("invalid token")
	}
	mapc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, "", errors.New("invalid claims")
	}
	sub, _ := mapc["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return Claims{}, "", errors.New("invalid subject")
	}
	name, _ := mapc["name"].(string)
	email, _ := mapc["email"].(string)
	role, _ := mapc["role"].(string)
	tierStr, _ := mapc["tier"].(string)
	tier, err := models.ParseTier(tierStr)
	if err != nil {
		return Claims{}, "", errors.New("invalid tier claim")
	}
	jti, _ := mapc["jti"].(string)
	c := Claims{
		UserID: uint(id),
		Name:   name,
		Email:  email,
		Role:   models.Role(role),
		Tier:   tier,
	}
	return c, jti, nil
}
