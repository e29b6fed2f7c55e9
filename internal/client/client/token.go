package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fittracker/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim of a bearer token without verifying its
// signature; the backend remains the authority. A token without exp yields
// the zero time.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

// TokenExpired reports whether token is unusable at now. Malformed tokens
// count as expired.
func TokenExpired(token string, now time.Time) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return true
	}
	return !exp.IsZero() && !now.Before(exp)
}

// TokenUserID reads the id claim the backend puts into its login tokens.
// Numeric ids are returned in decimal form. The signature is not verified.
func TokenUserID(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser(jwt.WithJSONNumber()).ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	switch v := claims["id"].(type) {
	case json.Number:
		return v.String(), nil
	case string:
		if v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: no id claim", common.ErrInvalidToken)
}
