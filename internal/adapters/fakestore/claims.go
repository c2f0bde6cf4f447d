// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package fakestore

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/janderssonse/storefront/internal/domain"
)

var errNoClaims = errors.New("token carries no claims")

// DecodeClaims reads the display fields of a sign-in token. The signature is
// not checked, so the result is for display only.
func DecodeClaims(token string) (domain.Claims, error) {
	parser := &jwt.Parser{}

	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return domain.Claims{}, fmt.Errorf("failed to decode token: %w", err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || len(mapClaims) == 0 {
		return domain.Claims{}, errNoClaims
	}

	claims := domain.Claims{
		Subject: stringClaim(mapClaims["sub"]),
	}

	if user, ok := mapClaims["user"].(string); ok {
		claims.Username = user
	} else if name, ok := mapClaims["username"].(string); ok {
		claims.Username = name
	}

	if iat, ok := mapClaims["iat"].(float64); ok && iat > 0 {
		claims.IssuedAt = time.Unix(int64(iat), 0).UTC()
	}

	return claims, nil
}

func stringClaim(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
