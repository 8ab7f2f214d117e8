package devserver

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/authkeeper/internal/client/claims"
)

// issueToken signs an HS256 token carrying the claim keys the real backend uses.
func issueToken(u User, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	isPremium := "False"
	if u.Premium {
		isPremium = "True"
	}
	mc := jwt.MapClaims{
		claims.ClaimSID:         u.ID,
		claims.ClaimMobilePhone: u.PhoneNumber,
		claims.ClaimUserName:    u.UserName,
		claims.ClaimUniqueName:  u.FullName,
		claims.ClaimEmail:       u.Email,
		claims.ClaimIsPremium:   isPremium,
		"iat":                   jwt.NewNumericDate(now),
		"exp":                   jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(secret)
}
