// Package claims turns the backend session token into a typed user profile.
//
// The token is decoded without verifying its signature: the client only
// reads the claims, the backend remains the authority on validity.
package claims

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/authkeeper/internal/client/session"
)

// Claim keys issued by the backend.
const (
	ClaimSID         = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/sid"
	ClaimMobilePhone = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/mobilephone"
	ClaimUserName    = "UserName"
	ClaimUniqueName  = "unique_name"
	ClaimEmail       = "email"
	ClaimIsPremium   = "IsPremium"
)

const (
	ThemePremium = "Halloween"
	ThemeDefault = "default"

	// premiumTrue is the exact IsPremium value that unlocks the premium theme.
	premiumTrue = "True"
)

var ErrMalformedToken = errors.New("malformed token")

// Profile is the user data derived from the token and persisted next to it.
type Profile struct {
	ID          string
	MobilePhone string
	UserName    string
	UniqueName  string
	Email       string
	IsPremium   string
	Theme       string
}

// FieldMapping binds a raw claim key to the Profile field it fills.
type FieldMapping struct {
	Claim string
	Field func(p *Profile) *string
}

// Mapping is the claim-key → profile-field table, in storage order.
var Mapping = []FieldMapping{
	{Claim: ClaimSID, Field: func(p *Profile) *string { return &p.ID }},
	{Claim: ClaimMobilePhone, Field: func(p *Profile) *string { return &p.MobilePhone }},
	{Claim: ClaimUserName, Field: func(p *Profile) *string { return &p.UserName }},
	{Claim: ClaimUniqueName, Field: func(p *Profile) *string { return &p.UniqueName }},
	{Claim: ClaimEmail, Field: func(p *Profile) *string { return &p.Email }},
	{Claim: ClaimIsPremium, Field: func(p *Profile) *string { return &p.IsPremium }},
}

// Decode parses token and returns its raw claims. The signature is not checked.
func Decode(token string) (jwt.MapClaims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return mc, nil
}

// ProfileFromClaims fills a Profile through Mapping and derives the theme.
// Missing claims leave their field empty.
func ProfileFromClaims(mc jwt.MapClaims) Profile {
	var p Profile
	for _, m := range Mapping {
		*m.Field(&p) = stringClaim(mc[m.Claim])
	}
	p.Theme = ThemeFor(p.IsPremium)
	return p
}

// ProfileFromToken is Decode followed by ProfileFromClaims.
func ProfileFromToken(token string) (Profile, error) {
	mc, err := Decode(token)
	if err != nil {
		return Profile{}, err
	}
	return ProfileFromClaims(mc), nil
}

// ThemeFor returns the premium theme only for the literal "True".
func ThemeFor(isPremium string) string {
	if isPremium == premiumTrue {
		return ThemePremium
	}
	return ThemeDefault
}

// Pairs returns the token and profile as the eight session pairs, in the
// order of session.Keys.
func (p Profile) Pairs(token string) []session.Pair {
	return []session.Pair{
		{Key: session.KeyToken, Value: token},
		{Key: session.KeyUserID, Value: p.ID},
		{Key: session.KeyMobilePhone, Value: p.MobilePhone},
		{Key: session.KeyUserName, Value: p.UserName},
		{Key: session.KeyUniqueName, Value: p.UniqueName},
		{Key: session.KeyUserEmail, Value: p.Email},
		{Key: session.KeyIsPremium, Value: p.IsPremium},
		{Key: session.KeyTheme, Value: p.Theme},
	}
}

func stringClaim(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		// Only the string "True" unlocks the premium theme; a JSON boolean
		// is kept as "true"/"false".
		return strconv.FormatBool(value)
	default:
		return fmt.Sprint(value)
	}
}
