// Package services contains application services for the authentication
// client. This file defines the authentication service: login, register,
// email verification, logout and reading back the persisted session.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/client/claims"
	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/i18n"
	"github.com/dmitrijs2005/authkeeper/internal/client/notify"
	"github.com/dmitrijs2005/authkeeper/internal/client/session"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// Fixed Outcome messages. They are shown by the calling UI as-is.
const (
	MsgLoginFailed   = "Login failed"
	MsgTryAgainLater = "An error occurred. Please try again later."
	MsgLoggedOut     = "Logged out successfully"
	MsgLogoutFailed  = "An error occurred during logout."
)

var ErrNotLoggedIn = errors.New("not logged in")

// Outcome is the uniform result of every AuthService operation.
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Data carries the backend payload of a successful registration.
	Data any `json:"data,omitempty"`
	// IsVerified is set by VerifyEmail only; it is always serialised so a
	// failed verification reads as an explicit false.
	IsVerified bool `json:"isVerified"`
}

// Session is what a successful login leaves in the store.
type Session struct {
	Token   string
	Profile claims.Profile
}

// AuthService defines authentication operations for the UI layer.
//
// Contract:
//   - Login: authenticate and persist the token with its derived profile.
//   - Register: create a pending account; nothing is persisted.
//   - VerifyEmail: confirm the pending account with a one-time code.
//   - Logout: remove every session key from the store.
//   - CurrentSession: read the persisted session back.
//   - Close: release underlying client resources.
//
// Login, Register, VerifyEmail and Logout never return errors; failures are
// reported through Outcome. All methods honor context cancellation.
type AuthService interface {
	Login(ctx context.Context, userName, password string) Outcome
	Register(ctx context.Context, req client.RegisterRequest) Outcome
	VerifyEmail(ctx context.Context, email, otp string) Outcome
	Logout(ctx context.Context) Outcome
	CurrentSession(ctx context.Context) (*Session, error)
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client and a
// device session Store.
type authService struct {
	client   client.Client
	store    session.Store
	notifier notify.Notifier
	tr       *i18n.Translator
	log      logging.Logger
}

// NewAuthService wires an AuthService. A nil notifier discards
// notifications; a nil translator uses the default locale; a nil logger
// drops logs.
func NewAuthService(c client.Client, store session.Store, notifier notify.Notifier, tr *i18n.Translator, log logging.Logger) AuthService {
	if notifier == nil {
		notifier = notify.Discard
	}
	if tr == nil {
		tr = i18n.New(i18n.DefaultLocaleName)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: c, store: store, notifier: notifier, tr: tr, log: log.With("component", "auth")}
}

// Login authenticates against the backend. On success the token's claims
// are decoded and the token plus profile are written in one batch; the store
// is only touched after the backend confirmed success and decoding worked.
func (a *authService) Login(ctx context.Context, userName, password string) Outcome {
	env, err := a.client.Login(ctx, client.LoginRequest{UserName: userName, Password: password})
	if err != nil {
		a.log.Error(ctx, "error logging in", "user", userName, "error", err)
		return Outcome{Message: MsgTryAgainLater}
	}

	if !env.OK() {
		return Outcome{Message: orDefault(env.Message, MsgLoginFailed)}
	}

	if err := a.saveSession(ctx, env.Data.Token); err != nil {
		a.log.Error(ctx, "error logging in", "user", userName, "error", err)
		return Outcome{Message: MsgTryAgainLater}
	}

	a.log.Info(ctx, "logged in", "user", userName)
	return Outcome{Success: true, Message: env.Message}
}

func (a *authService) saveSession(ctx context.Context, token string) error {
	profile, err := claims.ProfileFromToken(token)
	if err != nil {
		return fmt.Errorf("decode token: %w", err)
	}
	if err := a.store.MultiSet(ctx, profile.Pairs(token)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Register creates a pending account. Failures are also shown as a long
// notification.
func (a *authService) Register(ctx context.Context, req client.RegisterRequest) Outcome {
	env, err := a.client.Register(ctx, req)
	if err != nil {
		a.log.Error(ctx, "error during registration", "user", req.UserName, "error", err)
		a.notifier.Show(ctx, a.tr.T(i18n.TryAgainLater), notify.Long)
		return Outcome{Message: MsgTryAgainLater}
	}

	if !env.OK() {
		msg := orDefault(env.Message, a.tr.T(i18n.RegisterFailed))
		a.notifier.Show(ctx, msg, notify.Long)
		return Outcome{Message: msg}
	}

	return Outcome{Success: true, Message: env.Message, Data: env.Data}
}

// VerifyEmail submits the one-time code. Only an explicit isVerified=true
// counts as success; a success envelope without it is reported as a failed
// verification.
func (a *authService) VerifyEmail(ctx context.Context, email, otp string) Outcome {
	env, err := a.client.VerifyEmail(ctx, client.VerifyEmailRequest{Email: email, OTP: otp})
	if err != nil {
		a.log.Error(ctx, "error during email verification", "email", email, "error", err)
		a.notifier.Show(ctx, a.tr.T(i18n.TryAgainLater), notify.Long)
		return Outcome{Message: MsgTryAgainLater}
	}

	if env.OK() && env.Data.IsVerified {
		a.notifier.Show(ctx, a.tr.T(i18n.VerifySucceeded), notify.Short)
		return Outcome{Success: true, Message: env.Message, IsVerified: true}
	}

	if env.OK() {
		a.log.Warn(ctx, "backend accepted verification but account is not verified", "email", email)
	}
	msg := orDefault(env.Message, a.tr.T(i18n.VerifyFailed))
	a.notifier.Show(ctx, msg, notify.Long)
	return Outcome{Message: msg}
}

// Logout removes the token and every profile key in one batch. Removing
// keys that are already gone is not an error, so Logout is idempotent.
func (a *authService) Logout(ctx context.Context) Outcome {
	if err := a.store.MultiRemove(ctx, session.Keys...); err != nil {
		a.log.Error(ctx, "error logging out", "error", err)
		return Outcome{Message: MsgLogoutFailed}
	}
	return Outcome{Success: true, Message: MsgLoggedOut}
}

// CurrentSession returns the persisted session, or ErrNotLoggedIn when no
// token is stored.
func (a *authService) CurrentSession(ctx context.Context) (*Session, error) {
	token, ok, err := a.store.Get(ctx, session.KeyToken)
	if err != nil {
		return nil, err
	}
	if !ok || token == "" {
		return nil, ErrNotLoggedIn
	}

	s := &Session{Token: token}
	fields := []struct {
		key string
		dst *string
	}{
		{session.KeyUserID, &s.Profile.ID},
		{session.KeyMobilePhone, &s.Profile.MobilePhone},
		{session.KeyUserName, &s.Profile.UserName},
		{session.KeyUniqueName, &s.Profile.UniqueName},
		{session.KeyUserEmail, &s.Profile.Email},
		{session.KeyIsPremium, &s.Profile.IsPremium},
		{session.KeyTheme, &s.Profile.Theme},
	}
	for _, f := range fields {
		if *f.dst, _, err = a.store.Get(ctx, f.key); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
