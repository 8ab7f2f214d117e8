package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the registration fields and submits them. The
// outcome message is printed; failures are also shown as notifications by
// the service.
func (a *App) Register(ctx context.Context) error {
	var req client.RegisterRequest
	prompts := []struct {
		text string
		dst  *string
	}{
		{"Enter full name", &req.FullName},
		{"Enter phone number", &req.PhoneNumber},
		{"Enter email", &req.Email},
		{"Enter user name", &req.UserName},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.text, os.Stdout)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)
	req.Password = string(password)

	out := a.authService.Register(ctx, req)
	printOutcome(out)
	if out.Success {
		printlnFn("Check your email for the verification code, then run 'verify'.")
	}
	return nil
}

// Verify prompts for the email and the one-time code sent by the backend.
func (a *App) Verify(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	otp, err := getSimpleText(a.reader, "Enter verification code", os.Stdout)
	if err != nil {
		return err
	}

	printOutcome(a.authService.VerifyEmail(ctx, email, otp))
	return nil
}

// Login prompts for credentials and authenticates. On success the persisted
// session is read back to show who is logged in.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	out := a.authService.Login(ctx, userName, string(password))
	printOutcome(out)
	if !out.Success {
		return nil
	}

	a.userName = userName
	if s, err := a.authService.CurrentSession(ctx); err == nil {
		a.userName = displayName(s)
	}
	return nil
}

// Logout removes the persisted session.
func (a *App) Logout(ctx context.Context) error {
	out := a.authService.Logout(ctx)
	printOutcome(out)
	if out.Success {
		a.userName = ""
	}
	return nil
}

// WhoAmI prints the profile stored for the current session.
func (a *App) WhoAmI(ctx context.Context) error {
	s, err := a.authService.CurrentSession(ctx)
	if errors.Is(err, services.ErrNotLoggedIn) {
		printlnFn("Not logged in")
		return nil
	}
	if err != nil {
		a.log.Error(ctx, "error reading session", "error", err)
		return err
	}

	p := s.Profile
	printlnFn(fmt.Sprintf("id:          %s", p.ID))
	printlnFn(fmt.Sprintf("user name:   %s", p.UserName))
	printlnFn(fmt.Sprintf("unique name: %s", p.UniqueName))
	printlnFn(fmt.Sprintf("email:       %s", p.Email))
	printlnFn(fmt.Sprintf("phone:       %s", p.MobilePhone))
	printlnFn(fmt.Sprintf("premium:     %s", p.IsPremium))
	printlnFn(fmt.Sprintf("theme:       %s", p.Theme))
	return nil
}

func printOutcome(out services.Outcome) {
	if out.Message == "" {
		if out.Success {
			printlnFn("Success!")
		}
		return
	}
	printlnFn(out.Message)
}
