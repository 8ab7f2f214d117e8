package client

import (
	"context"
)

// Client is the transport contract of the authentication backend.
//
// Each method returns the decoded envelope whenever the backend answered
// with a 2xx status, whether or not the body reports success; callers
// decide with Envelope.OK. Transport and decoding problems come back as
// errors matching ErrUnavailable, ErrUnexpectedStatus or ErrMalformedResponse.
type Client interface {
	Login(ctx context.Context, req LoginRequest) (*Envelope[LoginData], error)
	Register(ctx context.Context, req RegisterRequest) (*Envelope[any], error)
	VerifyEmail(ctx context.Context, req VerifyEmailRequest) (*Envelope[VerifyEmailData], error)
	Close() error
}
