package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// StatusSuccess is the body status value the backend uses for success.
const StatusSuccess = 1

// Endpoint paths, relative to the configured base URL.
const (
	PathLogin       = "/Auth/login"
	PathRegister    = "/Auth/register"
	PathVerifyEmail = "/Auth/verify-email"
)

type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	UserName    string `json:"userName"`
	Password    string `json:"password"`
}

type VerifyEmailRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type LoginData struct {
	Token string `json:"token"`
}

type VerifyEmailData struct {
	IsVerified bool `json:"isVerified"`
}

// Envelope is the common response body {status, message, data} together
// with the HTTP status it arrived with.
type Envelope[T any] struct {
	HTTPStatus int    `json:"-"`
	Status     int    `json:"status"`
	Message    string `json:"message"`
	Data       T      `json:"data"`
}

// OK reports a recognised success: HTTP 200 and body status 1.
func (e *Envelope[T]) OK() bool {
	return e != nil && e.HTTPStatus == http.StatusOK && e.Status == StatusSuccess
}

type rawEnvelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decodeEnvelope parses body. The data payload must decode into T only when
// the body reports success; failure bodies often carry a different shape.
func decodeEnvelope[T any](httpStatus int, body []byte) (*Envelope[T], error) {
	var raw rawEnvelope
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	env := &Envelope[T]{HTTPStatus: httpStatus, Status: raw.Status, Message: raw.Message}
	if len(raw.Data) == 0 || bytes.Equal(raw.Data, []byte("null")) {
		return env, nil
	}
	if err := json.Unmarshal(raw.Data, &env.Data); err != nil && raw.Status == StatusSuccess {
		return nil, fmt.Errorf("%w: data: %v", ErrMalformedResponse, err)
	}
	return env, nil
}
