// Package devserver is a local stand-in for the authentication backend.
//
// It serves POST /Auth/login, /Auth/register and /Auth/verify-email with the
// same {status, message, data} envelope and the same token claims as the
// real backend, keeping users in memory. One-time codes are logged instead
// of e-mailed. It exists for local runs of the CLI and for end-to-end tests.
package devserver
