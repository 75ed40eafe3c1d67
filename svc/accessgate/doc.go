// Package accessgate guards the mail form with a single shared password.
//
// Verify compares the candidate with ACCESS_PASSWORD, read from the
// environment on every call. It fails with ErrNotConfigured when the password
// is empty and ErrUnauthorized on any mismatch; the comparison is exact and
// case sensitive.
//
// When a token signer is configured with WithTokens, a successful Verify
// also returns an HS256 access token (subject "email-access", ten minutes by
// default) that Authorize later validates, so the right to send mail is held
// server side instead of in a client flag.
package accessgate
