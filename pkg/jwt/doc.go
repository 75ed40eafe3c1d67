// Package jwt implements compact HS256 JSON Web Tokens and an HTTP middleware
// that guards routes with them.
//
// Only HS256 is produced and accepted; tokens declaring another algorithm are
// rejected with ErrUnexpectedSigningMethod. Signatures are compared in
// constant time. Claims (or any type embedding it) are checked for exp and
// nbf against the service clock, which WithClock replaces in tests.
//
//	svc, err := jwt.New(cfg.Secret)
//	token, err := svc.Generate(jwt.Claims{Subject: "email-access", ExpiresAt: exp.Unix()})
//
//	var claims jwt.Claims
//	err = svc.Parse(token, &claims)
//
// Middleware delegates verification to a VerifyFunc so callers can add their
// own claim checks, and stores the result for ClaimsFromContext.
package jwt
