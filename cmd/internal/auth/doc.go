// Package auth implements PostHub's identity core and token service.
//
// The Service orchestrates registration and login against the credential
// store, raising typed failures (fault kinds) that the request pipeline
// translates. Session tokens are PASETO v4.local: symmetric-key
// authenticated tokens carrying subject id, username, issuer, audience and
// expiry. The same manager verifies tokens at the bearer-auth boundary.
package auth
