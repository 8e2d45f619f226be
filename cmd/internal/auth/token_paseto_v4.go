package auth

import (
	"time"

	paseto "aidanwoods.dev/go-paseto"
)

// Claims is the identity envelope carried by a session token.
type Claims struct {
	UserID    string
	Username  string
	Issuer    string
	Audience  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager issues and verifies session tokens.
type TokenManager interface {
	Issue(userID, username string, now time.Time) (token string, exp time.Time, err error)
	Verify(token string, now time.Time) (Claims, error)
}

type pasetoV4LocalManager struct {
	issuer    string
	audience  string
	ttl       time.Duration
	clockSkew time.Duration

	key paseto.V4SymmetricKey
}

// NewPasetoV4LocalManager builds a TokenManager based on PASETO v4.local.
//
// Tokens are symmetric-key authenticated (XChaCha20-Poly1305); the same key
// drives issuance and the bearer-auth verification boundary. Verification
// enforces issuer, audience and expiration, with ValidAt applying the
// configured clock-skew tolerance.
func NewPasetoV4LocalManager(cfg Config) (TokenManager, error) {
	if cfg.Issuer == "" || cfg.Audience == "" || cfg.TokenTTL <= 0 {
		return nil, ErrConfig
	}

	key, err := paseto.V4SymmetricKeyFromHex(cfg.SecretKeyHex)
	if err != nil {
		return nil, ErrConfig
	}

	return &pasetoV4LocalManager{
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		ttl:       cfg.TokenTTL,
		clockSkew: cfg.ClockSkew,
		key:       key,
	}, nil
}

func (m *pasetoV4LocalManager) Issue(userID, username string, now time.Time) (string, time.Time, error) {
	exp := now.Add(m.ttl)

	tok := paseto.NewToken()
	tok.SetIssuer(m.issuer)
	tok.SetAudience(m.audience)
	tok.SetSubject(userID)
	tok.SetIssuedAt(now)
	tok.SetNotBefore(now) // Session tokens valid immediately.
	tok.SetExpiration(exp)

	// Minimal, explicit claims.
	_ = tok.Set("uname", username)

	return tok.V4Encrypt(m.key, nil), exp, nil
}

func (m *pasetoV4LocalManager) Verify(token string, now time.Time) (Claims, error) {
	// Clock-skew tolerance:
	// Validate slightly in the future to avoid failing "nbf" when clocks
	// differ; this also makes expiration checks slightly stricter.
	validNow := now.Add(m.clockSkew)

	// Build a fresh parser per call to avoid accumulating rules across verifies.
	p := paseto.NewParser()
	p.AddRule(paseto.IssuedBy(m.issuer))
	p.AddRule(paseto.ForAudience(m.audience))
	p.AddRule(paseto.NotExpired())
	p.AddRule(paseto.ValidAt(validNow))

	parsed, err := p.ParseV4Local(m.key, token, nil)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	iss, _ := parsed.GetIssuer()
	aud, _ := parsed.GetAudience()
	exp, _ := parsed.GetExpiration()
	iat, _ := parsed.GetIssuedAt()

	sub, err := parsed.GetSubject()
	if err != nil || sub == "" {
		return Claims{}, ErrInvalidToken
	}
	uname, err := parsed.GetString("uname")
	if err != nil || uname == "" {
		return Claims{}, ErrInvalidToken
	}

	return Claims{
		UserID:    sub,
		Username:  uname,
		Issuer:    iss,
		Audience:  aud,
		IssuedAt:  iat,
		ExpiresAt: exp,
	}, nil
}
