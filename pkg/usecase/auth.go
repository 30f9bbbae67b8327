package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/domain/types"
)

// DefaultTokenIssuer is the iss claim of query tokens
const DefaultTokenIssuer = "covidash"

const scopeClaim = "scope"

// Auth implements AuthUseCase with HS256-signed JWTs
type Auth struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// AuthOption configures Auth
type AuthOption func(*Auth)

// WithAuthClock overrides the clock used for iat/exp
func WithAuthClock(now func() time.Time) AuthOption {
	return func(a *Auth) {
		a.now = now
	}
}

// WithIssuer overrides the issuer claim
func WithIssuer(issuer string) AuthOption {
	return func(a *Auth) {
		a.issuer = issuer
	}
}

// NewAuth creates a new Auth use case
func NewAuth(secret []byte, opts ...AuthOption) (AuthUseCase, error) {
	if len(secret) < 32 {
		return nil, goerr.New("token secret must be at least 32 bytes", goerr.V("length", len(secret)))
	}

	a := &Auth{
		secret: secret,
		issuer: DefaultTokenIssuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// IssueToken signs a token for subject with the given scopes
func (a *Auth) IssueToken(ctx context.Context, subject types.UserID, scopes []string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", goerr.New("token subject is required")
	}
	if ttl <= 0 {
		return "", goerr.New("token ttl must be positive", goerr.V("ttl", ttl))
	}

	now := a.now()
	token, err := jwt.NewBuilder().
		Issuer(a.issuer).
		Subject(subject.String()).
		IssuedAt(now).
		NotBefore(now).
		Expiration(now.Add(ttl)).
		Claim(scopeClaim, strings.Join(scopes, " ")).
		Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token")
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, a.secret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token")
	}

	ctxlog.From(ctx).Info("Issued query token",
		"subject", subject,
		"scopes", scopes,
		"expiresAt", now.Add(ttl),
	)

	return string(signed), nil
}

// VerifyToken validates the signature and expiry of token
func (a *Auth) VerifyToken(ctx context.Context, token string) (*model.AuthContext, error) {
	if token == "" {
		return nil, goerr.Wrap(model.ErrInvalidToken, "token is empty")
	}

	parsed, err := jwt.Parse([]byte(token),
		jwt.WithKey(jwa.HS256, a.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(a.issuer),
		jwt.WithClock(jwt.ClockFunc(a.now)),
	)
	if err != nil {
		return nil, goerr.Wrap(model.ErrInvalidToken, "failed to verify token", goerr.V("cause", err.Error()))
	}

	authCtx := &model.AuthContext{
		Subject:   types.UserID(parsed.Subject()),
		ExpiresAt: parsed.Expiration(),
	}
	if v, ok := parsed.Get(scopeClaim); ok {
		if s, ok := v.(string); ok {
			authCtx.Scopes = strings.Fields(s)
		}
	}

	return authCtx, nil
}
