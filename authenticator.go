package directory

import (
	"context"
	"net/http"
	"reflect"

	"github.com/goliatone/go-directory/middleware/jwtware"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// AuthResponse is the payload returned from successful register and login
// calls.
type AuthResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Auther struct {
	store        CredentialStore
	provider     CredentialVerifier
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator backed by the given store
func NewAuthenticator(store CredentialStore, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		store:        store,
		provider:     NewCredentialProvider(store),
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithCredentialVerifier sets a custom verifier, mostly useful in tests
func (s *Auther) WithCredentialVerifier(provider CredentialVerifier) *Auther {
	s.provider = provider
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Register creates a credential record and signs the new identity in. The
// issued token comes from a full login pass against the stored record, not
// from the registration input.
func (s *Auther) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	hash, err := HashPassword(password)
	if err != nil {
		s.logger.Error("Register hash password error", "error", err)
		return nil, err
	}

	exists, err := s.store.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Register exists check error", "error", err)
		return nil, err
	}

	if exists {
		return nil, ErrDuplicateCredential
	}

	record := &Credential{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if _, err = s.store.Register(ctx, record); err != nil {
		// the unique index is the backstop for a concurrent register
		// winning the race between the exists check and this insert
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateCredential
		}
		s.logger.Error("Register store error", "error", err)
		return nil, err
	}

	return s.Login(ctx, email, password)
}

// Login verifies the credentials and issues a session token
func (s *Auther) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	identity, err := s.provider.VerifyCredentials(ctx, email, password)
	if err != nil {
		s.logger.Error("Login verify credentials error", "error", err)
		return nil, err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return nil, ErrIdentityNotFound
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("Login token generation error", "error", err)
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		Name:  identity.Name(),
		Email: identity.Email(),
	}, nil
}

// SessionFromToken validates a raw token string and returns its claims
func (s *Auther) SessionFromToken(raw string) (AuthClaims, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Error("SessionFromToken validation failed", "error", err)
		return nil, err
	}
	return claims, nil
}

// ProtectedRoute builds the middleware guarding authenticated routes
func (s *Auther) ProtectedRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	return jwtware.New(jwtware.Config{
		ErrorHandler: errorHandler,
		SigningKey: jwtware.SigningKey{
			Key:    []byte(cfg.GetSigningKey()),
			JWTAlg: cfg.GetSigningMethod(),
		},
		AuthScheme:      cfg.GetAuthScheme(),
		ContextKey:      cfg.GetContextKey(),
		TokenLookup:     cfg.GetTokenLookup(),
		TokenValidator:  tokenValidatorAdapter{s.tokenService},
		ContextEnricher: contextEnricherAdapter,
	})
}

// MakeAPIAuthErrorHandler responds with a structured 401 payload for tokens
// the middleware rejected.
func (s *Auther) MakeAPIAuthErrorHandler() func(router.Context, error) error {
	return func(ctx router.Context, err error) error {
		var richErr *errors.Error

		if IsTokenExpiredError(err) {
			richErr = ErrTokenExpired
		} else if IsMalformedError(err) {
			richErr = ErrTokenMalformed
		} else {
			richErr = errors.Wrap(err, errors.CategoryAuth, "Invalid authentication token").
				WithCode(errors.CodeUnauthorized)
		}

		s.logger.Info("Authentication error", "error", richErr.Message, "path", ctx.OriginalURL())

		return ctx.JSON(http.StatusUnauthorized, map[string]any{
			"error": map[string]any{
				"message":   richErr.Message,
				"text_code": richErr.TextCode,
			},
		})
	}
}

// tokenValidatorAdapter lets the middleware reuse the service's issuer and
// audience checks instead of re-parsing with only the signing key.
type tokenValidatorAdapter struct {
	service TokenService
}

func (a tokenValidatorAdapter) Validate(token string) (jwtware.AuthClaims, error) {
	claims, err := a.service.Validate(token)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// contextEnricherAdapter stores the authenticated identity in the request
// context for downstream handlers.
func contextEnricherAdapter(c context.Context, claims jwtware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return c
	}
	return WithIdentityContext(c, authClaims)
}
