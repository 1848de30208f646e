package main

// AppConfig holds everything the server needs from the environment.
type AppConfig struct {
	Address string     `env:"DIRECTORY_ADDRESS" envDefault:":8572"`
	DSN     string     `env:"DIRECTORY_DSN" envDefault:"file::memory:?cache=shared"`
	Auth    AuthConfig `envPrefix:"DIRECTORY_AUTH_"`
}

// AuthConfig carries token options for the authenticator and middleware.
type AuthConfig struct {
	SigningKey      string   `env:"SIGNING_KEY,required"`
	SigningMethod   string   `env:"SIGNING_METHOD" envDefault:"HS256"`
	ContextKey      string   `env:"CONTEXT_KEY" envDefault:"user"`
	TokenExpiration int      `env:"TOKEN_EXPIRATION" envDefault:"24"`
	TokenLookup     string   `env:"TOKEN_LOOKUP" envDefault:"header:Authorization"`
	AuthScheme      string   `env:"AUTH_SCHEME" envDefault:"Bearer"`
	Issuer          string   `env:"ISSUER" envDefault:"directory"`
	Audience        []string `env:"AUDIENCE" envSeparator:"," envDefault:"directory"`
}

func (c AuthConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c AuthConfig) GetSigningMethod() string {
	return c.SigningMethod
}

func (c AuthConfig) GetContextKey() string {
	return c.ContextKey
}

func (c AuthConfig) GetTokenExpiration() int {
	return c.TokenExpiration
}

func (c AuthConfig) GetTokenLookup() string {
	return c.TokenLookup
}

func (c AuthConfig) GetAuthScheme() string {
	return c.AuthScheme
}

func (c AuthConfig) GetIssuer() string {
	return c.Issuer
}

func (c AuthConfig) GetAudience() []string {
	return c.Audience
}

// redacted returns a copy safe for debug dumps.
func (c AppConfig) redacted() AppConfig {
	out := c
	if out.Auth.SigningKey != "" {
		out.Auth.SigningKey = "[REDACTED]"
	}
	return out
}
