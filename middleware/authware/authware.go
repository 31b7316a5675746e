// Package authware verifies gateway issued JWTs and injects the caller
// identity the users core trusts. It supports a shared HMAC secret or a
// remote JWK Set; verification policy beyond that belongs to the gateway.
package authware

import (
	"errors"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-users"
	"github.com/google/uuid"
)

var ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")

type Config struct {
	// SigningKey is the shared HMAC secret. Ignored when JWKSetURL is set.
	SigningKey []byte
	// JWKSetURL points at the gateway's JWK Set endpoint.
	JWKSetURL string
	// KeyFunc overrides key resolution entirely.
	KeyFunc jwt.Keyfunc
	// ContextKey is the locals key the Caller is stored under.
	ContextKey string
	// AuthScheme is the expected Authorization scheme.
	AuthScheme string
	// Filter skips verification for matching requests.
	Filter func(*fiber.Ctx) bool
	// ErrorHandler renders verification failures.
	ErrorHandler func(*fiber.Ctx, error) error
}

// New returns the caller identity middleware.
func New(config ...Config) fiber.Handler {
	cfg := defaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := tokenFromHeader(c, cfg.AuthScheme)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		token, err := jwt.Parse(raw, cfg.KeyFunc)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return cfg.ErrorHandler(c, ErrJWTMissingOrMalformed)
		}

		caller, err := CallerFromClaims(claims)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, caller)
		c.SetUserContext(users.WithCaller(c.UserContext(), caller))

		return c.Next()
	}
}

// CallerFromClaims maps token claims onto the caller identity: user_id or
// sub for the id, admin for the privilege flag.
func CallerFromClaims(claims jwt.MapClaims) (users.Caller, error) {
	raw, _ := claims["user_id"].(string)
	if raw == "" {
		raw, _ = claims["sub"].(string)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return users.Caller{}, ErrJWTMissingOrMalformed
	}

	admin, _ := claims["admin"].(bool)

	return users.Caller{
		ID:    id,
		Admin: admin,
	}, nil
}

func defaultConfig(config ...Config) Config {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = users.CallerContextKey
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	if cfg.KeyFunc == nil {
		if cfg.JWKSetURL != "" {
			jwks, err := keyfunc.Get(cfg.JWKSetURL, keyfunc.Options{
				RefreshInterval:   time.Hour,
				RefreshRateLimit:  time.Minute * 5,
				RefreshTimeout:    time.Second * 10,
				RefreshUnknownKID: true,
			})
			if err != nil {
				panic("Failed to create keyfunc from JWK Set URL: " + err.Error())
			}
			cfg.KeyFunc = jwks.Keyfunc
		} else {
			cfg.KeyFunc = signingKeyFunc(cfg.SigningKey)
		}
	}

	return cfg
}

func signingKeyFunc(key []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected token signing method")
		}
		return key, nil
	}
}

func tokenFromHeader(c *fiber.Ctx, authScheme string) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	l := len(authScheme)

	if len(header) > l+1 && strings.EqualFold(header[:l], authScheme) {
		return strings.TrimSpace(header[l:]), nil
	}

	return "", ErrJWTMissingOrMalformed
}

func defaultErrorHandler(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": fiber.Map{
			"message": "invalid or missing token",
			"details": err.Error(),
		},
	})
}
