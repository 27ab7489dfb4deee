package providers

import (
	"github.com/samber/do/v2"

	"github.com/rentwheels/rentwheels-server/internal/auth"
	"github.com/rentwheels/rentwheels-server/internal/config"
	"github.com/rentwheels/rentwheels-server/internal/logger"
)

// SigningKey is the hex-encoded PASETO v4 symmetric key.
type SigningKey string

// ProvideSigningKey resolves the token signing key: an explicitly
// configured secret wins, otherwise one is loaded from (or generated
// at) <data>/auth.key.
func ProvideSigningKey(i do.Injector) (SigningKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Auth.TokenSecret != "" {
		log.Info("Using configured token signing key")
		return SigningKey(cfg.Auth.TokenSecret), nil
	}

	keyHex, err := auth.LoadOrGenerateKey(cfg.Data.Path)
	if err != nil {
		return "", err
	}

	log.Info("Token signing key loaded", "token_ttl", cfg.Auth.TokenTTL)
	return SigningKey(keyHex), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[SigningKey](i)

	return auth.NewTokenService(string(key), cfg.Auth.TokenTTL)
}
