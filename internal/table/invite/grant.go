// Package invite mints and validates signed join grants: short-lived EdDSA
// JWTs that carry a table's join code so an admin can share an invite link
// without exposing the raw code in long-lived URLs.
package invite

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/hextable/internal/platform/errors"
	"github.com/louisbranch/hextable/internal/platform/id"
)

// Environment variable names for join grant configuration.
const (
	EnvIssuer     = "HEXTABLE_JOIN_GRANT_ISSUER"
	EnvAudience   = "HEXTABLE_JOIN_GRANT_AUDIENCE"
	EnvPublicKey  = "HEXTABLE_JOIN_GRANT_PUBLIC_KEY"
	EnvPrivateKey = "HEXTABLE_JOIN_GRANT_PRIVATE_KEY"
	EnvTTL        = "HEXTABLE_JOIN_GRANT_TTL"
)

type grantEnv struct {
	Issuer     string        `env:"HEXTABLE_JOIN_GRANT_ISSUER"`
	Audience   string        `env:"HEXTABLE_JOIN_GRANT_AUDIENCE"`
	PublicKey  string        `env:"HEXTABLE_JOIN_GRANT_PUBLIC_KEY"`
	PrivateKey string        `env:"HEXTABLE_JOIN_GRANT_PRIVATE_KEY"`
	TTL        time.Duration `env:"HEXTABLE_JOIN_GRANT_TTL"         envDefault:"24h"`
}

// Config defines how join grants are signed and verified. Private may be
// omitted on verify-only deployments; minting then fails closed.
type Config struct {
	Issuer   string
	Audience string
	Public   ed25519.PublicKey
	Private  ed25519.PrivateKey
	TTL      time.Duration
	Now      func() time.Time
}

// Claims captures a validated join grant.
type Claims struct {
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	NotBefore time.Time
	IssuedAt  time.Time
	JWTID     string
	TableID   string
	JoinCode  string
}

// grantClaims is the wire shape signed into and parsed out of a grant.
type grantClaims struct {
	jwt.RegisteredClaims
	TableID  string `json:"table_id"`
	JoinCode string `json:"join_code"`
}

// LoadConfigFromEnv reads join grant configuration. The public key is
// required; the private key is only needed where grants are minted.
func LoadConfigFromEnv(now func() time.Time) (Config, error) {
	var raw grantEnv
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse join grant env: %w", err)
	}

	required := []struct {
		name  string
		value string
	}{
		{EnvIssuer, strings.TrimSpace(raw.Issuer)},
		{EnvAudience, strings.TrimSpace(raw.Audience)},
		{EnvPublicKey, strings.TrimSpace(raw.PublicKey)},
	}
	for _, field := range required {
		if field.value == "" {
			return Config{}, fmt.Errorf("%s is required", field.name)
		}
	}

	publicBytes, err := parseKey(required[2].value, ed25519.PublicKeySize, "join grant public key")
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Issuer:   required[0].value,
		Audience: required[1].value,
		Public:   ed25519.PublicKey(publicBytes),
		TTL:      raw.TTL,
	}
	if privateKey := strings.TrimSpace(raw.PrivateKey); privateKey != "" {
		privateBytes, err := parseKey(privateKey, ed25519.PrivateKeySize, "join grant private key")
		if err != nil {
			return Config{}, err
		}
		cfg.Private = ed25519.PrivateKey(privateBytes)
	}
	if cfg.TTL <= 0 {
		return Config{}, fmt.Errorf("join grant ttl must be positive")
	}
	if now == nil {
		now = time.Now
	}
	cfg.Now = now
	return cfg, nil
}

// GranterFromEnv builds a Granter from the environment. Join grants are
// opt-in: when none of the issuer, audience, and public key variables are
// set it returns (nil, nil) and callers should treat grants as disabled.
func GranterFromEnv(now func() time.Time) (*Granter, error) {
	if os.Getenv(EnvIssuer) == "" && os.Getenv(EnvAudience) == "" && os.Getenv(EnvPublicKey) == "" {
		return nil, nil
	}
	cfg, err := LoadConfigFromEnv(now)
	if err != nil {
		return nil, err
	}
	return NewGranter(cfg)
}

// Granter signs and verifies join grants for one issuer/audience pair.
type Granter struct {
	cfg         Config
	idGenerator func() (string, error)
}

// NewGranter validates the config and returns a Granter with default
// dependencies.
func NewGranter(cfg Config) (*Granter, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("join grant issuer is required")
	}
	if cfg.Audience == "" {
		return nil, errors.New("join grant audience is required")
	}
	if len(cfg.Public) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("join grant public key must be %d bytes", ed25519.PublicKeySize)
	}
	if cfg.Private != nil && len(cfg.Private) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("join grant private key must be %d bytes", ed25519.PrivateKeySize)
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("join grant ttl must be positive")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Granter{cfg: cfg, idGenerator: id.NewID}, nil
}

// Mint signs a join grant for the table and its current join code, returning
// the grant and its expiry.
func (g *Granter) Mint(tableID, joinCode string) (string, time.Time, error) {
	if len(g.cfg.Private) != ed25519.PrivateKeySize {
		return "", time.Time{}, errors.New("join grant signer is not configured")
	}
	tableID = strings.TrimSpace(tableID)
	joinCode = strings.TrimSpace(joinCode)
	if tableID == "" {
		return "", time.Time{}, errors.New("table id is required")
	}
	if joinCode == "" {
		return "", time.Time{}, errors.New("join code is required")
	}

	jti, err := g.idGenerator()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate join grant id: %w", err)
	}
	now := g.cfg.Now().UTC()
	expires := now.Add(g.cfg.TTL)
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, grantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.cfg.Issuer,
			Audience:  jwt.ClaimStrings{g.cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
		TableID:  tableID,
		JoinCode: joinCode,
	})
	signed, err := token.SignedString(g.cfg.Private)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign join grant: %w", err)
	}
	return signed, expires, nil
}

// Validate verifies a join grant signature and claims. Registered claim
// checks run manually against the configured clock so expiry surfaces as its
// own error code.
func (g *Granter) Validate(grant string) (Claims, error) {
	grant = strings.TrimSpace(grant)
	if grant == "" {
		return Claims{}, invalidGrant("join grant is required")
	}

	var parsed grantClaims
	_, err := jwt.ParseWithClaims(grant, &parsed, func(token *jwt.Token) (any, error) {
		return g.cfg.Public, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}
	if err := g.checkClaims(parsed); err != nil {
		return Claims{}, err
	}

	return Claims{
		Issuer:    parsed.Issuer,
		Audience:  []string(parsed.Audience),
		ExpiresAt: parsed.ExpiresAt.Time.UTC(),
		NotBefore: optionalUTC(parsed.NotBefore),
		IssuedAt:  optionalUTC(parsed.IssuedAt),
		JWTID:     parsed.ID,
		TableID:   parsed.TableID,
		JoinCode:  parsed.JoinCode,
	}, nil
}

// checkClaims enforces addressing, lifetime, and payload requirements on a
// signature-verified grant.
func (g *Granter) checkClaims(parsed grantClaims) error {
	if parsed.Issuer == "" || parsed.Issuer != g.cfg.Issuer {
		return mismatch("issuer", "join grant issuer mismatch")
	}
	if !hasAudience(parsed.Audience, g.cfg.Audience) {
		return mismatch("audience", "join grant audience mismatch")
	}
	if parsed.ID == "" {
		return invalidGrant("join grant jti is required")
	}
	if parsed.ExpiresAt == nil {
		return invalidGrant("join grant exp is required")
	}

	now := g.cfg.Now().UTC()
	if !parsed.ExpiresAt.Time.UTC().After(now) {
		return apperrors.New(apperrors.CodeInviteJoinGrantExpired, "join grant is expired")
	}
	if parsed.NotBefore != nil && now.Before(parsed.NotBefore.Time.UTC()) {
		return invalidGrant("join grant not active yet")
	}

	if strings.TrimSpace(parsed.TableID) == "" {
		return invalidGrant("join grant table id is required")
	}
	if strings.TrimSpace(parsed.JoinCode) == "" {
		return invalidGrant("join grant join code is required")
	}
	return nil
}

func invalidGrant(message string) error {
	return apperrors.New(apperrors.CodeInviteJoinGrantInvalid, message)
}

func mismatch(field, message string) error {
	return apperrors.WithMetadata(apperrors.CodeInviteJoinGrantMismatch, message, map[string]string{"Field": field})
}

// mapJWTError folds jwt parse failures into grant error codes.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrEd25519Verification):
		return invalidGrant("join grant signature is invalid")
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return invalidGrant("join grant alg is invalid")
	default:
		return invalidGrant("join grant is invalid")
	}
}

func hasAudience(aud jwt.ClaimStrings, want string) bool {
	for _, got := range aud {
		if got == want {
			return true
		}
	}
	return false
}

func optionalUTC(ts *jwt.NumericDate) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.Time.UTC()
}

// parseKey decodes base64 key material and enforces the expected length.
// Both raw and padded standard encodings are accepted, since keys get pasted
// from different generators.
func parseKey(value string, wantLen int, label string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("decode %s: empty value", label)
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err != nil {
		decoded, err = base64.StdEncoding.DecodeString(value)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", label, err)
	}
	if len(decoded) != wantLen {
		return nil, fmt.Errorf("%s must be %d bytes", label, wantLen)
	}
	return decoded, nil
}
