// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hurakan/feelgive-sub000/internal/config"
	"github.com/hurakan/feelgive-sub000/internal/metrics"
)

// Maintenance authorization errors.
var (
	// ErrNotConfigured means no maintenance credential is set; the
	// endpoints guarded by this package are disabled entirely.
	ErrNotConfigured = errors.New("maintenance auth not configured")

	// ErrUnauthorized means a credential was presented but did not
	// verify against any configured scheme.
	ErrUnauthorized = errors.New("maintenance auth failed")
)

// maintenanceIssuer identifies tokens minted by this service.
const maintenanceIssuer = "feelgive"

// MaintenanceClaims is the payload of a short-lived maintenance JWT.
type MaintenanceClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Maintenance verifies operator credentials for destructive endpoints
// (cache clear). Two schemes are accepted, either or both may be
// configured:
//
//   - a static token verified against a bcrypt hash
//   - a short-lived HS256 JWT with scope "maintenance"
//
// When neither is configured, Authorize always returns
// ErrNotConfigured and callers should hide the endpoint.
type Maintenance struct {
	tokenHash []byte
	jwtSecret []byte
	logger    zerolog.Logger
}

// NewMaintenance builds a Maintenance verifier from the security
// config section.
func NewMaintenance(cfg *config.SecurityConfig, logger zerolog.Logger) *Maintenance {
	m := &Maintenance{
		logger: logger.With().Str("component", "maintenance_auth").Logger(),
	}
	if cfg.MaintenanceTokenHash != "" {
		m.tokenHash = []byte(cfg.MaintenanceTokenHash)
	}
	if cfg.MaintenanceJWTSecret != "" {
		m.jwtSecret = []byte(cfg.MaintenanceJWTSecret)
	}
	return m
}

// Enabled reports whether at least one credential scheme is configured.
func (m *Maintenance) Enabled() bool {
	return len(m.tokenHash) > 0 || len(m.jwtSecret) > 0
}

// Authorize checks the Authorization header of a maintenance request.
// It returns nil when the bearer credential verifies under any
// configured scheme.
func (m *Maintenance) Authorize(r *http.Request) error {
	if !m.Enabled() {
		return ErrNotConfigured
	}

	credential, err := bearerToken(r)
	if err != nil {
		metrics.RecordMaintenanceAuth("failure")
		return err
	}

	if len(m.tokenHash) > 0 {
		if err := bcrypt.CompareHashAndPassword(m.tokenHash, []byte(credential)); err == nil {
			metrics.RecordMaintenanceAuth("success")
			return nil
		}
	}

	if len(m.jwtSecret) > 0 {
		if err := m.validateJWT(credential); err == nil {
			metrics.RecordMaintenanceAuth("success")
			return nil
		} else {
			m.logger.Debug().Err(err).Msg("Maintenance JWT rejected")
		}
	}

	metrics.RecordMaintenanceAuth("failure")
	m.logger.Warn().
		Str("remote_addr", r.RemoteAddr).
		Msg("Maintenance authorization failed")
	return ErrUnauthorized
}

// MintToken issues a maintenance JWT valid for the given duration.
// Intended for operator tooling; requires the JWT secret to be set.
func (m *Maintenance) MintToken(validity time.Duration) (string, error) {
	if len(m.jwtSecret) == 0 {
		return "", ErrNotConfigured
	}

	now := time.Now()
	claims := MaintenanceClaims{
		Scope: "maintenance",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    maintenanceIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign maintenance token: %w", err)
	}
	return signed, nil
}

// validateJWT parses and verifies a maintenance JWT, enforcing the
// HMAC signing method and the maintenance scope.
func (m *Maintenance) validateJWT(tokenString string) error {
	claims := &MaintenanceClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.jwtSecret, nil
	})
	if err != nil {
		return fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	if claims.Scope != "maintenance" {
		return fmt.Errorf("wrong scope: %q", claims.Scope)
	}
	return nil
}

// bearerToken extracts the credential from an Authorization: Bearer
// header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("%w: missing Authorization header", ErrUnauthorized)
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", fmt.Errorf("%w: Authorization header is not a bearer credential", ErrUnauthorized)
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", fmt.Errorf("%w: empty bearer credential", ErrUnauthorized)
	}
	return token, nil
}

// HashToken produces a bcrypt hash suitable for the
// maintenance_token_hash config field. Used by operator tooling.
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), 12)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}
	return string(hash), nil
}
