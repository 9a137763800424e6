// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/hurakan/feelgive-sub000/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newMaintenance(t *testing.T, cfg config.SecurityConfig) *Maintenance {
	t.Helper()
	return NewMaintenance(&cfg, zerolog.Nop())
}

func requestWithBearer(token string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/cache/clear", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestMaintenanceDisabledWhenUnconfigured(t *testing.T) {
	m := newMaintenance(t, config.SecurityConfig{})

	if m.Enabled() {
		t.Error("Enabled() = true with no credentials configured")
	}
	if err := m.Authorize(requestWithBearer("anything")); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Authorize() = %v, want ErrNotConfigured", err)
	}
}

func TestMaintenanceStaticToken(t *testing.T) {
	const token = "ops-secret-token"
	hash, err := HashToken(token)
	if err != nil {
		t.Fatalf("HashToken: %v", err)
	}

	m := newMaintenance(t, config.SecurityConfig{MaintenanceTokenHash: hash})
	if !m.Enabled() {
		t.Fatal("Enabled() = false with token hash configured")
	}

	if err := m.Authorize(requestWithBearer(token)); err != nil {
		t.Errorf("Authorize() with correct token = %v, want nil", err)
	}
	if err := m.Authorize(requestWithBearer("wrong-token")); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Authorize() with wrong token = %v, want ErrUnauthorized", err)
	}
}

func TestMaintenanceJWT(t *testing.T) {
	m := newMaintenance(t, config.SecurityConfig{MaintenanceJWTSecret: testSecret})

	token, err := m.MintToken(5 * time.Minute)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}
	if err := m.Authorize(requestWithBearer(token)); err != nil {
		t.Errorf("Authorize() with minted JWT = %v, want nil", err)
	}
}

func TestMaintenanceJWTExpired(t *testing.T) {
	m := newMaintenance(t, config.SecurityConfig{MaintenanceJWTSecret: testSecret})

	token, err := m.MintToken(-1 * time.Minute)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}
	if err := m.Authorize(requestWithBearer(token)); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Authorize() with expired JWT = %v, want ErrUnauthorized", err)
	}
}

func TestMaintenanceJWTWrongSecret(t *testing.T) {
	other := newMaintenance(t, config.SecurityConfig{
		MaintenanceJWTSecret: strings.Repeat("x", 32),
	})
	token, err := other.MintToken(5 * time.Minute)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}

	m := newMaintenance(t, config.SecurityConfig{MaintenanceJWTSecret: testSecret})
	if err := m.Authorize(requestWithBearer(token)); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Authorize() with foreign JWT = %v, want ErrUnauthorized", err)
	}
}

func TestMaintenanceJWTWrongScope(t *testing.T) {
	claims := MaintenanceClaims{
		Scope: "read-only",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    maintenanceIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	m := newMaintenance(t, config.SecurityConfig{MaintenanceJWTSecret: testSecret})
	if err := m.Authorize(requestWithBearer(signed)); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Authorize() with wrong scope = %v, want ErrUnauthorized", err)
	}
}

func TestMaintenanceRejectsAlgNone(t *testing.T) {
	claims := MaintenanceClaims{
		Scope: "maintenance",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	m := newMaintenance(t, config.SecurityConfig{MaintenanceJWTSecret: testSecret})
	if err := m.Authorize(requestWithBearer(unsigned)); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Authorize() with alg=none token = %v, want ErrUnauthorized", err)
	}
}

func TestMaintenanceEitherSchemeSucceeds(t *testing.T) {
	const token = "static-ops-token"
	hash, err := HashToken(token)
	if err != nil {
		t.Fatalf("HashToken: %v", err)
	}

	m := newMaintenance(t, config.SecurityConfig{
		MaintenanceTokenHash: hash,
		MaintenanceJWTSecret: testSecret,
	})

	if err := m.Authorize(requestWithBearer(token)); err != nil {
		t.Errorf("static token with both schemes configured = %v, want nil", err)
	}

	minted, err := m.MintToken(time.Minute)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}
	if err := m.Authorize(requestWithBearer(minted)); err != nil {
		t.Errorf("JWT with both schemes configured = %v, want nil", err)
	}
}

func TestMaintenanceMalformedHeader(t *testing.T) {
	hash, err := HashToken("tok")
	if err != nil {
		t.Fatalf("HashToken: %v", err)
	}
	m := newMaintenance(t, config.SecurityConfig{MaintenanceTokenHash: hash})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"empty credential", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/v1/cache/clear", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if err := m.Authorize(r); !errors.Is(err, ErrUnauthorized) {
				t.Errorf("Authorize() = %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestMintTokenRequiresSecret(t *testing.T) {
	m := newMaintenance(t, config.SecurityConfig{MaintenanceTokenHash: "$2a$12$abc"})
	if _, err := m.MintToken(time.Minute); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("MintToken without secret = %v, want ErrNotConfigured", err)
	}
}
