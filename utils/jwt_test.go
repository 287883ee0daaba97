package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"future exp", signedToken(t, jwt.MapClaims{"exp": float64(now.Add(time.Hour).Unix())}), false},
		{"past exp", signedToken(t, jwt.MapClaims{"exp": float64(now.Add(-time.Hour).Unix())}), true},
		{"no exp claim", signedToken(t, jwt.MapClaims{"sub": "u1"}), false},
		{"opaque token", "not-a-jwt", false},
		{"empty token", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenExpired(tt.token, now); got != tt.want {
				t.Errorf("TokenExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}
