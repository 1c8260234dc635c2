package oidc

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testIssuer = "http://localhost:8180/realms/music-app"

// jwksFixture serves the public half of key under kid "test-key".
func jwksFixture(t *testing.T, pub *rsa.PublicKey) *httptest.Server {
	t.Helper()
	doc := map[string]interface{}{
		"keys": []map[string]string{
			{
				"kid": "test-key",
				"kty": "RSA",
				"use": "sig",
				"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
			},
		},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(server.Close)
	return server
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func baseClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"iss":                testIssuer,
		"sub":                "user-123",
		"preferred_username": "alice",
		"email":              "alice@example.com",
		"exp":                time.Now().Add(time.Hour).Unix(),
		"iat":                time.Now().Add(-time.Minute).Unix(),
	}
}

func TestVerifier_Verify(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	jwks := jwksFixture(t, &key.PublicKey)

	verifier := NewVerifier(Config{IssuerURL: testIssuer, JWKSURL: jwks.URL})

	t.Run("accepts a valid token", func(t *testing.T) {
		raw := signToken(t, key, "test-key", baseClaims())
		claims, err := verifier.Verify(context.Background(), raw)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if claims.Subject != "user-123" || claims.PreferredUsername != "alice" || claims.Email != "alice@example.com" {
			t.Errorf("unexpected claims %+v", claims)
		}
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		c := baseClaims()
		c["exp"] = time.Now().Add(-time.Hour).Unix()
		if _, err := verifier.Verify(context.Background(), signToken(t, key, "test-key", c)); err == nil {
			t.Error("expected an error for an expired token")
		}
	})

	t.Run("rejects a token without expiry", func(t *testing.T) {
		c := baseClaims()
		delete(c, "exp")
		if _, err := verifier.Verify(context.Background(), signToken(t, key, "test-key", c)); err == nil {
			t.Error("expected an error for a token without exp")
		}
	})

	t.Run("rejects a wrong issuer", func(t *testing.T) {
		c := baseClaims()
		c["iss"] = "http://evil.example.com/realms/music-app"
		if _, err := verifier.Verify(context.Background(), signToken(t, key, "test-key", c)); err == nil {
			t.Error("expected an error for a wrong issuer")
		}
	})

	t.Run("rejects a missing subject", func(t *testing.T) {
		c := baseClaims()
		delete(c, "sub")
		if _, err := verifier.Verify(context.Background(), signToken(t, key, "test-key", c)); err == nil {
			t.Error("expected an error for a token without sub")
		}
	})

	t.Run("rejects an unsigned algorithm downgrade", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, baseClaims())
		token.Header["kid"] = "test-key"
		raw, err := token.SignedString([]byte("shared-secret"))
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		if _, err := verifier.Verify(context.Background(), raw); err == nil {
			t.Error("expected an error for an HS256 token")
		}
	})

	t.Run("rejects an unknown key id", func(t *testing.T) {
		if _, err := verifier.Verify(context.Background(), signToken(t, key, "other-key", baseClaims())); err == nil {
			t.Error("expected an error for an unknown kid")
		}
	})

	t.Run("rejects a token signed with a different key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatalf("failed to generate key: %v", err)
		}
		if _, err := verifier.Verify(context.Background(), signToken(t, other, "test-key", baseClaims())); err == nil {
			t.Error("expected an error for a forged signature")
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := verifier.Verify(context.Background(), "not.a.token"); err == nil {
			t.Error("expected an error for a malformed token")
		}
	})
}

func TestVerifier_Audience(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	jwks := jwksFixture(t, &key.PublicKey)

	verifier := NewVerifier(Config{IssuerURL: testIssuer, JWKSURL: jwks.URL, Audience: "music-app"})

	c := baseClaims()
	c["aud"] = "music-app"
	if _, err := verifier.Verify(context.Background(), signToken(t, key, "test-key", c)); err != nil {
		t.Errorf("Verify() with matching audience error = %v", err)
	}

	c["aud"] = "another-app"
	if _, err := verifier.Verify(context.Background(), signToken(t, key, "test-key", c)); err == nil {
		t.Error("expected an error for a wrong audience")
	}
}

func TestVerifier_KeyCaching(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	var fetches int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"keys": []map[string]string{
				{
					"kid": "test-key",
					"kty": "RSA",
					"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
					"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
				},
			},
		})
	}))
	defer server.Close()

	verifier := NewVerifier(Config{IssuerURL: testIssuer, JWKSURL: server.URL, RefreshInterval: time.Hour})

	for i := 0; i < 3; i++ {
		if _, err := verifier.Verify(context.Background(), signToken(t, key, "test-key", baseClaims())); err != nil {
			t.Fatalf("Verify() call %d error = %v", i, err)
		}
	}
	if fetches != 1 {
		t.Errorf("expected one JWKS fetch for repeated verifications, got %d", fetches)
	}
}

func TestNewVerifier_Defaults(t *testing.T) {
	v := NewVerifier(Config{IssuerURL: testIssuer})
	if !strings.HasSuffix(v.cfg.JWKSURL, "/protocol/openid-connect/certs") {
		t.Errorf("unexpected default JWKS URL %q", v.cfg.JWKSURL)
	}
	if v.cfg.RefreshInterval != time.Hour {
		t.Errorf("unexpected default refresh interval %v", v.cfg.RefreshInterval)
	}
}
