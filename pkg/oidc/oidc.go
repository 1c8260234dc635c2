// Package oidc verifies identity-provider bearer credentials against the
// provider's published signing keys. Tokens are checked for signature,
// issuer, expiry and (when configured) audience; nothing in the service ever
// trusts an unverified payload.
package oidc

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified caller identity extracted from a bearer credential.
type Claims struct {
	Subject           string
	PreferredUsername string
	Email             string
}

// Config configures a Verifier.
type Config struct {
	// IssuerURL is the identity provider realm URL, e.g.
	// http://localhost:8180/realms/music-app
	IssuerURL string
	// Audience is checked when non-empty.
	Audience string
	// JWKSURL overrides the default <issuer>/protocol/openid-connect/certs.
	JWKSURL string
	// RefreshInterval bounds how often the key set is re-fetched.
	RefreshInterval time.Duration
	// HTTPClient defaults to a client with a 10s timeout.
	HTTPClient *http.Client
}

// Verifier validates RS256 tokens against a cached JWKS.
type Verifier struct {
	cfg    Config
	client *http.Client

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

// NewVerifier creates a Verifier. Keys are fetched lazily on first use and
// refreshed when an unknown key id is seen or the refresh interval elapsed.
func NewVerifier(cfg Config) *Verifier {
	if cfg.JWKSURL == "" {
		cfg.JWKSURL = cfg.IssuerURL + "/protocol/openid-connect/certs"
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = time.Hour
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Verifier{
		cfg:    cfg,
		client: client,
		keys:   make(map[string]*rsa.PublicKey),
	}
}

type tokenClaims struct {
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email"`
	jwt.RegisteredClaims
}

// Verify validates a raw bearer token and returns the caller's claims.
func (v *Verifier) Verify(ctx context.Context, raw string) (*Claims, error) {
	claims := &tokenClaims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
	}
	if v.cfg.IssuerURL != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.IssuerURL))
	}
	if v.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.cfg.Audience))
	}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token has no key id")
		}
		return v.publicKey(ctx, kid)
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}

	return &Claims{
		Subject:           claims.Subject,
		PreferredUsername: claims.PreferredUsername,
		Email:             claims.Email,
	}, nil
}

// Refresh fetches the key set immediately. Called on startup so the first
// request does not pay the fetch latency.
func (v *Verifier) Refresh(ctx context.Context) error {
	return v.refreshKeys(ctx)
}

func (v *Verifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	stale := time.Since(v.fetchedAt) > v.cfg.RefreshInterval
	v.mu.RUnlock()
	if ok && !stale {
		return key, nil
	}

	if err := v.refreshKeys(ctx); err != nil {
		if ok {
			// Keep serving the cached key if the provider is unreachable.
			return key, nil
		}
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok = v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return key, nil
}

type jwksDocument struct {
	Keys []struct {
		Kid string `json:"kid"`
		Kty string `json:"kty"`
		Use string `json:"use"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func (v *Verifier) refreshKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.cfg.JWKSURL, nil)
	if err != nil {
		return err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("JWKS endpoint returned status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode JWKS: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := rsaKeyFromJWK(k.N, k.E)
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return errors.New("JWKS contained no usable RSA keys")
	}

	v.mu.Lock()
	v.keys = keys
	v.fetchedAt = time.Now()
	v.mu.Unlock()
	return nil
}

func rsaKeyFromJWK(n, e string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, err
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}
