package pac

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/samandr77/microservices/fiscal/internal/entity"
)

// TokenCache keeps one access token per client id. A token is refreshed
// refreshBefore its expiry; concurrent misses share one fetch.
type TokenCache struct {
	mu            sync.RWMutex
	tokens        map[string]entity.AccessToken
	group         singleflight.Group
	refreshBefore time.Duration
	now           func() time.Time
}

func NewTokenCache(refreshBefore time.Duration) *TokenCache {
	return &TokenCache{
		tokens:        make(map[string]entity.AccessToken),
		refreshBefore: refreshBefore,
		now:           time.Now,
	}
}

// Get returns a fresh token for key, calling fetch at most once for concurrent callers.
func (c *TokenCache) Get(
	ctx context.Context,
	key string,
	fetch func(ctx context.Context) (entity.AccessToken, error),
) (string, error) {
	if tok, ok := c.fresh(key); ok {
		return tok.Value, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if tok, ok := c.fresh(key); ok {
			return tok, nil
		}

		// The fetch is shared, so one caller's cancellation must not fail the others.
		tok, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.tokens[key] = tok
		c.mu.Unlock()

		return tok, nil
	})
	if err != nil {
		return "", err
	}

	tok, ok := v.(entity.AccessToken)
	if !ok {
		return "", fmt.Errorf("unexpected token type %T", v)
	}

	return tok.Value, nil
}

// Invalidate drops the cached token for key if it is still value.
func (c *TokenCache) Invalidate(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tok, ok := c.tokens[key]; ok && tok.Value == value {
		delete(c.tokens, key)
	}
}

func (c *TokenCache) fresh(key string) (entity.AccessToken, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tok, ok := c.tokens[key]
	if !ok {
		return entity.AccessToken{}, false
	}

	return tok, c.now().Add(c.refreshBefore).Before(tok.ExpiresAt)
}

// tokenExpiry prefers expires_in, then the exp claim of a JWT token, then defaultTTL.
func tokenExpiry(now time.Time, token string, expiresIn int, defaultTTL time.Duration) time.Time {
	if expiresIn > 0 {
		return now.Add(time.Duration(expiresIn) * time.Second)
	}

	claims := jwt.RegisteredClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}

	return now.Add(defaultTTL)
}
