package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked token ids until their natural expiry. A stateless
// token cannot be recalled, so logout writes its JTI here and the auth
// middleware refuses anything it finds.
type Denylist struct {
	redisdb *redis.Client
}

type DenylistConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewDenylist(cfg DenylistConfig) *Denylist {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &Denylist{redisdb: redisdb}
}

func denyKey(jti string) string {
	return "revoked:" + jti
}

// Revoke marks a token id as dead for as long as the token would otherwise
// stay valid. Expired tokens need no entry, the signature check already
// rejects them.
func (d *Denylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)

	if ttl <= 0 {
		return nil
	}

	return d.redisdb.Set(ctx, denyKey(jti), 1, ttl).Err()
}

// IsRevoked fails open: if redis is unreachable the token is treated as live.
// Availability wins over strictness here, revocation is best effort anyway.
func (d *Denylist) IsRevoked(ctx context.Context, jti string) bool {
	n, err := d.redisdb.Exists(ctx, denyKey(jti)).Result()

	if err != nil {
		return false
	}

	return n > 0
}

func (d *Denylist) Ping(ctx context.Context) error {
	return d.redisdb.Ping(ctx).Err()
}

func (d *Denylist) Close() error {
	return d.redisdb.Close()
}
