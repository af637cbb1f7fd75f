package config

// Redis backs the optional response cache and the /api rate limiter.  It is
// never required: when the server cannot be reached NewRedisClient returns
// nil and both middlewares fall back to pass-through.

import (
    "context"
    "crypto/tls"
    "strconv"
    "strings"
    "time"

    "github.com/redis/go-redis/v9"
)

// RedisConfig holds the connection parameters read from the environment.
type RedisConfig struct {
    Addr     string
    Password string
    DB       int
    TLS      bool
}

// LoadRedisConfig reads REDIS_HOST/REDIS_PORT, or the REDIS_ADDR shorthand,
// plus REDIS_PASSWORD, REDIS_DB and REDIS_TLS ("true" or "1").
func LoadRedisConfig() RedisConfig {
    addr := getenv("REDIS_ADDR", "localhost:6379")
    host, port := getenv("REDIS_HOST", ""), getenv("REDIS_PORT", "")
    if host != "" && port != "" {
        addr = host + ":" + port
    }
    dbNum, err := strconv.Atoi(getenv("REDIS_DB", "0"))
    if err != nil {
        dbNum = 0
    }
    tlsEnv := getenv("REDIS_TLS", "")
    return RedisConfig{
        Addr:     addr,
        Password: getenv("REDIS_PASSWORD", ""),
        DB:       dbNum,
        TLS:      strings.EqualFold(tlsEnv, "true") || tlsEnv == "1",
    }
}

// NewRedisClient dials redis and pings it with a short timeout.  The returned
// client is nil if the ping fails.
func NewRedisClient(ctx context.Context, rc RedisConfig) *redis.Client {
    opts := &redis.Options{
        Addr:     rc.Addr,
        Password: rc.Password,
        DB:       rc.DB,
    }
    if rc.TLS {
        opts.TLSConfig = &tls.Config{InsecureSkipVerify: true}
    }
    client := redis.NewClient(opts)
    ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        _ = client.Close()
        return nil
    }
    return client
}
