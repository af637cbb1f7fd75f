package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/binary"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/greeting-service/internal/config"
)

// captureWriter tees the response body (up to limit bytes) while forwarding
// it to the client.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    limit  int64
    // truncated is set once the body outgrows limit; such responses are not cached
    truncated bool
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }

func (cw *captureWriter) Write(b []byte) (int, error) {
    switch remain := cw.limit - int64(cw.buf.Len()); {
    case cw.limit <= 0:
        cw.buf.Write(b)
    case remain >= int64(len(b)):
        cw.buf.Write(b)
    default:
        if remain > 0 {
            cw.buf.Write(b[:remain])
        }
        cw.truncated = true
    }
    return cw.ResponseWriter.Write(b)
}

// cacheKeyFrom builds a stable key honoring prefix and strategy.  Strategies
// are "route", "method_route", "method_route_query" and "route_query"
// (default).
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context) string {
    r := c.Request()
    var parts []string
    switch strings.ToLower(cfg.KeyStrategy) {
    case "route":
        parts = []string{"route", c.Path()}
    case "method_route":
        parts = []string{"method", r.Method, "route", c.Path()}
    case "method_route_query":
        parts = []string{"method", r.Method, "route", c.Path(), "q", r.URL.RawQuery}
    default:
        parts = []string{"route", c.Path(), "q", r.URL.RawQuery}
    }
    sum := sha1.Sum([]byte(strings.Join(parts, ":")))
    return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
    hdrJSON, err := json.Marshal(header)
    if err != nil {
        return nil, err
    }
    out := make([]byte, 8, 8+len(hdrJSON)+len(body))
    binary.BigEndian.PutUint32(out[0:4], uint32(status))
    binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
    out = append(out, hdrJSON...)
    return append(out, body...), nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
    if len(bs) < 8 {
        return 0, nil, nil, false
    }
    status = int(binary.BigEndian.Uint32(bs[0:4]))
    hlen := int(binary.BigEndian.Uint32(bs[4:8]))
    if hlen < 0 || 8+hlen > len(bs) {
        return 0, nil, nil, false
    }
    header = make(http.Header)
    if hlen > 0 {
        if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
            return 0, nil, nil, false
        }
    }
    return status, header, bs[8+hlen:], true
}

// NewRedisCache replays cached 200 responses, headers included, for the
// configured methods.  Misses are captured and stored with cfg.TTL.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passThrough
    }
    ttl := cfg.TTL
    if ttl <= 0 { ttl = 5 * time.Minute }
    maxBody := int64(cfg.MaxBodyBytes)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }
            key := cacheKeyFrom(cfg, c)

            if bs, err := rdb.Get(c.Request().Context(), key).Bytes(); err == nil {
                if status, hdr, body, ok := decodePayload(bs); ok {
                    replay(c, status, hdr, body)
                    return nil
                }
            }

            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if cw.status != http.StatusOK || cw.truncated {
                return nil
            }
            hdr := c.Response().Header().Clone()
            for _, k := range perRequestHeaders {
                hdr.Del(k)
            }
            if payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes()); err == nil {
                if err := rdb.SetEx(context.Background(), key, payload, ttl).Err(); err != nil {
                    c.Logger().Warnf("[cache] store key=%s: %v", key, err)
                }
            }
            return nil
        }
    }
}

// perRequestHeaders are set by this middleware or the rate limiter for the
// current request only and must never be stored or replayed.
var perRequestHeaders = []string{
    "X-Cache",
    "X-RateLimit-Limit",
    "X-RateLimit-Remaining",
    "X-RateLimit-Key",
    "Retry-After",
}

func isPerRequest(k string) bool {
    for _, h := range perRequestHeaders {
        if strings.EqualFold(k, h) {
            return true
        }
    }
    return false
}

func replay(c echo.Context, status int, hdr http.Header, body []byte) {
    for k, vals := range hdr {
        // Content-Length is recomputed by the server
        if strings.EqualFold(k, "Content-Length") || isPerRequest(k) { continue }
        c.Response().Header().Del(k)
        for _, v := range vals {
            c.Response().Header().Add(k, v)
        }
    }
    c.Response().Header().Set("X-Cache", "HIT")
    c.Response().WriteHeader(status)
    if len(body) > 0 {
        _, _ = c.Response().Write(body)
    }
}
