package config

import (
    "strconv"
    "strings"
    "time"
)

// GreetRoute identifies the lookup endpoint in per-route capacities.
const GreetRoute = "POST /api/greet"

// RateLimitConfig drives the redis token bucket in front of /api.  Keys are
// built from the client IP and route only; there are no user identities.
//
// Capacity applies to the list endpoints, which are cheap and cacheable.
// Routes overrides it per "METHOD /path"; by default POST /api/greet, which
// always hits storage, gets a smaller bucket.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    Routes         map[string]int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
    Debug          bool
}

// CapacityFor returns the bucket size for route ("METHOD /path").
func (c RateLimitConfig) CapacityFor(route string) int {
    if n, ok := c.Routes[route]; ok && n > 0 {
        return n
    }
    return c.Capacity
}

// LoadRateLimitConfig reads RATE_LIMIT_* variables.  RATE_LIMIT_GREET_CAPACITY
// sizes the greet bucket; RATE_LIMIT_ROUTES adds overrides as a comma list of
// "METHOD /path=N" pairs.
func LoadRateLimitConfig() RateLimitConfig {
    rl := RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", true),
        Capacity:       envInt("RATE_LIMIT_CAPACITY", 120),
        Routes:         map[string]int{GreetRoute: envInt("RATE_LIMIT_GREET_CAPACITY", 30)},
        RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    getenv("RATE_LIMIT_KEY_STRATEGY", "ip_route"),
        Prefix:         getenv("RATE_LIMIT_PREFIX", "greetings:rl"),
        Debug:          envBool("RATE_LIMIT_DEBUG", false),
    }
    for route, n := range parseRoutes(getenv("RATE_LIMIT_ROUTES", "")) {
        rl.Routes[route] = n
    }
    if b := envInt("RATE_LIMIT_BURST", -1); b > 0 {
        rl.Capacity = b
    }
    if every := envDur("RATE_LIMIT_REFILL_EVERY", 0); every > 0 {
        rl.RefillTokens, rl.RefillInterval = 1, every
    }
    rl.Capacity = max(rl.Capacity, 1)
    rl.RefillTokens = max(rl.RefillTokens, 1)
    if rl.RefillInterval <= 0 {
        rl.RefillInterval = time.Second
    }
    // a bucket must outlive a few refills or it resets to full on every request
    rl.TTL = max(rl.TTL, 5*rl.RefillInterval)
    return rl
}

// parseRoutes reads "POST /api/greet=10,GET /api/languages=200".  Malformed
// or non-positive entries are skipped.
func parseRoutes(s string) map[string]int {
    out := map[string]int{}
    for _, pair := range strings.Split(s, ",") {
        route, n, ok := strings.Cut(pair, "=")
        if !ok {
            continue
        }
        method, path, ok := strings.Cut(strings.TrimSpace(route), " ")
        if !ok {
            continue
        }
        v, err := strconv.Atoi(strings.TrimSpace(n))
        if err != nil || v < 1 {
            continue
        }
        out[strings.ToUpper(method)+" "+strings.TrimSpace(path)] = v
    }
    return out
}

func envBool(k string, d bool) bool {
    switch strings.ToLower(getenv(k, "")) {
    case "1", "true", "yes", "on":
        return true
    case "0", "false", "no", "off":
        return false
    }
    return d
}

func envInt(k string, d int) int {
    n, err := strconv.Atoi(getenv(k, ""))
    if err != nil {
        return d
    }
    return n
}

func envDur(k string, d time.Duration) time.Duration {
    dur, err := time.ParseDuration(getenv(k, ""))
    if err != nil {
        return d
    }
    return dur
}
