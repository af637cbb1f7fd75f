package config

import "github.com/labstack/gommon/log"

// LogLevel maps LOG_LEVEL onto the echo logger levels.  Unknown values fall
// back to INFO.
func (c Config) LogLevel() log.Lvl {
    switch c.LogLevelName {
    case "debug":
        return log.DEBUG
    case "warn", "warning":
        return log.WARN
    case "error":
        return log.ERROR
    case "off":
        return log.OFF
    }
    return log.INFO
}
