package config

import (
	"github.com/MonkyMars/gecho"
)

// Process-wide logger for code that runs before the router wires
// per-component loggers (env loading, database bootstrap).
var logger gecho.Logger

func InitializeLogger() *gecho.Logger {
	logger = *gecho.NewDefaultLogger()
	return &logger
}

func GetLogger() *gecho.Logger {
	return &logger
}
