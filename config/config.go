// Package config exposes build metadata and environment-driven settings
// for the todoapi server.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

// LoadEnv reads an optional .env file into the process environment.
// A missing file is not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("TODO_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("TODO_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("TODO_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("TODO_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

func GetListen() string {
	return os.Getenv("TODO_WEB_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("TODO_WEB_PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return 8080
	}
	return port
}

// GetJWTSecret returns the signing secret for bearer tokens. Empty means
// the caller should generate a per-process random secret.
func GetJWTSecret() string {
	return os.Getenv("TODO_JWT_SECRET")
}

func GetTokenTTLHours() int {
	ttl, err := strconv.Atoi(os.Getenv("TODO_TOKEN_TTL_HOURS"))
	if err != nil || ttl <= 0 {
		return 72
	}
	return ttl
}
