package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort          string
	DBDSN            string
	JWTSecret        string
	JWTExpiresMin    int
	RedisAddr        string
	RedisPassword    string
	StatsCacheTTLSec int
}

func Load() Config {
	// token lifetime defaults to 3 days
	expires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "4320"))
	statsTTL, _ := strconv.Atoi(get("STATS_CACHE_TTL_SEC", "30"))
	return Config{
		AppPort:          get("APP_PORT", "8080"),
		DBDSN:            must("DB_DSN"),
		JWTSecret:        must("JWT_SECRET"),
		JWTExpiresMin:    expires,
		RedisAddr:        get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    get("REDIS_PASSWORD", ""),
		StatsCacheTTLSec: statsTTL,
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
