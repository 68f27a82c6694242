package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	SolverURL     string
	SolverUser    string
	SolverPass    string
	SolverTimeout time.Duration
	SolverRPS     float64
	Debounce      time.Duration
	AuthUser      string
	AuthPass      string
	TokenKey      string
	AuthDisabled  bool
	StaticDir     string
	TLSCert       string
	TLSKey        string
}

// Load reads .env files (if present) and then the environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("no .env loaded: %v", err)
	}

	c := Config{
		Addr:       env("ADDR", ":3000"),
		SolverURL:  env("SOLVER_URL", "http://localhost:8000"),
		SolverUser: os.Getenv("SOLVER_USER"),
		SolverPass: os.Getenv("SOLVER_PASS"),
		AuthUser:   env("AUTH_USER", "admin"),
		AuthPass:   env("AUTH_PASS", "password"),
		TokenKey:   os.Getenv("TOKEN_KEY"),
		StaticDir:  env("STATIC_DIR", "./static/main"),
		TLSCert:    os.Getenv("TLS_CERT"),
		TLSKey:     os.Getenv("TLS_KEY"),
	}

	ms, err := intEnv("SOLVER_TIMEOUT_MS", 15000)
	if err != nil {
		return c, err
	}
	c.SolverTimeout = time.Duration(ms) * time.Millisecond

	if ms, err = intEnv("DEBOUNCE_MS", 500); err != nil {
		return c, err
	}
	c.Debounce = time.Duration(ms) * time.Millisecond

	if c.SolverRPS, err = floatEnv("SOLVER_RPS", 4); err != nil {
		return c, err
	}
	if c.AuthDisabled, err = boolEnv("AUTH_DISABLED", false); err != nil {
		return c, err
	}

	if !c.AuthDisabled && c.TokenKey == "" {
		return c, fmt.Errorf("TOKEN_KEY environment variable is not set")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return c, fmt.Errorf("TLS_CERT and TLS_KEY must be set together")
	}
	return c, nil
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def, fmt.Errorf("%s: invalid value %q", key, v)
	}
	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
