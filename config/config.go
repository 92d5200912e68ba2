package config

import (
	"os"
	"strconv"
)

// Settings collects every environment-driven knob in one place so main can
// construct collaborators explicitly instead of having packages read the
// environment behind the scenes.
type Settings struct {
	ServerPort string
	GinMode    string

	// SessionSecret signs the submission cookie; StaffJWTSecret signs staff
	// portal bearer tokens (falls back to SessionSecret when unset).
	SessionSecret     string
	StaffJWTSecret    string
	MaxSessionSeconds int
	StaffJWTHours     int

	MaxUploadBytes int64
}

// Load reads settings from the environment with the same defaults the
// deployment manifests assume.
func Load() Settings {
	s := Settings{
		ServerPort:        getenv("SERVER_PORT", "8080"),
		GinMode:           os.Getenv("GIN_MODE"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		StaffJWTSecret:    os.Getenv("STAFF_JWT_SECRET"),
		MaxSessionSeconds: getenvInt("MAX_SESSION_SECONDS", 1800),
		StaffJWTHours:     getenvInt("STAFF_JWT_HOURS", 24),
		MaxUploadBytes:    int64(getenvInt("MAX_UPLOAD_BYTES", 26214400)),
	}
	if s.StaffJWTSecret == "" {
		s.StaffJWTSecret = s.SessionSecret
	}
	return s
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
