package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if cfg.EndpointAddrHTTP != ":8080" {
		t.Errorf("unexpected default address: %q", cfg.EndpointAddrHTTP)
	}
	if cfg.AccessTokenValidityDuration != time.Hour {
		t.Errorf("unexpected access token validity: %v", cfg.AccessTokenValidityDuration)
	}
	if cfg.RefreshTokenValidityDuration != 7*24*time.Hour {
		t.Errorf("unexpected refresh token validity: %v", cfg.RefreshTokenValidityDuration)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when secrets are missing")
	}

	cfg.AccessTokenSecret = "a"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when refresh secret is missing")
	}

	cfg.RefreshTokenSecret = "r"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
