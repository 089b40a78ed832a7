package main

import (
	"testing"

	"github.com/gofiber/fiber/v2/middleware/cors"
)

func TestCorsConfig_WildcardOriginDisablesCredentials(t *testing.T) {
	cfg := corsConfig("*")
	if cfg.AllowCredentials {
		t.Fatal("credentials must be disabled when the origin list is a wildcard")
	}

	// fiber panics at construction time on a credentialed wildcard setup;
	// the default configuration must construct cleanly.
	cors.New(cfg)
}

func TestCorsConfig_ConcreteOriginAllowsCredentials(t *testing.T) {
	cfg := corsConfig("http://localhost:3000")
	if !cfg.AllowCredentials {
		t.Fatal("credentials should be allowed for concrete origins")
	}
	if cfg.AllowOrigins != "http://localhost:3000" {
		t.Fatalf("unexpected origins: %s", cfg.AllowOrigins)
	}

	cors.New(cfg)
}
