package redis

import (
	"testing"

	"github.com/dcontreras/mueblesrent-backend/pkg/config"
)

func TestOptionsFromConfigRequiresAddress(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatalf("expected error for empty config")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2"})
	if err != nil {
		t.Fatalf("optionsFromConfig: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr: %s", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db: %d", opts.DB)
	}
}

func TestIdempotencyKeyIsNamespaced(t *testing.T) {
	c := &Client{}
	key := c.IdempotencyKey("user|POST|/api/v1/reservations", "abc")
	want := "mr:idempotency:user|POST|/api/v1/reservations:abc"
	if key != want {
		t.Fatalf("key = %s, want %s", key, want)
	}
}
