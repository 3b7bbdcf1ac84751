package redis

import "testing"

func TestConfigOptions(t *testing.T) {
	opts, err := Config{Addr: "cache:6379", Password: "pw", DB: 2}.options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache:6379" || opts.Password != "pw" || opts.DB != 2 {
		t.Fatalf("unexpected options: %+v", opts)
	}

	opts, err = Config{URL: "redis://:secret@redis.internal:6380/3", Addr: "ignored:6379"}.options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "redis.internal:6380" || opts.Password != "secret" || opts.DB != 3 {
		t.Fatalf("url not applied: %+v", opts)
	}

	if _, err := (Config{URL: "http://nope"}).options(); err == nil {
		t.Fatal("expected error for non-redis scheme")
	}
}

func TestDenylistKey(t *testing.T) {
	if got := NewTokenDenylist(nil).key("abc"); got != "airhost:revoked:abc" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := (&TokenDenylist{prefix: "test"}).key("abc"); got != "test:revoked:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}
