package utils

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	tok, err := SignJWT("s3cret", "u-1", "alice@x.com", "USER", time.Hour)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	c, err := ParseJWT("s3cret", tok)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if c.UserID != "u-1" || c.Subject != "alice@x.com" || c.AuthorityLevel != "USER" {
		t.Errorf("claims: %+v", c)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	tok, err := SignJWT("s3cret", "u-1", "alice@x.com", "USER", time.Hour)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	if _, err := ParseJWT("other", tok); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestJWTExpired(t *testing.T) {
	tok, err := SignJWT("s3cret", "u-1", "alice@x.com", "USER", -time.Minute)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	if _, err := ParseJWT("s3cret", tok); err == nil {
		t.Fatal("expected parse failure for expired token")
	}
}
