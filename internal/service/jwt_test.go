package service

import "testing"

func TestJWT_RoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	playerID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if playerID != 42 {
		t.Fatalf("expected player 42, got %d", playerID)
	}
}

func TestJWT_RejectsTampered(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseJWT(token + "x"); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
	if _, err := ParseJWT("not-a-token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	InitJWT("secret-one")
	token, err := GenerateJWT(7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	InitJWT("secret-two")
	if _, err := ParseJWT(token); err == nil {
		t.Fatal("expected token signed with old secret to be rejected")
	}
}
