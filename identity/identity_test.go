// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"strings"
	"testing"
)

func TestHashIPDeterministic(t *testing.T) {
	h1 := HashIP("203.0.113.7", "salt")
	h2 := HashIP("203.0.113.7", "salt")
	if h1 != h2 {
		t.Errorf("same input should hash identically: %q vs %q", h1, h2)
	}
	if len(h1) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(h1))
	}
}

func TestHashIPSaltChangesHash(t *testing.T) {
	if HashIP("203.0.113.7", "salt-a") == HashIP("203.0.113.7", "salt-b") {
		t.Error("different salts should produce different hashes")
	}
}

func TestHashIPEmptyIP(t *testing.T) {
	// Missing IP is a valid input: every unknown-IP client shares this hash.
	h1 := HashIP("", "salt")
	h2 := HashIP("", "salt")
	if h1 != h2 {
		t.Error("empty IP must hash deterministically")
	}
	if h1 == HashIP("203.0.113.7", "salt") {
		t.Error("empty IP hash should differ from a real IP hash")
	}
}

func TestResolve(t *testing.T) {
	v := Resolve("203.0.113.7", "tok-123", "salt")
	if v.ClientToken != "tok-123" {
		t.Errorf("client token passed through, got %q", v.ClientToken)
	}
	if v.IPHash != HashIP("203.0.113.7", "salt") {
		t.Error("ip hash should match HashIP")
	}
}

func TestNewUID(t *testing.T) {
	uid := NewUID("PR")
	if !strings.HasPrefix(uid, "PR-") {
		t.Errorf("expected PR- prefix, got %q", uid)
	}
	for _, c := range uid[3:] {
		if c < '0' || c > '9' {
			t.Errorf("suffix should be numeric, got %q", uid)
			break
		}
	}
}

func TestGenerateIDLength(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if len(id) != 32 {
		t.Errorf("expected 32 hex chars for 16 bytes, got %d", len(id))
	}
}

func TestNewClientTokenUnique(t *testing.T) {
	a, err := NewClientToken()
	if err != nil {
		t.Fatalf("NewClientToken failed: %v", err)
	}
	b, err := NewClientToken()
	if err != nil {
		t.Fatalf("NewClientToken failed: %v", err)
	}
	if a == b {
		t.Error("two tokens should not collide")
	}
}

func TestCheckAdminKey(t *testing.T) {
	if err := CheckAdminKey("secret", "secret"); err != nil {
		t.Errorf("matching key rejected: %v", err)
	}
	if err := CheckAdminKey("wrong", "secret"); err == nil {
		t.Error("wrong key accepted")
	}
	// Empty configured key must never accept anything, including empty input.
	if err := CheckAdminKey("", ""); err == nil {
		t.Error("empty configured key accepted empty input")
	}
}
