package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	h := HashPassword("user123")
	if h == "" || h == "user123" {
		t.Fatalf("hash looks wrong: %q", h)
	}
	if !CheckPassword("user123", h) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong", h) {
		t.Error("wrong password accepted")
	}
}
