package domain

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, name := range []string{"Pending", "Shipped", "Delivered"} {
		s, err := ParseStatus(name)
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", name, err)
		}
		if string(s) != name {
			t.Errorf("ParseStatus(%q) = %q", name, s)
		}
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "pending", "SHIPPED", "Cancelled", "Shipped "} {
		if _, err := ParseStatus(name); !errors.Is(err, ErrValidation) {
			t.Errorf("ParseStatus(%q) err = %v, want ErrValidation", name, err)
		}
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("Manager")
	if err != nil {
		t.Fatalf("ParseRole: %v", err)
	}
	if r != RoleManager {
		t.Errorf("got %q, want Manager", r)
	}
	if _, err := ParseRole("manager"); !errors.Is(err, ErrValidation) {
		t.Errorf("lowercase role accepted, want ErrValidation")
	}
}
