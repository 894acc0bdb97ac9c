package auth

import "testing"

func TestEmailGate(t *testing.T) {
	gate := NewEmailGate("admin@taynguyennuts.vn")

	if !gate.IsAuthorized("admin@taynguyennuts.vn") {
		t.Error("Expected configured admin to be authorized")
	}
	if gate.IsAuthorized("user@taynguyennuts.vn") {
		t.Error("Expected other identity to be denied")
	}
	if gate.IsAuthorized("") {
		t.Error("Expected empty identity to be denied")
	}
}

func TestEmailGate_UnconfiguredDeniesEveryone(t *testing.T) {
	gate := NewEmailGate("")

	if gate.IsAuthorized("") {
		t.Error("Expected unconfigured gate to deny even empty identity")
	}
	if gate.IsAuthorized("admin@taynguyennuts.vn") {
		t.Error("Expected unconfigured gate to deny")
	}
}
