package utils

import "testing"

func TestPasswordHashing(t *testing.T) {
	h, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h == "hunter22" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword(h, "hunter22") {
		t.Error("correct password rejected")
	}
	if CheckPassword(h, "hunter23") {
		t.Error("wrong password accepted")
	}
}
