package service

import "testing"

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher()

	hash, err := h.Hash("Secr3t!")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "Secr3t!" {
		t.Fatalf("hash equals plaintext")
	}
	if !h.Verify("Secr3t!", hash) {
		t.Fatalf("Verify rejected the original password")
	}
	if h.Verify("other", hash) {
		t.Fatalf("Verify accepted a wrong password")
	}
}

func TestBcryptHasher_SaltedOutput(t *testing.T) {
	h := NewBcryptHasher()

	a, err := h.Hash("Secr3t!")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	b, err := h.Hash("Secr3t!")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password are identical, salt missing")
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher()
	if h.Verify("Secr3t!", "not-a-bcrypt-hash") {
		t.Fatalf("Verify accepted a malformed hash")
	}
}
