package local

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := svc.Hash("MyP@ssw0rd!")
	if err != nil {
		t.Fatalf("Hash() failed: %v", err)
	}
	if hash == "MyP@ssw0rd!" {
		t.Fatal("Hash() returned the plaintext")
	}

	if err := svc.Verify("MyP@ssw0rd!", hash); err != nil {
		t.Errorf("Verify() with correct password failed: %v", err)
	}
	if err := svc.Verify("WrongP@ss1", hash); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("Verify() with wrong password: err = %v, want ErrPasswordMismatch", err)
	}
}

func TestHashSalts(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	first, err := svc.Hash("MyP@ssw0rd!")
	if err != nil {
		t.Fatalf("Hash() failed: %v", err)
	}
	second, err := svc.Hash("MyP@ssw0rd!")
	if err != nil {
		t.Fatalf("Hash() failed: %v", err)
	}
	if first == second {
		t.Error("equal passwords produced equal hashes; salt is missing")
	}
}

func TestHashRejectsEmpty(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)
	if _, err := svc.Hash(""); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Hash(\"\") err = %v, want ErrInvalidPassword", err)
	}
	if err := svc.Verify("", "some-hash"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("Verify(\"\") err = %v, want ErrPasswordMismatch", err)
	}
}

func TestLongPasswords(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	// Beyond bcrypt's 72-byte limit: the pre-hash must keep the whole
	// input significant.
	long := strings.Repeat("a", 100) + "X"
	hash, err := svc.Hash(long)
	if err != nil {
		t.Fatalf("Hash() failed: %v", err)
	}
	if err := svc.Verify(long, hash); err != nil {
		t.Errorf("Verify() of long password failed: %v", err)
	}
	if err := svc.Verify(strings.Repeat("a", 100)+"Y", hash); !errors.Is(err, ErrPasswordMismatch) {
		t.Error("Verify() ignored a difference past the 72-byte mark")
	}
}

func TestCheckStrength(t *testing.T) {
	svc := NewPasswordService()

	rejected := []string{
		"",
		"short",
		"1234567",
		"password",  // one class
		"PASSWORD1", // two classes
		"aaaa bbbb", // too few classes
	}
	for _, password := range rejected {
		if err := svc.CheckStrength(password); !errors.Is(err, ErrPasswordTooWeak) {
			t.Errorf("CheckStrength(%q) = %v, want ErrPasswordTooWeak", password, err)
		}
	}

	accepted := []string{
		"MyP@ssw0rd!",
		"Str0ngPass",
		"Test123!abc",
	}
	for _, password := range accepted {
		if err := svc.CheckStrength(password); err != nil {
			t.Errorf("CheckStrength(%q) = %v, want nil", password, err)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"  Ana@School.Example ": "ana@school.example",
		"ana@school.example":    "ana@school.example",
	}
	for in, want := range cases {
		if got := NormalizeEmail(in); got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}
