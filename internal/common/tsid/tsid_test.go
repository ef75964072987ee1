package tsid

import (
	"regexp"
	"testing"
)

func TestGenerate(t *testing.T) {
	id := Generate()

	if len(id) != 13 {
		t.Errorf("Generate() returned ID of length %d, expected 13", len(id))
	}

	valid := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]+$`)
	if !valid.MatchString(id) {
		t.Errorf("Generate() returned invalid Crockford Base32: %s", id)
	}
}

func TestGenerateUniqueness(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id := Generate()
		if ids[id] {
			t.Fatalf("Generate() produced duplicate ID: %s", id)
		}
		ids[id] = true
	}
}
