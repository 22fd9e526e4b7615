package auth_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/domain/models"
)

func newTestCodec(t *testing.T) *auth.Codec {
	t.Helper()
	return auth.NewCodec("tenanthub-session", []byte("test-session-key-must-be-32-chars-long"), nil, 3600)
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	original := auth.Session{
		UserID:     "user-123",
		Email:      "owner@acme.com",
		TenantID:   "tenant-acme",
		TenantName: "Acme Workspace",
		Role:       models.RoleOwner,
		FullName:   "Ada Lovelace",
		JobTitle:   "Engineer",
	}

	encoded, err := codec.Encode(original)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, ok := codec.Decode(encoded)
	if !ok {
		t.Fatal("decode failed for a freshly encoded session")
	}
	if decoded != original {
		t.Errorf("round-trip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestCodec_RoundTrip_PreservesUnusualValues(t *testing.T) {
	codec := newTestCodec(t)

	original := auth.Session{
		UserID:   "e2e-user+tag@example.com",
		Email:    "user+tag@example.com",
		FullName: `O'Brien, "Bob" <admin>`,
		JobTitle: strings.Repeat("x", 80),
	}

	encoded, err := codec.Encode(original)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, ok := codec.Decode(encoded)
	if !ok {
		t.Fatal("decode failed")
	}
	if decoded != original {
		t.Errorf("round-trip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestCodec_Decode_Garbage_FailsClosed(t *testing.T) {
	codec := newTestCodec(t)

	for _, value := range []string{
		"",
		"not-a-cookie",
		"aaaa|bbbb|cccc",
		strings.Repeat("A", 512),
	} {
		if _, ok := codec.Decode(value); ok {
			t.Errorf("Decode(%q) succeeded; want rejection", value)
		}
	}
}

func TestCodec_Decode_Tampered_FailsClosed(t *testing.T) {
	codec := newTestCodec(t)

	encoded, err := codec.Encode(auth.Session{UserID: "user-123", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Flip a character in the middle of the encoded value.
	mid := len(encoded) / 2
	flipped := byte('A')
	if encoded[mid] == 'A' {
		flipped = 'B'
	}
	tampered := encoded[:mid] + string(flipped) + encoded[mid+1:]

	if _, ok := codec.Decode(tampered); ok {
		t.Error("tampered cookie decoded successfully; want rejection")
	}
}

func TestCodec_Decode_WrongKey_FailsClosed(t *testing.T) {
	codec := newTestCodec(t)
	other := auth.NewCodec("tenanthub-session", []byte("another-key-entirely-also-32-chars!!"), nil, 3600)

	encoded, err := other.Encode(auth.Session{UserID: "user-123", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, ok := codec.Decode(encoded); ok {
		t.Error("cookie signed with a different key decoded successfully")
	}
}

func TestCodec_Decode_MissingIdentity_FailsClosed(t *testing.T) {
	codec := newTestCodec(t)

	cases := []struct {
		name string
		s    auth.Session
	}{
		{"no user id", auth.Session{Email: "a@b.com"}},
		{"no email", auth.Session{UserID: "user-123"}},
		{"empty", auth.Session{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := codec.Encode(tc.s)
			if err != nil {
				// Encode refusing the incomplete session is equally fail-closed.
				return
			}
			if _, ok := codec.Decode(encoded); ok {
				t.Error("session without mandatory identity fields decoded successfully")
			}
		})
	}
}

func TestSession_Valid(t *testing.T) {
	if (auth.Session{UserID: "u", Email: "e"}).Valid() != true {
		t.Error("session with id and email should be valid")
	}
	if (auth.Session{UserID: "u"}).Valid() {
		t.Error("session without email should be invalid")
	}
	if (auth.Session{Email: "e"}).Valid() {
		t.Error("session without user id should be invalid")
	}
}
