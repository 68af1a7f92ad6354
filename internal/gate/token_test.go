package gate

import (
	"strings"
	"testing"
)

func TestParseAllowlist(t *testing.T) {
	list := ParseAllowlist(" alpha-token-1 ,, beta-token-2,  ")

	if list.Len() != 2 {
		t.Fatalf("expected 2 tokens, got %d (%v)", list.Len(), list.Tokens())
	}
	if !list.Contains("alpha-token-1") || !list.Contains("beta-token-2") {
		t.Errorf("expected trimmed tokens, got %v", list.Tokens())
	}
	if list.Contains("") {
		t.Error("empty token must be dropped")
	}
	if got := ParseAllowlist("").Len(); got != 0 {
		t.Errorf("expected empty allowlist, got %d", got)
	}
}

func TestValidateApprovalToken(t *testing.T) {
	configured := NewStaticAllowlist([]string{"reviewer-ok-2025"})

	tests := []struct {
		name      string
		token     string
		allowlist Allowlist
		valid     bool
		message   string
	}{
		{"empty", "", configured, false, MsgTokenRequired},
		{"blank", "    ", nil, false, MsgTokenRequired},
		{"too short", "abc1234", configured, false, MsgTokenTooShort},
		{"listed", "reviewer-ok-2025", configured, true, MsgTokenValid},
		{"listed with padding", " reviewer-ok-2025 ", configured, true, MsgTokenValid},
		{"not listed", "reviewer-nope-2025", configured, false, MsgTokenNotAllowed},
		{"fallback long enough", "abcdefghijklmnop", nil, true, MsgAllowlistMissing},
		{"fallback too short", "abcdefghijklmno", nil, false, MsgAllowlistMissing},
		{"empty allowlist falls back", "abcdefghijklmnopqrst", StaticAllowlist{}, true, MsgAllowlistMissing},
		{"multibyte below minimum", "éééé", configured, false, MsgTokenTooShort},
		{"multibyte fallback counts characters", "éééééééé", nil, false, MsgAllowlistMissing},
		{"multibyte fallback long enough", strings.Repeat("é", 16), nil, true, MsgAllowlistMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateApprovalToken(tt.token, tt.allowlist)
			if got.Valid != tt.valid || got.Message != tt.message {
				t.Errorf("got %+v, want valid=%v message=%q", got, tt.valid, tt.message)
			}
		})
	}
}

func TestGenerateApprovalToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := GenerateApprovalToken()
		if err != nil {
			t.Fatalf("GenerateApprovalToken: %v", err)
		}
		if len(token) != GeneratedTokenLength {
			t.Fatalf("expected %d chars, got %d", GeneratedTokenLength, len(token))
		}
		if strings.Trim(token, tokenAlphabet) != "" {
			t.Fatalf("token %q has characters outside the alphabet", token)
		}
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true

		if check := ValidateApprovalToken(token, nil); !check.Valid {
			t.Errorf("generated token should pass the fallback check: %+v", check)
		}
	}
}
