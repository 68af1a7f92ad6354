package gate

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/govgate/internal/model"
)

// Allowlist is the operator-configured set of approval tokens.
// It is read-only for the lifetime of a gate.
type Allowlist interface {
	Contains(token string) bool
	Len() int
}

// StaticAllowlist is an in-memory Allowlist
type StaticAllowlist map[string]struct{}

// NewStaticAllowlist builds an allowlist, trimming tokens and dropping empties
func NewStaticAllowlist(tokens []string) StaticAllowlist {
	list := make(StaticAllowlist, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		list[t] = struct{}{}
	}
	return list
}

// ParseAllowlist reads a comma-separated token list such as GOVERNANCE_APPROVAL_TOKENS
func ParseAllowlist(csv string) StaticAllowlist {
	return NewStaticAllowlist(strings.Split(csv, ","))
}

// Contains reports literal membership
func (a StaticAllowlist) Contains(token string) bool {
	_, ok := a[token]
	return ok
}

// Len returns the number of configured tokens
func (a StaticAllowlist) Len() int {
	return len(a)
}

// Tokens returns the configured tokens in sorted order
func (a StaticAllowlist) Tokens() []string {
	out := make([]string, 0, len(a))
	for t := range a {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Token validation messages
const (
	MsgTokenRequired    = "Approval token is required"
	MsgTokenTooShort    = "Approval token must be at least 8 characters"
	MsgAllowlistMissing = "Approval token allowlist not configured. Token format validation only."
	MsgTokenNotAllowed  = "Approval token not found in allowlist"
	MsgTokenValid       = "Approval token is valid"
)

// GeneratedTokenLength is the length of tokens from GenerateApprovalToken
const GeneratedTokenLength = 32

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ValidateApprovalToken checks a token against an allowlist.
// With no tokens configured any token of FallbackApprovalTokenLen or more
// characters is accepted; that fallback only checks format.
func ValidateApprovalToken(token string, allowlist Allowlist) model.TokenCheck {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.TokenCheck{Message: MsgTokenRequired}
	}
	length := utf8.RuneCountInString(token)
	if length < model.MinApprovalTokenLength {
		return model.TokenCheck{Message: MsgTokenTooShort}
	}

	if allowlist == nil || allowlist.Len() == 0 {
		return model.TokenCheck{
			Valid:   length >= model.FallbackApprovalTokenLen,
			Message: MsgAllowlistMissing,
		}
	}

	if allowlist.Contains(token) {
		return model.TokenCheck{Valid: true, Message: MsgTokenValid}
	}
	return model.TokenCheck{Message: MsgTokenNotAllowed}
}

// GenerateApprovalToken returns a random 32 character alphanumeric token
// suitable for seeding an allowlist
func GenerateApprovalToken() (string, error) {
	limit := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, GeneratedTokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate approval token: %w", err)
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}
