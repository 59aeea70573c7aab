package utils

import (
	"testing"
)

func setTokenEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_ACCESS_KEY", "access-secret")
	t.Setenv("JWT_REFRESH_KEY", "refresh-secret")
	t.Setenv("JWT_ACCESS_EXPIRE", "15")
	t.Setenv("JWT_REFRESH_EXPIRE", "10080")
}

func TestGenerateAndExtractTokens(t *testing.T) {
	setTokenEnv(t)

	tokens, err := GenerateTokens("user-1", true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if tokens.Access == "" || tokens.Refresh == "" {
		t.Fatalf("empty token pair: %+v", tokens)
	}

	meta, err := CheckAndExtractTokenMetadata(tokens.Access, "JWT_ACCESS_KEY")
	if err != nil {
		t.Fatalf("extract access: %v", err)
	}
	if meta.Id != "user-1" || !meta.Otp {
		t.Fatalf("claims lost: %+v", meta)
	}
	if meta.Exp == 0 {
		t.Fatalf("expiry claim missing")
	}

	meta, err = CheckAndExtractTokenMetadata(tokens.Refresh, "JWT_REFRESH_KEY")
	if err != nil {
		t.Fatalf("extract refresh: %v", err)
	}
	if meta.Id != "user-1" {
		t.Fatalf("refresh claims lost: %+v", meta)
	}
}

func TestTokenRejectedWithWrongKey(t *testing.T) {
	setTokenEnv(t)

	tokens, err := GenerateTokens("user-1", false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := CheckAndExtractTokenMetadata(tokens.Access, "JWT_REFRESH_KEY"); err == nil {
		t.Fatalf("access token validated against the refresh key")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	setTokenEnv(t)

	if _, err := CheckAndExtractTokenMetadata("not.a.token", "JWT_ACCESS_KEY"); err == nil {
		t.Fatalf("garbage token accepted")
	}
}
