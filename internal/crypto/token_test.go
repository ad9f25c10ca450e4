package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestMintSessionToken(t *testing.T) {
	token, err := MintSessionToken("64f1c0ffee0000000000aaaa", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("MintSessionToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("MintSessionToken() returned empty string")
	}
}

func TestVerifySessionTokenValid(t *testing.T) {
	secret := "test-secret"
	accountID := "64f1c0ffee0000000000aaaa"

	token, err := MintSessionToken(accountID, secret, time.Hour)
	if err != nil {
		t.Fatalf("MintSessionToken() unexpected error: %v", err)
	}

	subject, err := VerifySessionToken(token, secret)
	if err != nil {
		t.Fatalf("VerifySessionToken() unexpected error: %v", err)
	}
	if subject != accountID {
		t.Errorf("VerifySessionToken() subject = %q, want %q", subject, accountID)
	}
}

func TestVerifySessionTokenInvalid(t *testing.T) {
	if _, err := VerifySessionToken("not-a-valid-token", "test-secret"); err == nil {
		t.Error("VerifySessionToken() expected error for invalid token")
	}
}

func TestVerifySessionTokenWrongSecret(t *testing.T) {
	token, err := MintSessionToken("64f1c0ffee0000000000aaaa", "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("MintSessionToken() unexpected error: %v", err)
	}

	if _, err := VerifySessionToken(token, "wrong-secret"); err == nil {
		t.Error("VerifySessionToken() expected error for wrong secret")
	}
}

func TestVerifySessionTokenExpired(t *testing.T) {
	token, err := MintSessionToken("64f1c0ffee0000000000aaaa", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("MintSessionToken() unexpected error: %v", err)
	}

	if _, err := VerifySessionToken(token, "test-secret"); err == nil {
		t.Error("VerifySessionToken() expected error for expired token")
	}
}

func TestVerifySessionTokenWrongIssuer(t *testing.T) {
	secret := "test-secret"

	claims := jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Audience:  jwt.ClaimStrings{tokenAudience},
		Subject:   "64f1c0ffee0000000000aaaa",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := VerifySessionToken(tokenString, secret); err == nil {
		t.Error("VerifySessionToken() expected error for wrong issuer")
	}
}

func TestVerifySessionTokenMissingSubject(t *testing.T) {
	secret := "test-secret"

	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenAudience},
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	if _, err := VerifySessionToken(tokenString, secret); err == nil {
		t.Error("VerifySessionToken() expected error for missing subject")
	}
}
