package services

import (
	"testing"

	"beauty-clinic-server/models"
	"beauty-clinic-server/utils"
)

func TestGenerateTokenPairAndRefresh(t *testing.T) {
	setupTestDB(t)
	js := NewJWTService()

	pair, err := js.GenerateTokenPair(42, models.PrincipalClient, "test-agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be set")
	}

	claims, err := utils.VerifyToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyToken returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("claims user id = %d, want 42", claims.UserID)
	}
	if claims.Kind != string(models.PrincipalClient) {
		t.Errorf("claims kind = %q, want client", claims.Kind)
	}

	refreshed, err := js.RefreshAccessToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshAccessToken returned error: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatal("expected a new access token")
	}
}

func TestRevokedRefreshTokenRejected(t *testing.T) {
	setupTestDB(t)
	js := NewJWTService()

	pair, err := js.GenerateTokenPair(7, models.PrincipalClient, "test-agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("GenerateTokenPair returned error: %v", err)
	}

	if err := js.RevokeAllTokens(7, models.PrincipalClient); err != nil {
		t.Fatalf("RevokeAllTokens returned error: %v", err)
	}

	if _, err := js.RefreshAccessToken(pair.RefreshToken); err == nil {
		t.Error("expected refresh with revoked token to fail")
	}
}

func TestAdminRevocationLeavesClientTokensAlone(t *testing.T) {
	setupTestDB(t)
	js := NewJWTService()

	// Same principal id, different kinds
	clientPair, err := js.GenerateTokenPair(1, models.PrincipalClient, "test-agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("GenerateTokenPair for client returned error: %v", err)
	}
	if _, err := js.GenerateTokenPair(1, models.PrincipalAdmin, "test-agent", "127.0.0.1"); err != nil {
		t.Fatalf("GenerateTokenPair for admin returned error: %v", err)
	}

	if err := js.RevokeAllTokens(1, models.PrincipalAdmin); err != nil {
		t.Fatalf("RevokeAllTokens returned error: %v", err)
	}

	if _, err := js.RefreshAccessToken(clientPair.RefreshToken); err != nil {
		t.Errorf("client refresh token was revoked alongside admin tokens: %v", err)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	js := NewJWTService()

	hash, err := js.HashPassword("Sunshine1")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !js.CheckPasswordHash("Sunshine1", hash) {
		t.Error("correct password rejected")
	}
	if js.CheckPasswordHash("sunshine1", hash) {
		t.Error("wrong password accepted")
	}
}
