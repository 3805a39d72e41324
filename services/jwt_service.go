package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"beauty-clinic-server/config"
	"beauty-clinic-server/database"
	"beauty-clinic-server/models"
	"beauty-clinic-server/utils"
)

// JWTService handles access/refresh token operations for both admin users
// and portal clients.
type JWTService struct{}

// NewJWTService creates a new JWT service
func NewJWTService() *JWTService {
	return &JWTService{}
}

// TokenPair represents a pair of access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// GenerateTokenPair generates both access and refresh tokens for a principal
func (js *JWTService) GenerateTokenPair(principalID uint, kind models.PrincipalKind, userAgent, ipAddress string) (*TokenPair, error) {
	accessToken, err := utils.GenerateToken(principalID, string(kind))
	if err != nil {
		return nil, err
	}

	refreshToken, err := js.generateRefreshToken(principalID, kind, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(config.AppConfig.JWT.ExpiryHours * 3600),
		TokenType:    "Bearer",
	}, nil
}

// generateRefreshToken generates a long-lived random token stored server-side
func (js *JWTService) generateRefreshToken(principalID uint, kind models.PrincipalKind, userAgent, ipAddress string) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	tokenString := hex.EncodeToString(tokenBytes)

	refreshToken := &models.RefreshToken{
		Token:       tokenString,
		PrincipalID: principalID,
		Kind:        kind,
		ExpiresAt:   time.Now().Add(30 * 24 * time.Hour),
		UserAgent:   userAgent,
		IPAddress:   ipAddress,
	}

	if err := database.DB.Create(refreshToken).Error; err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateRefreshToken looks up a refresh token and checks it is usable
func (js *JWTService) ValidateRefreshToken(tokenString string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken

	if err := database.DB.Where("token = ?", tokenString).First(&refreshToken).Error; err != nil {
		return nil, errors.New("refresh token not found")
	}

	if !refreshToken.IsUsable() {
		return nil, errors.New("refresh token is invalid or expired")
	}

	return &refreshToken, nil
}

// RefreshAccessToken generates a new access token using a refresh token
func (js *JWTService) RefreshAccessToken(refreshTokenString string) (*TokenPair, error) {
	refreshToken, err := js.ValidateRefreshToken(refreshTokenString)
	if err != nil {
		return nil, err
	}

	accessToken, err := utils.GenerateToken(refreshToken.PrincipalID, string(refreshToken.Kind))
	if err != nil {
		return nil, err
	}

	refreshToken.UpdatedAt = time.Now()
	database.DB.Save(refreshToken)

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString, // keep the same refresh token
		ExpiresIn:    int64(config.AppConfig.JWT.ExpiryHours * 3600),
		TokenType:    "Bearer",
	}, nil
}

// RevokeRefreshToken revokes a single refresh token
func (js *JWTService) RevokeRefreshToken(tokenString string) error {
	var refreshToken models.RefreshToken

	if err := database.DB.Where("token = ?", tokenString).First(&refreshToken).Error; err != nil {
		return errors.New("refresh token not found")
	}

	refreshToken.Revoke()
	database.DB.Save(&refreshToken)

	return nil
}

// RevokeAllTokens revokes every refresh token held by a principal
func (js *JWTService) RevokeAllTokens(principalID uint, kind models.PrincipalKind) error {
	if err := database.DB.Model(&models.RefreshToken{}).
		Where("principal_id = ? AND kind = ? AND is_revoked = ?", principalID, kind, false).
		Update("is_revoked", true).Error; err != nil {
		return err
	}

	log.Printf("✅ All refresh tokens revoked for %s %d", kind, principalID)
	return nil
}

// HashPassword hashes a password using bcrypt with a raised cost
func (js *JWTService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func (js *JWTService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CleanupExpiredTokens removes expired refresh tokens
func (js *JWTService) CleanupExpiredTokens() error {
	if err := database.DB.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{}).Error; err != nil {
		return err
	}

	log.Printf("✅ Expired refresh tokens cleaned up")
	return nil
}
