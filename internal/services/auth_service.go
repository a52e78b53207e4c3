package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidAPIKey は提示されたAPIキーがハッシュと一致しない場合のエラーです。
var ErrInvalidAPIKey = errors.New("invalid api key")

// AuthService はAPIキーの検証を扱います。
// 平文のキーは保持せず、bcryptハッシュとの比較だけを行います。
type AuthService struct {
	apiKeyHash []byte
}

// NewAuthService はAPIキーのbcryptハッシュからAuthServiceを作成します。
func NewAuthService(apiKeyHash string) *AuthService {
	return &AuthService{apiKeyHash: []byte(apiKeyHash)}
}

// VerifyAPIKey は提示されたキーを検証します。
func (s *AuthService) VerifyAPIKey(apiKey string) error {
	if err := bcrypt.CompareHashAndPassword(s.apiKeyHash, []byte(apiKey)); err != nil {
		return ErrInvalidAPIKey
	}
	return nil
}
