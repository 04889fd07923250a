package auth

import (
	"errors"
	"fmt"
	"time"

	"letsgo/internal/shared/config"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "letsgo"

// Каналы, через которые устройство общается с сервисом
const (
	ChannelWeb      = "WEB"
	ChannelTelegram = "TELEGRAM"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims выдаются устройству, а не пользователю:
// сессия пользователя живёт в локальном хранилище устройства.
type Claims struct {
	DeviceID string `json:"device_id"`
	Channel  string `json:"channel"`
	jwt.RegisteredClaims
}

// JWTService работает с JWT токенами устройств
type JWTService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewJWTService создает новый сервис для работы с JWT
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Secret),
		expiry: time.Duration(cfg.ExpiryMinutes) * time.Minute,
		now:    time.Now,
	}
}

// GenerateToken создает новый JWT токен для устройства
func (s *JWTService) GenerateToken(deviceID, channel string) (string, error) {
	if deviceID == "" {
		return "", fmt.Errorf("device id is required")
	}
	now := s.now()

	claims := &Claims{
		DeviceID: deviceID,
		Channel:  channel,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   deviceID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken проверяет токен и возвращает claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.DeviceID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractDevice возвращает device_id и канал (для WebSocket)
func (s *JWTService) ExtractDevice(tokenString string) (deviceID, channel string, err error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}
	return claims.DeviceID, claims.Channel, nil
}

// RefreshToken обновляет токен (генерирует новый с обновленным expiry)
func (s *JWTService) RefreshToken(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	return s.GenerateToken(claims.DeviceID, claims.Channel)
}
