package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// DefaultDeviceTokenExpiry is how long a device cookie stays valid.
const DefaultDeviceTokenExpiry = 365 * 24 * time.Hour

// DeviceClaims represents JWT claims identifying a browser.
type DeviceClaims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

// DeviceTokenService issues and validates device tokens.
type DeviceTokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewDeviceTokenService creates a token service with the given secret.
func NewDeviceTokenService(secret string, expiry time.Duration) *DeviceTokenService {
	if expiry <= 0 {
		expiry = DefaultDeviceTokenExpiry
	}
	return &DeviceTokenService{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// Expiry returns the lifetime of issued tokens.
func (s *DeviceTokenService) Expiry() time.Duration {
	return s.expiry
}

// Issue creates a new device id and a signed token carrying it.
func (s *DeviceTokenService) Issue() (deviceID string, token string, err error) {
	deviceID = uuid.New().String()
	now := s.now()
	claims := &DeviceClaims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return deviceID, token, err
}

// Validate parses a token and returns its claims.
func (s *DeviceTokenService) Validate(tokenString string) (*DeviceClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &DeviceClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*DeviceClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.DeviceID == "" {
		return nil, errors.New("device id not found")
	}
	return claims, nil
}
