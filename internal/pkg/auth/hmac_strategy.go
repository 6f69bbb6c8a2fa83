package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
)

var ErrInvalidToken = errors.New("invalid auth token")

const defaultTTL = 24 * time.Hour

// HMACStrategy issues and verifies tokens of the form
// base64url("<userID>:<role>:<expiresUnix>:<signature>").
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy uses a 24h TTL when ttl <= 0.
func NewHMACStrategy(secret string, ttl time.Duration) *HMACStrategy {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &HMACStrategy{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *HMACStrategy) IssueToken(p Principal) (string, error) {
	if err := p.UserID.Validate(); err != nil {
		return "", err
	}
	if err := p.Role.Validate(); err != nil {
		return "", err
	}

	expires := s.now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%s:%s:%d", p.UserID, p.Role, expires)
	token := payload + ":" + s.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(token)), nil
}

// ParseToken returns ErrInvalidToken for any malformed, tampered or expired token.
func (s *HMACStrategy) ParseToken(token string) (Principal, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		return Principal{}, ErrInvalidToken
	}

	payload := strings.Join(parts[:3], ":")
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[3])) {
		return Principal{}, ErrInvalidToken
	}

	userID, err := kernel.UUIDFromString(parts[0])
	if err != nil {
		return Principal{}, ErrInvalidToken
	}
	role := user.Role(parts[1])
	if role.Validate() != nil {
		return Principal{}, ErrInvalidToken
	}
	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}
	if time.Unix(expires, 0).Before(s.now()) {
		return Principal{}, ErrInvalidToken
	}

	return Principal{UserID: userID, Role: role}, nil
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
