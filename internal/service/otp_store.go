package service

import (
	"context"
	"errors"
	"time"

	"github.com/incorgnihealth/api/pkg/identity"

	"github.com/redis/go-redis/v9"
)

// ErrOTPMismatch is returned when the submitted code does not match or has
// expired.
var ErrOTPMismatch = errors.New("invalid or expired OTP")

const otpKeyPrefix = "otp:"

// OTPStore keeps one-time codes in Redis with a TTL, keyed by the hashed
// phone number. Expiry and single-use semantics are owned by Redis, not by
// process memory.
type OTPStore struct {
	redisClient *redis.Client
	expiry      time.Duration
}

func NewOTPStore(redisClient *redis.Client, expiry time.Duration) *OTPStore {
	return &OTPStore{
		redisClient: redisClient,
		expiry:      expiry,
	}
}

// Issue generates a 6-digit code and stores it under the phone hash,
// replacing any previous one.
func (s *OTPStore) Issue(ctx context.Context, phoneHash string) (string, error) {
	code := identity.NewOTP()

	if err := s.redisClient.Set(ctx, otpKeyPrefix+phoneHash, code, s.expiry).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks the submitted code and consumes it on success.
func (s *OTPStore) Verify(ctx context.Context, phoneHash, code string) error {
	stored, err := s.redisClient.Get(ctx, otpKeyPrefix+phoneHash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrOTPMismatch
		}
		return err
	}
	if stored != code {
		return ErrOTPMismatch
	}

	return s.redisClient.Del(ctx, otpKeyPrefix+phoneHash).Err()
}
