package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/incorgnihealth/api/config"
	"github.com/incorgnihealth/api/internal/converter"
	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/delivery/http/middleware"
	"github.com/incorgnihealth/api/internal/domain/entity"
	"github.com/incorgnihealth/api/internal/domain/repository"
	"github.com/incorgnihealth/api/internal/service"
	"github.com/incorgnihealth/api/pkg/identity"
	"github.com/incorgnihealth/api/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidOTP          = errors.New("invalid or expired OTP")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUserNotFound        = errors.New("user not found")
)

const ghostIDAttempts = 5

// createWithFreshGhostID inserts the user under a newly generated public ID.
// Ghost IDs live in a small space and the unique index on public_id is the
// arbiter: a duplicate-key error from a concurrent signup picking the same ID
// triggers a fresh ID and another insert instead of surfacing to the caller.
func createWithFreshGhostID(db *gorm.DB, userRepo repository.UserRepository, user *entity.User) error {
	var err error
	for attempt := 0; attempt < ghostIDAttempts; attempt++ {
		user.PublicID = identity.NewGhostID()
		err = userRepo.Create(db, user)
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return err
}

type AuthUsecase interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error)
	Verify(ctx context.Context, req *dto.VerifyRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*dto.UserResponse, error)
}

type authUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	cfg         *config.Config
	userRepo    repository.UserRepository
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	otpStore    *service.OTPStore
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg *config.Config,
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	otpStore *service.OTPStore,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		cfg:         cfg,
		userRepo:    userRepo,
		jwtService:  jwtService,
		redisClient: redisClient,
		otpStore:    otpStore,
	}
}

// Signup takes a phone number, creates the anonymized account if the phone
// hash is new, and issues an OTP. The plaintext phone is hashed immediately
// and never stored. Calling signup again for a known phone just re-issues
// the OTP.
func (u *authUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	phoneHash := identity.HashData(strings.TrimSpace(req.Phone))

	user, err := u.userRepo.FindByDataHash(u.db.WithContext(ctx), phoneHash)
	if err != nil {
		u.log.Warnf("Failed to look up user by data hash: %+v", err)
		return nil, err
	}

	if user == nil {
		role := entity.RolePatient
		if req.Role != "" {
			role = entity.Role(req.Role)
		}

		user = &entity.User{
			Role:     role,
			DataHash: phoneHash,
		}

		if err := createWithFreshGhostID(u.db.WithContext(ctx), u.userRepo, user); err != nil {
			u.log.Warnf("Failed to create user: %+v", err)
			return nil, err
		}
		u.log.Infof("User registered: publicID=%s, role=%s", user.PublicID, user.Role)
	}

	code, err := u.otpStore.Issue(ctx, phoneHash)
	if err != nil {
		u.log.Warnf("Failed to issue OTP: %+v", err)
		return nil, err
	}

	response := &dto.SignupResponse{PublicID: user.PublicID}
	// The SMS gateway is mocked; expose the code outside production so
	// clients can complete the flow.
	if u.cfg.App.Env != "production" {
		response.DebugOTP = code
	}
	return response, nil
}

// Verify exchanges a valid OTP for an access/refresh token pair. The refresh
// token is stored hashed on the user row; the access token is allowlisted in
// Redis for its lifetime so logout can revoke it.
func (u *authUsecase) Verify(ctx context.Context, req *dto.VerifyRequest) (*dto.TokenResponse, error) {
	phoneHash := identity.HashData(strings.TrimSpace(req.Phone))

	if err := u.otpStore.Verify(ctx, phoneHash, req.OTP); err != nil {
		if errors.Is(err, service.ErrOTPMismatch) {
			return nil, ErrInvalidOTP
		}
		u.log.Warnf("Failed to verify OTP: %+v", err)
		return nil, err
	}

	user, err := u.userRepo.FindByDataHash(u.db.WithContext(ctx), phoneHash)
	if err != nil {
		u.log.Warnf("Failed to look up user by data hash: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return u.issueTokens(ctx, user)
}

// RefreshToken rotates the pair: the presented refresh token must match the
// stored hash, and a new refresh token replaces it, invalidating the old one.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidRefreshToken
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", claims.UserID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidRefreshToken
	}
	if user.RefreshTokenHash == "" || user.RefreshTokenHash != identity.HashData(req.RefreshToken) {
		return nil, ErrInvalidRefreshToken
	}

	return u.issueTokens(ctx, user)
}

// Logout revokes the current access token and clears the stored refresh
// token hash.
func (u *authUsecase) Logout(ctx context.Context) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}
	tokenID, _ := middleware.GetTokenIDFromContext(ctx)

	tokenKey := fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID)
	if err := u.redisClient.Del(ctx, tokenKey).Err(); err != nil {
		u.log.Warnf("Failed to revoke access token for %s: %+v", userID, err)
		return err
	}

	if err := u.userRepo.UpdateFields(u.db.WithContext(ctx), userID, map[string]interface{}{
		"refresh_token_hash": "",
	}); err != nil {
		u.log.Warnf("Failed to clear refresh token for %s: %+v", userID, err)
		return err
	}

	u.log.Infof("User logged out: id=%s", userID)
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, tokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.PublicID, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, _, err := u.jwtService.GenerateRefreshToken(user.ID, user.PublicID, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	tokenKey := fmt.Sprintf("access_token:%s:%s", user.ID.String(), tokenID)
	if err := u.redisClient.Set(ctx, tokenKey, "1", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to allowlist access token: %+v", err)
		return nil, err
	}

	if err := u.userRepo.UpdateFields(u.db.WithContext(ctx), user.ID, map[string]interface{}{
		"refresh_token_hash": identity.HashData(refreshToken),
	}); err != nil {
		u.log.Warnf("Failed to store refresh token hash: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		User:         converter.UserToResponse(user),
	}, nil
}
