package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"studio-server/internal/config"
	"studio-server/internal/models"
	"studio-server/internal/repository"
)

// AuthService handles account registration, login and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, login, password string) (*models.User, *models.TokenDetails, error)
	Logout(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) error
	Refresh(ctx context.Context, refreshTokenString string) (*models.TokenDetails, error)
	VerifyAccessToken(ctx context.Context, tokenString string) (*models.Claims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// Compile-time check to ensure authServiceImpl implements AuthService
var _ AuthService = (*authServiceImpl)(nil)

type authServiceImpl struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	cfg       *config.Config
	logger    *zap.Logger
}

// NewAuthService creates a new instance of authServiceImpl.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, cfg *config.Config, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cfg:       cfg,
		logger:    logger.Named("AuthService"),
	}
}

// Register creates a new user account.
func (s *authServiceImpl) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	logFields := []zap.Field{zap.String("username", username), zap.String("email", email)}
	s.logger.Info("Registering new user", logFields...)

	if _, err := mail.ParseAddress(email); err != nil {
		s.logger.Warn("Registration attempt with invalid email format", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("invalid email format: %w", models.ErrValidation)
	}
	if username == "" || password == "" {
		s.logger.Warn("Registration attempt with empty username or password", logFields...)
		return nil, models.ErrValidation
	}

	existingUser, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		s.logger.Error("Error checking existing username during registration", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("error checking existing username: %w", err)
	}
	if existingUser != nil {
		s.logger.Warn("Registration attempt for existing username", logFields...)
		return nil, models.ErrUserAlreadyExists
	}

	existingUser, err = s.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		s.logger.Error("Error checking existing email during registration", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("error checking existing email: %w", err)
	}
	if existingUser != nil {
		s.logger.Warn("Registration attempt for existing email", logFields...)
		return nil, models.ErrEmailAlreadyExists
	}

	hashedPassword, err := hashPassword(password, s.cfg.PasswordPepper)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		// Uniqueness violations are already mapped by the repository.
		return nil, err
	}

	s.logger.Info("User registered successfully", zap.String("userID", user.ID.String()), zap.String("username", user.Username))
	return user, nil
}

// Login authenticates a user by username or email and returns token details.
func (s *authServiceImpl) Login(ctx context.Context, login, password string) (*models.User, *models.TokenDetails, error) {
	login = strings.TrimSpace(login)
	s.logger.Info("Login attempt", zap.String("login", login))

	user, err := s.lookupUser(ctx, login)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Login failed: user not found", zap.String("login", login))
			return nil, nil, models.ErrInvalidCredentials
		}
		s.logger.Error("Login failed: error getting user from repository", zap.Error(err), zap.String("login", login))
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !checkPasswordHash(password, user.PasswordHash, s.cfg.PasswordPepper) {
		s.logger.Warn("Login failed: invalid password", zap.String("login", login), zap.String("userID", user.ID.String()))
		return nil, nil, models.ErrInvalidCredentials
	}

	td, err := s.createTokens(user.ID)
	if err != nil {
		s.logger.Error("Failed to create tokens during login", zap.Error(err), zap.String("userID", user.ID.String()))
		return nil, nil, fmt.Errorf("failed to create tokens: %w", err)
	}

	if err := s.tokenRepo.SetToken(ctx, user.ID, td); err != nil {
		s.logger.Error("Failed to save token details during login", zap.Error(err), zap.String("userID", user.ID.String()))
		return nil, nil, fmt.Errorf("failed to save token details: %w", err)
	}

	s.logger.Info("User logged in successfully", zap.String("userID", user.ID.String()))
	return user, td, nil
}

// lookupUser resolves the login string as an email when it parses as one,
// otherwise as a username.
func (s *authServiceImpl) lookupUser(ctx context.Context, login string) (*models.User, error) {
	if strings.Contains(login, "@") {
		if _, err := mail.ParseAddress(login); err == nil {
			return s.userRepo.GetUserByEmail(ctx, strings.ToLower(login))
		}
	}
	return s.userRepo.GetUserByUsername(ctx, login)
}

// Logout removes the access and refresh tokens from the store.
func (s *authServiceImpl) Logout(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) error {
	log := s.logger.With(zap.String("userID", userID.String()))
	log.Debug("Attempting to logout user by deleting tokens")

	deletedCount, err := s.tokenRepo.DeleteTokens(ctx, userID, accessUUID, refreshUUID)
	if err != nil {
		// Tokens may already be gone; logout stays successful.
		log.Error("Failed to delete tokens during logout", zap.Error(err))
	}
	if deletedCount > 0 {
		log.Info("Tokens deleted successfully during logout", zap.Int64("deletedCount", deletedCount))
	} else {
		log.Info("No tokens found to delete during logout (already expired or logged out)")
	}
	return nil
}

// Refresh issues new access and refresh tokens based on a valid refresh token.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshTokenString string) (*models.TokenDetails, error) {
	s.logger.Info("Token refresh attempt")
	claims, err := s.parseToken(refreshTokenString)
	if err != nil {
		return nil, err
	}

	refreshUUID := claims.ID
	userID, err := s.tokenRepo.GetUserIDByRefreshUUID(ctx, refreshUUID)
	if err != nil {
		if errors.Is(err, models.ErrTokenNotFound) {
			s.logger.Warn("Refresh attempt with invalid/revoked token in store", zap.String("refreshUUID", refreshUUID))
			return nil, models.ErrTokenNotFound
		}
		s.logger.Error("Error checking refresh token existence", zap.Error(err), zap.String("refreshUUID", refreshUUID))
		return nil, fmt.Errorf("error checking refresh token existence: %w", err)
	}
	if userID != claims.UserID {
		s.logger.Error("Refresh token user ID mismatch",
			zap.String("tokenUserID", claims.UserID.String()),
			zap.String("repoUserID", userID.String()),
		)
		return nil, models.ErrTokenInvalid
	}

	newTd, err := s.createTokens(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to create new tokens during refresh: %w", err)
	}

	if _, delErr := s.tokenRepo.DeleteTokens(ctx, claims.UserID, "", refreshUUID); delErr != nil {
		s.logger.Error("Non-critical: failed to delete old refresh token during refresh", zap.Error(delErr), zap.String("refreshUUID", refreshUUID))
	}

	if err := s.tokenRepo.SetToken(ctx, claims.UserID, newTd); err != nil {
		s.logger.Error("Failed to save new token details during refresh", zap.Error(err), zap.String("userID", claims.UserID.String()))
		return nil, fmt.Errorf("failed to save new token details: %w", err)
	}

	s.logger.Info("Token refreshed successfully", zap.String("userID", claims.UserID.String()))
	return newTd, nil
}

// VerifyAccessToken parses an access token and checks it against the store.
func (s *authServiceImpl) VerifyAccessToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	s.logger.Debug("Verifying access token")
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	accessUUID := claims.ID
	if _, err := s.tokenRepo.GetUserIDByAccessUUID(ctx, accessUUID); err != nil {
		if errors.Is(err, models.ErrTokenNotFound) {
			s.logger.Debug("Access token not found in store (revoked/logged out)", zap.String("accessUUID", accessUUID))
			return nil, models.ErrTokenInvalid
		}
		s.logger.Error("Error checking access token existence", zap.Error(err), zap.String("accessUUID", accessUUID))
		return nil, fmt.Errorf("error checking access token existence: %w", err)
	}
	return claims, nil
}

// GetUserByID returns the user's profile.
func (s *authServiceImpl) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// parseToken validates signature and expiry, and returns the claims.
func (s *authServiceImpl) parseToken(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Debug("Token verification failed: expired")
			return nil, models.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			s.logger.Warn("Token verification failed: malformed")
			return nil, models.ErrTokenMalformed
		}
		s.logger.Error("Failed to parse token", zap.Error(err))
		return nil, models.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		s.logger.Warn("Token verification failed (invalid claims type or signature)")
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

// createTokens generates a new access and refresh token pair for a user.
func (s *authServiceImpl) createTokens(userID uuid.UUID) (*models.TokenDetails, error) {
	s.logger.Debug("Creating new token pair", zap.String("userID", userID.String()))

	now := time.Now()
	td := &models.TokenDetails{
		AccessUUID:  uuid.New().String(),
		RefreshUUID: uuid.New().String(),
		AtExpires:   now.Add(s.cfg.AccessTokenTTL).Unix(),
		RtExpires:   now.Add(s.cfg.RefreshTokenTTL).Unix(),
	}

	acClaims := &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        td.AccessUUID,
			ExpiresAt: jwt.NewNumericDate(time.Unix(td.AtExpires, 0)),
			Subject:   userID.String(),
			Issuer:    "studio-server",
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	var err error
	td.AccessToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, acClaims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	rcClaims := &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        td.RefreshUUID,
			ExpiresAt: jwt.NewNumericDate(time.Unix(td.RtExpires, 0)),
			Subject:   userID.String(),
			Issuer:    "studio-server",
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	td.RefreshToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, rcClaims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.logger.Error("Failed to sign refresh token", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return td, nil
}

// --- Password helpers ---

// applyPepper applies HMAC-SHA256 using the pepper as the key.
func applyPepper(password, pepper string) []byte {
	h := hmac.New(sha256.New, []byte(pepper))
	h.Write([]byte(password))
	return h.Sum(nil)
}

// hashPassword generates a bcrypt hash of the peppered password.
func hashPassword(password, pepper string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(applyPepper(password, pepper), bcrypt.DefaultCost)
	return string(bytes), err
}

// checkPasswordHash compares a plain password (after peppering) with a stored hash.
func checkPasswordHash(password, hash, pepper string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), applyPepper(password, pepper)) == nil
}
