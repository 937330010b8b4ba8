package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"smartpos/internal/config"
	"smartpos/internal/dto"
	"smartpos/internal/model"
	"smartpos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Post-login redirect targets by role.
const (
	redirectDashboard  = "/auth/dashboard"
	redirectRecordSale = "/sales/recordsale"
	redirectAdminPanel = "/superadmin/admin_panel"
)

type AuthService interface {
	// Register creates the Business, its admin User, and a trial
	// Subscription in one transaction, then issues a session token.
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, string, error)
	// Login verifies credentials, runs the subscription gate (superadmin
	// bypasses it), stamps last_login, and issues a session token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout blocklists the token hash until the token's own expiry.
	Logout(ctx context.Context, token string) error
	// CreateSuperadmin bootstraps the single business-less superadmin user.
	CreateSuperadmin(ctx context.Context, req dto.CreateSuperadminRequest) error

	TokenTTL() time.Duration
}

type authService struct {
	users         repository.UserRepository
	businesses    repository.BusinessRepository
	subscriptions repository.SubscriptionRepository
	revoked       repository.RevokedTokenRepository
	gate          SubscriptionService
	cfg           *config.Config
}

func NewAuthService(
	users repository.UserRepository,
	businesses repository.BusinessRepository,
	subscriptions repository.SubscriptionRepository,
	revoked repository.RevokedTokenRepository,
	gate SubscriptionService,
	cfg *config.Config,
) AuthService {
	return &authService{
		users:         users,
		businesses:    businesses,
		subscriptions: subscriptions,
		revoked:       revoked,
		gate:          gate,
		cfg:           cfg,
	}
}

func (s *authService) TokenTTL() time.Duration {
	return time.Duration(s.cfg.TokenTTLMinutes) * time.Minute
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, string, error) {
	if _, err := s.businesses.FindByEmail(ctx, req.Email); err == nil {
		return nil, "", fmt.Errorf("email %w", ErrConflict)
	}
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, "", fmt.Errorf("username %w", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	business := &model.Business{
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
	}
	admin := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Active:       true,
		LastLogin:    &now,
	}

	txErr := runTx(ctx, s.businesses.DB(), func(tx *gorm.DB) error {
		if err := s.businesses.CreateTx(tx, business); err != nil {
			return err
		}
		// business_code is derived from the generated id
		business.BusinessCode = fmt.Sprintf("RP%d", business.ID)
		if err := s.businesses.UpdateCodeTx(tx, business.ID, business.BusinessCode); err != nil {
			return err
		}

		admin.BusinessID = &business.ID
		if err := s.users.CreateTx(tx, admin); err != nil {
			return err
		}

		sub := &model.Subscription{
			BusinessID: business.ID,
			PlanName:   "trial",
			StartDate:  now,
			EndDate:    now.AddDate(0, 0, s.cfg.TrialDays),
			Status:     model.SubscriptionTrial,
		}
		return s.subscriptions.CreateTx(tx, sub)
	})
	if txErr != nil {
		return nil, "", txErr
	}

	token, err := s.generateToken(admin)
	if err != nil {
		return nil, "", err
	}

	return &dto.RegisterResponse{
		BusinessID:   business.ID,
		BusinessCode: business.BusinessCode,
		BusinessName: business.BusinessName,
		Username:     admin.Username,
		Role:         string(admin.Role),
		RedirectTo:   redirectDashboard,
	}, token, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}

	// Subscription gate — superadmin bypasses unconditionally. The check
	// runs only here; an already-issued token stays valid until its own
	// expiry even if the subscription lapses mid-session.
	if user.Role != model.RoleSuperadmin {
		if user.BusinessID == nil {
			return nil, &SubscriptionBlockedError{Reason: "missing subscription"}
		}
		if err := s.gate.CheckEligibility(ctx, *user.BusinessID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if err := s.users.StampLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	previousLogin := user.LastLogin
	user.LastLogin = &now

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.TokenTTL().Seconds()),
		Username:    user.Username,
		Role:        string(user.Role),
		BusinessID:  user.BusinessID,
		LastLogin:   previousLogin,
		RedirectTo:  redirectFor(user.Role),
	}, nil
}

func redirectFor(role model.Role) string {
	switch role {
	case model.RoleStaff:
		return redirectRecordSale
	case model.RoleSuperadmin:
		return redirectAdminPanel
	case model.RoleAdmin, model.RoleManager:
		return redirectDashboard
	default:
		return redirectDashboard
	}
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	// The blocklist row only needs to outlive the token itself; parse the
	// expiry out of the claims, falling back to a full TTL when the token
	// is malformed.
	expiresAt := time.Now().Add(s.TokenTTL())
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err == nil && parsed.Valid {
		if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
			expiresAt = exp.Time
		}
	}
	return s.revoked.Add(ctx, HashToken(token), expiresAt)
}

func (s *authService) CreateSuperadmin(ctx context.Context, req dto.CreateSuperadminRequest) error {
	exists, err := s.users.SuperadminExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("superadmin %w", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return err
	}
	now := time.Now()
	return s.users.Create(ctx, &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         model.RoleSuperadmin,
		Active:       true,
		LastLogin:    &now,
	})
}

func (s *authService) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      now.Add(s.TokenTTL()).Unix(),
		"iat":      now.Unix(),
	}
	if user.BusinessID != nil {
		claims["business_id"] = *user.BusinessID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// HashToken returns the hex SHA-256 of a session token — the only form in
// which tokens touch the revocation table.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
