package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/access"
	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/pkg/validate"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
	"github.com/yungbote/estatehub-backend/internal/platform/redis"
)

var errBadCredentials = apierr.New(http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("invalid email or password"))

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"max=200"`
	Role     string `json:"role" validate:"required,oneof=ADMIN MANAGER AGENT USER"`
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *types.User `json:"user"`
}

// Claims carries the session id; the role lives in the session record so a
// logout revokes the token immediately.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	Authenticate(ctx context.Context, token string) (*access.Principal, uuid.UUID, error)
	Me(ctx context.Context, userID uuid.UUID) (*types.User, error)
	CreateUser(ctx context.Context, in UserInput) (*types.User, error)
	ListUsers(ctx context.Context) ([]*types.User, error)
	BootstrapAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	db       *gorm.DB
	log      *logger.Logger
	repos    repos.Set
	sessions redis.SessionStore
	secret   []byte
	now      func() time.Time
}

func NewAuthService(db *gorm.DB, log *logger.Logger, set repos.Set, sessions redis.SessionStore, jwtSecret string) AuthService {
	return &authService{
		db:       db,
		log:      log.With("service", "AuthService"),
		repos:    set,
		sessions: sessions,
		secret:   []byte(jwtSecret),
		now:      time.Now,
	}
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	u, err := s.repos.User.GetByEmail(ctx, nil, in.Email)
	if isNotFound(err) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, classify(s.log, err, "user", "login", "")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		s.log.Info("login rejected", "email", in.Email)
		return nil, errBadCredentials
	}

	sess, err := s.sessions.Create(ctx, u.ID, u.Role)
	if err != nil {
		s.log.Error("session create failed", "user_id", u.ID, "error", err)
		return nil, apierr.Server()
	}
	expiresAt := sess.CreatedAt.Add(s.sessions.TTL())
	token, err := s.sign(u.ID, sess.ID, expiresAt)
	if err != nil {
		s.log.Error("token signing failed", "user_id", u.ID, "error", err)
		return nil, apierr.Server()
	}
	s.log.Info("login", "user_id", u.ID, "role", u.Role)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.log.Error("session delete failed", "session_id", sessionID.String(), "error", err)
		return apierr.Server()
	}
	return nil
}

// Authenticate verifies the bearer token and resolves its live session.
func (s *authService) Authenticate(ctx context.Context, token string) (*access.Principal, uuid.UUID, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, uuid.Nil, apierr.Unauthorized()
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, uuid.Nil, apierr.Unauthorized()
	}
	sid, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, uuid.Nil, apierr.Unauthorized()
	}
	sess, err := s.sessions.Get(ctx, sid)
	if errors.Is(err, redis.ErrSessionNotFound) {
		return nil, uuid.Nil, apierr.Unauthorized()
	}
	if err != nil {
		s.log.Error("session lookup failed", "session_id", sid.String(), "error", err)
		return nil, uuid.Nil, apierr.Server()
	}
	if sess.UserID.String() != claims.Subject {
		return nil, uuid.Nil, apierr.Unauthorized()
	}
	role, ok := access.ParseRole(sess.Role)
	if !ok {
		s.log.Warn("session has unknown role", "user_id", sess.UserID, "role", sess.Role)
		return nil, uuid.Nil, apierr.Unauthorized()
	}
	return &access.Principal{UserID: sess.UserID, Role: role}, sess.ID, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	u, err := s.repos.User.Find(ctx, nil, gateway.ByID(userID))
	if err != nil {
		return nil, classify(s.log, err, "user", "me", userID)
	}
	return u, nil
}

func (s *authService) CreateUser(ctx context.Context, in UserInput) (*types.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(&in); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, classify(s.log, err, "user", "hash_password", "")
	}
	u := &types.User{Email: in.Email, PasswordHash: string(hash), Name: in.Name, Role: in.Role}
	if _, err := s.repos.User.Create(ctx, nil, []*types.User{u}); err != nil {
		return nil, classify(s.log, err, "user", "create", "")
	}
	s.log.Info("user created", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]*types.User, error) {
	rows, err := s.repos.User.FindMany(ctx, nil, gateway.Filter{Order: "email ASC"})
	if err != nil {
		return nil, classify(s.log, err, "user", "list", "")
	}
	return rows, nil
}

// BootstrapAdmin creates the first ADMIN when no user with that email exists.
// Empty credentials skip it.
func (s *authService) BootstrapAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}
	_, err := s.repos.User.GetByEmail(ctx, nil, email)
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("lookup bootstrap admin: %w", err)
	}
	if _, err := s.CreateUser(ctx, UserInput{Email: email, Password: password, Name: "Administrator", Role: string(access.RoleAdmin)}); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	s.log.Info("bootstrap admin created", "email", email)
	return nil
}

func (s *authService) sign(userID, sessionID uuid.UUID, expiresAt time.Time) (string, error) {
	claims := Claims{
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(s.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
