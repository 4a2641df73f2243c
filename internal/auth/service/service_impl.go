package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/smallbiznis/sentra/internal/auth/domain"
	"github.com/smallbiznis/sentra/internal/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	argonSaltLen        = 16

	minPasswordLength = 8
	defaultTokenTTL   = 168 * time.Hour
)

type Service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node

	jwtSecret []byte
	tokenTTL  time.Duration
}

func New(log *zap.Logger, cfg config.Config, repo domain.Repository, genID *snowflake.Node) domain.Service {
	ttl := defaultTokenTTL
	if cfg.AuthTokenTTL > 0 {
		ttl = time.Duration(cfg.AuthTokenTTL) * time.Hour
	}
	return &Service{
		log:       log.Named("auth.service"),
		repo:      repo,
		genID:     genID,
		jwtSecret: []byte(cfg.AuthJWTSecret),
		tokenTTL:  ttl,
	}
}

func (s *Service) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.TokenResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	password := strings.TrimSpace(req.Password)
	if len(password) < minPasswordLength {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindOne(ctx, domain.User{Email: email}); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = defaultDisplayName(email)
	}

	user := &domain.User{
		ID:           s.genID.Generate(),
		ExternalID:   uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: &hashed,
		Role:         domain.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.TokenResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindOne(ctx, domain.User{Email: email})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil || !verifyPassword(req.Password, *user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	userID, err := snowflake.ParseString(strings.TrimSpace(claims.Subject))
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) AssignOrg(ctx context.Context, userID, orgID snowflake.ID, role string) error {
	if orgID == 0 {
		return domain.ErrUserNotFound
	}
	return s.repo.UpdateFields(ctx, userID, map[string]any{
		"org_id":     orgID,
		"role":       role,
		"updated_at": time.Now().UTC(),
	})
}

func (s *Service) issueToken(user *domain.User) (*domain.TokenResult, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &domain.TokenResult{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      *user,
	}, nil
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(addr.Address)), nil
}

func defaultDisplayName(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) != "" {
		return strings.TrimSpace(parts[0])
	}
	return email
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	saltB64 := base64.RawStdEncoding.EncodeToString(salt)
	hashB64 := base64.RawStdEncoding.EncodeToString(hash)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s", argonMemory, argonTime, argonThreads, saltB64, hashB64), nil
}

func verifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" || parts[2] != "v=19" {
		return false
	}

	params := strings.Split(parts[3], ",")
	if len(params) != 3 {
		return false
	}
	m, ok := strings.CutPrefix(params[0], "m=")
	if !ok {
		return false
	}
	t, ok := strings.CutPrefix(params[1], "t=")
	if !ok {
		return false
	}
	p, ok := strings.CutPrefix(params[2], "p=")
	if !ok {
		return false
	}

	m64, err := strconv.ParseUint(m, 10, 32)
	if err != nil {
		return false
	}
	t64, err := strconv.ParseUint(t, 10, 32)
	if err != nil {
		return false
	}
	p64, err := strconv.ParseUint(p, 10, 8)
	if err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, uint32(t64), uint32(m64), uint8(p64), uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
