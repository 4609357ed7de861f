// Package auth implements login and user management on top of the
// users repository.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/invtrack/inventory-manager/internal/auth/jwt"
	"github.com/invtrack/inventory-manager/internal/auth/pwhash"
	"github.com/invtrack/inventory-manager/internal/dependency"
	"github.com/invtrack/inventory-manager/internal/gerr"
)

// Server issues and verifies auth tokens for the admin surface.
type Server struct {
	users   dependency.Users
	pwhash  *pwhash.PasswordHasher
	JwtAuth *jwtauth.JWTAuth
	jwtTTL  time.Duration
	c       *Config
}

// Config contains the configuration for the auth server.
type Config struct {
	JWTSecret                string `mapstructure:"jwt_secret"`
	JWTTTL                   string `mapstructure:"jwt_ttl"`
	AdminUsername            string `mapstructure:"admin_username"`
	AdminPassword            string `mapstructure:"admin_password"`
	PasswordHasherSaltSize   int    `mapstructure:"password_hasher_salt_size"`
	PasswordHasherIterations int    `mapstructure:"password_hasher_iterations"`
}

// New creates a new auth server and makes sure the configured admin
// account exists.
func New(ctx context.Context, c *Config, users dependency.Users) (*Server, error) {
	ph, err := pwhash.New(c.PasswordHasherSaltSize, c.PasswordHasherIterations)
	if err != nil {
		return nil, err
	}

	ttl, err := time.ParseDuration(c.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("can't parse jwt ttl: %w", err)
	}

	s := &Server{
		users:   users,
		pwhash:  ph,
		JwtAuth: jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		jwtTTL:  ttl,
		c:       c,
	}

	if c.AdminUsername != "" && c.AdminPassword != "" {
		hash, err := ph.HashPassword(c.AdminPassword)
		if err != nil {
			return nil, err
		}
		if err := users.AddUser(ctx, strings.ToLower(c.AdminUsername), "", "admin", hash); err != nil {
			return nil, fmt.Errorf("can't seed admin user: %w", err)
		}
	}

	return s, nil
}

// Login returns an auth token for valid credentials.
func (s *Server) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.ToLower(username)

	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", gerr.ErrUnauthenticated
	}

	if err := s.pwhash.Validate(password, u.PasswordHash); err != nil {
		return "", gerr.ErrUnauthenticated
	}

	return jwt.NewTokenWithSubject(s.JwtAuth, s.jwtTTL, username)
}

// CreateUser registers a user account and returns a token for it.
func (s *Server) CreateUser(ctx context.Context, username, contactInfo, role, password string) (string, error) {
	username = strings.ToLower(username)

	hash, err := s.pwhash.HashPassword(password)
	if err != nil {
		return "", err
	}
	if err := s.users.AddUser(ctx, username, contactInfo, role, hash); err != nil {
		return "", err
	}
	return jwt.NewTokenWithSubject(s.JwtAuth, s.jwtTTL, username)
}

// DeleteUser removes a user account.
func (s *Server) DeleteUser(ctx context.Context, username string) error {
	return s.users.DeleteUser(ctx, strings.ToLower(username))
}
