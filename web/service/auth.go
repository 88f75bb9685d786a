package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"todoapi/config"
	"todoapi/database/model"
	"todoapi/repository"
	"todoapi/util/crypto"
	"todoapi/util/random"
)

// Claims is the JWT payload issued on registration and login.
type Claims struct {
	UserId int `json:"userId"`
	Role   int `json:"role"`
	jwt.RegisteredClaims
}

// AuthService implements registration, login and token handling.
type AuthService struct {
	store    repository.Store
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(store repository.Store) *AuthService {
	secret := config.GetJWTSecret()
	if secret == "" {
		// Without a configured secret, tokens only survive one process.
		secret = random.Seq(32)
	}
	return &AuthService{
		store:    store,
		secret:   []byte(secret),
		tokenTTL: time.Duration(config.GetTokenTTLHours()) * time.Hour,
	}
}

// RegisterInput carries the registration payload. Role is optional and
// defaults to the ordinary-user role.
type RegisterInput struct {
	Username      string
	Password      string
	FirstName     string
	LastName      string
	FirstNameRuby string
	LastNameRuby  string
	Role          int
}

// Register creates a user with a hashed password and issues a token.
func (s *AuthService) Register(in RegisterInput) (string, *model.User, error) {
	if in.Password == "" {
		return "", nil, model.NewValidationError("password", "must not be empty")
	}
	hash, err := crypto.HashPasswordAsBcrypt(in.Password)
	if err != nil {
		return "", nil, err
	}

	var user *model.User
	err = s.store.Transaction(func(tx repository.Store) error {
		exists, err := tx.Users().ExistsByUsername(in.Username)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateUsername
		}
		user, err = model.NewUser(in.Username, hash, in.Role, in.Username)
		if err != nil {
			return err
		}
		profile := model.Profile{
			FirstName:     &in.FirstName,
			LastName:      &in.LastName,
			FirstNameRuby: &in.FirstNameRuby,
			LastNameRuby:  &in.LastNameRuby,
		}
		if err := user.UpdateProfile(profile, in.Username); err != nil {
			return err
		}
		return tx.Users().Save(user)
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login verifies the credentials and issues a token. Lookup failure and
// hash mismatch surface the same error.
func (s *AuthService) Login(username, password string) (string, *model.User, error) {
	user, err := s.store.Users().FindByUsername(username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) issueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserId: user.Id,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}
