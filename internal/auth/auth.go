// Package auth signs the shopper in against the external auth endpoint and
// keeps the resulting session in client-side storage.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/souhail747/luxe/internal/domain"
	"github.com/souhail747/luxe/internal/storage"
	apperrors "github.com/souhail747/luxe/pkg/errors"
	"github.com/souhail747/luxe/pkg/httpclient"
	"github.com/souhail747/luxe/pkg/tracing"
	"github.com/souhail747/luxe/pkg/validator"
)

// Messages shown in the sign-in form when the endpoint gives no reason.
const (
	MsgLoginFailed = "Login failed"
	MsgUnexpected  = "Something went wrong"
)

// DefaultSessionTTL is how long a session lives unless the token expires first.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Config locates the auth endpoint.
type Config struct {
	BaseURL      string        `env:"BASE_URL" envDefault:"http://localhost:4000"`
	LoginPath    string        `env:"LOGIN_PATH" envDefault:"/login"`
	RegisterPath string        `env:"REGISTER_PATH" envDefault:"/register"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"168h"`
}

// Credentials is the sign-in form.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up form.
type Registration struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Client talks to the auth endpoint and owns the persisted session.
type Client struct {
	cfg     Config
	doer    httpclient.Doer
	storage storage.Storage
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.RWMutex
	session *domain.Session
}

// NewClient restores any session already in st. A corrupt or expired
// session is discarded.
func NewClient(ctx context.Context, cfg Config, doer httpclient.Doer, st storage.Storage, logger *slog.Logger) *Client {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	c := &Client{
		cfg:     cfg,
		doer:    doer,
		storage: st,
		logger:  logger,
		now:     time.Now,
	}
	c.restore(ctx)
	return c
}

func (c *Client) restore(ctx context.Context) {
	raw, err := c.storage.Get(ctx, storage.SessionKey)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			c.logger.WarnContext(ctx, "session unreadable", slog.String("error", err.Error()))
		}
		return
	}

	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		c.logger.WarnContext(ctx, "corrupt session, signing out", slog.String("error", err.Error()))
		c.clear(ctx)
		return
	}
	if !s.Valid(c.now()) {
		c.clear(ctx)
		return
	}
	c.session = &s
}

// Login validates creds, posts them to the login endpoint and stores the
// returned session.
func (c *Client) Login(ctx context.Context, creds Credentials) (domain.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if strings.TrimSpace(creds.Password) == "" {
		creds.Password = ""
	}
	if err := validator.Validate(creds); err != nil {
		return domain.Session{}, err
	}
	return c.authenticate(ctx, c.cfg.LoginPath, creds)
}

// Register creates an account and signs in with it.
func (c *Client) Register(ctx context.Context, reg Registration) (domain.Session, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	if strings.TrimSpace(reg.Password) == "" {
		reg.Password = ""
	}
	if err := validator.Validate(reg); err != nil {
		return domain.Session{}, err
	}
	return c.authenticate(ctx, c.cfg.RegisterPath, reg)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (domain.Session, error) {
	ctx, span := tracing.Tracer("auth").Start(ctx, "auth.authenticate")
	defer span.End()
	span.SetAttributes(attribute.String("auth.path", path))

	s, err := c.roundTrip(ctx, path, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Session{}, err
	}
	c.store(ctx, s)

	c.logger.InfoContext(ctx, "signed in", slog.String("user_id", s.User.ID))
	return s, nil
}

func (c *Client) roundTrip(ctx context.Context, path string, body any) (domain.Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.Session{}, apperrors.Internal(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.cfg.BaseURL, "/")+path, bytes.NewReader(payload))
	if err != nil {
		return domain.Session{}, apperrors.Internal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		var respErr *httpclient.ResponseError
		if errors.As(err, &respErr) {
			return domain.Session{}, respErr.AppError(MsgLoginFailed)
		}
		c.logger.WarnContext(ctx, "auth endpoint unreachable",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return domain.Session{}, apperrors.Unavailable(MsgUnexpected, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Session{}, httpclient.ParseResponseError(resp).AppError(MsgLoginFailed)
	}
	defer func() { _ = resp.Body.Close() }()

	var tr tokenResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&tr); err != nil {
		return domain.Session{}, apperrors.Unavailable(MsgUnexpected, fmt.Errorf("decode auth response: %w", err))
	}
	if tr.Token == "" {
		return domain.Session{}, apperrors.Unavailable(MsgUnexpected, errors.New("auth response carries no token"))
	}

	return domain.Session{
		Token:     tr.Token,
		User:      tr.User,
		ExpiresAt: c.expiry(tr.Token),
	}, nil
}

// expiry is now+SessionTTL, or the token's exp claim when that is earlier.
// The signature is not checked; the endpoint is the authority on validity.
func (c *Client) expiry(token string) time.Time {
	expiresAt := c.now().Add(c.cfg.SessionTTL)

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return expiresAt
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(expiresAt) {
		return claims.ExpiresAt.Time
	}
	return expiresAt
}

func (c *Client) store(ctx context.Context, s domain.Session) {
	c.mu.Lock()
	c.session = &s
	c.mu.Unlock()

	raw, err := json.Marshal(s)
	if err != nil {
		c.logger.ErrorContext(ctx, "encode session", slog.String("error", err.Error()))
		return
	}
	if err := c.storage.Set(ctx, storage.SessionKey, raw); err != nil {
		c.logger.WarnContext(ctx, "persist session failed", slog.String("error", err.Error()))
	}
}

// Logout forgets the session locally; the endpoint is not told.
func (c *Client) Logout(ctx context.Context) {
	c.clear(ctx)
}

func (c *Client) clear(ctx context.Context) {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()

	if err := c.storage.Remove(ctx, storage.SessionKey); err != nil {
		c.logger.WarnContext(ctx, "remove session failed", slog.String("error", err.Error()))
	}
}

// Session returns the current session, or false when signed out or expired.
func (c *Client) Session() (domain.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.session == nil || !c.session.Valid(c.now()) {
		return domain.Session{}, false
	}
	return *c.session, true
}

// IsAuthenticated reports whether a valid session exists.
func (c *Client) IsAuthenticated() bool {
	_, ok := c.Session()
	return ok
}
