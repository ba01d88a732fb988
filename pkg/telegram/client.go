package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/telegram/dcs"

	"teleripper/pkg/logger"
	"teleripper/pkg/ratelimit"
)

const (
	defaultPageSize    = 100
	maxPageSize        = 100
	defaultDialTimeout = 30 * time.Second
)

// Config configures a Client.
type Config struct {
	APIID   int
	APIHash string

	// Storage persists the MTProto session between runs.
	Storage session.Storage

	// Auth answers the login prompts when the session is not authorized.
	// A nil Auth makes an unauthorized session an error.
	Auth auth.UserAuthenticator

	DialTimeout time.Duration
	Limiter     ratelimit.Limiter
	// PageSize is the number of dialogs or messages requested per call.
	PageSize int
	Logger   logger.Logger
}

// ErrUnauthorized is returned when the session needs a login and no
// authenticator was configured.
var ErrUnauthorized = errors.New("telegram session is not authorized")

// Client owns one MTProto connection.
type Client struct {
	cfg    Config
	client *telegram.Client
	log    logger.Logger
}

// New creates a client. Nothing is dialed until Run.
func New(cfg Config) *Client {
	if cfg.PageSize <= 0 || cfg.PageSize > maxPageSize {
		cfg.PageSize = defaultPageSize
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	if cfg.Limiter == nil {
		cfg.Limiter = ratelimit.Unlimited()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	client := telegram.NewClient(cfg.APIID, cfg.APIHash, telegram.Options{
		SessionStorage: cfg.Storage,
		DCList:         dcs.Prod(),
		DialTimeout:    cfg.DialTimeout,
		NoUpdates:      true,
		Middlewares:    []telegram.Middleware{limitMiddleware(cfg.Limiter, cfg.Logger)},
	})

	logger.LogComponentStart("telegram", map[string]interface{}{
		"page_size":    cfg.PageSize,
		"dial_timeout": cfg.DialTimeout.String(),
	})
	return &Client{cfg: cfg, client: client, log: cfg.Logger}
}

// Run connects, logs in when needed and calls fn with an open session. The
// connection is closed when fn returns.
func (c *Client) Run(ctx context.Context, fn func(ctx context.Context, s *Session) error) error {
	return c.client.Run(ctx, func(ctx context.Context) error {
		if err := c.authorize(ctx); err != nil {
			return err
		}
		c.log.Debug("Telegram session ready")
		return fn(ctx, newSession(c.client.API(), c.cfg.PageSize, c.log))
	})
}

func (c *Client) authorize(ctx context.Context) error {
	if c.cfg.Auth == nil {
		status, err := c.client.Auth().Status(ctx)
		if err != nil {
			return fmt.Errorf("check authorization: %w", err)
		}
		if !status.Authorized {
			return ErrUnauthorized
		}
		return nil
	}

	flow := auth.NewFlow(c.cfg.Auth, auth.SendCodeOptions{})
	if err := c.client.Auth().IfNecessary(ctx, flow); err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}
	return nil
}
