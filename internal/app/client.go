package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/energy-keeper/internal/adapter"
	"github.com/MKhiriev/energy-keeper/internal/logger"
	"github.com/MKhiriev/energy-keeper/models"
)

// Client executes one sub-command per Run.
type Client struct {
	adapter      adapter.AuthAdapter
	readPassword PasswordReader
	out          io.Writer

	logger *logger.Logger
}

func NewClient(authAdapter adapter.AuthAdapter, readPassword PasswordReader, out io.Writer, logger *logger.Logger) *Client {
	return &Client{
		adapter:      authAdapter,
		readPassword: readPassword,
		out:          out,
		logger:       logger,
	}
}

// Run executes args[0] with the remaining operands. Failures are printed in
// user-facing wording and returned for the exit code.
func (c *Client) Run(ctx context.Context, args []string) error {
	err := c.dispatch(ctx, args)
	if err != nil {
		c.logger.Err(err).Strs("args", commandOnly(args)).Msg("command failed")
		_, _ = fmt.Fprintln(c.out, messageFromError(err))
	}
	return err
}

func (c *Client) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		_, _ = fmt.Fprint(c.out, MsgUsage)
		return fmt.Errorf("%w: no command given", ErrMissingArgument)
	}

	command, operands := args[0], args[1:]
	switch command {
	case "register":
		return c.register(ctx, operands)
	case "login":
		return c.login(ctx, operands)
	case "logout":
		return c.logout(ctx)
	case "whoami":
		return c.whoami(ctx)
	case "prefix":
		return c.prefix(ctx)
	case "version":
		return c.version(ctx)
	case "help":
		_, _ = fmt.Fprint(c.out, MsgUsage)
		return nil
	default:
		_, _ = fmt.Fprint(c.out, MsgUsage)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

func (c *Client) register(ctx context.Context, operands []string) error {
	if len(operands) < 2 {
		return fmt.Errorf("%w: register needs <email> <display-name>", ErrMissingArgument)
	}

	password, err := c.readPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := c.readPassword("Repeat password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	session, err := c.adapter.Register(ctx, models.RegisterRequest{
		Email:       operands[0],
		Password:    password,
		DisplayName: strings.Join(operands[1:], " "),
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.out, MsgRegistered, session.DisplayName, session.Email)
	return nil
}

func (c *Client) login(ctx context.Context, operands []string) error {
	if len(operands) < 1 {
		return fmt.Errorf("%w: login needs <email>", ErrMissingArgument)
	}

	password, err := c.readPassword("Password: ")
	if err != nil {
		return err
	}

	session, err := c.adapter.Login(ctx, models.LoginRequest{Email: operands[0], Password: password})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.out, MsgLoggedIn, session.DisplayName, session.Email)
	return nil
}

func (c *Client) logout(ctx context.Context) error {
	if err := c.adapter.Logout(ctx); err != nil {
		return err
	}

	_, _ = fmt.Fprint(c.out, MsgLoggedOut)
	return nil
}

func (c *Client) whoami(ctx context.Context) error {
	session, ok, err := c.adapter.Session(ctx)
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprint(c.out, MsgNoSession)
		return nil
	}

	_, _ = fmt.Fprintf(c.out, MsgSession, session.DisplayName, session.Email, session.ID, session.CreatedAt.Format(time.RFC3339))
	return nil
}

func (c *Client) prefix(ctx context.Context) error {
	prefix, err := c.adapter.Prefix(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.out, MsgPrefix, prefix)
	return nil
}

func (c *Client) version(ctx context.Context) error {
	version, err := c.adapter.Version(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.out, MsgVersion, version)
	return nil
}

// commandOnly keeps the sub-command name for logs; operands may hold emails.
func commandOnly(args []string) []string {
	if len(args) == 0 {
		return nil
	}
	return args[:1]
}
