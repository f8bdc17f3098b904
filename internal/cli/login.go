package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/adityarawat/prepometer/internal/auth"
	"github.com/adityarawat/prepometer/internal/logger"
	"github.com/adityarawat/prepometer/internal/models"
)

type LoginCmd struct {
	Email    string `arg:"" help:"Account email address."`
	Password string `short:"p" help:"Sign in with a password instead of an emailed code."`
	Register bool   `help:"Create the account with the given password."`
}

func (c *LoginCmd) Validate() error {
	if c.Register && c.Password == "" {
		return fmt.Errorf("--register requires --password")
	}
	return nil
}

func (c *LoginCmd) Run(ctx *Context) error {
	if ctx.Session == nil {
		return fmt.Errorf("no remote backend configured (set remote.dsn in config)")
	}
	bg := context.Background()

	ctx.Reconciler.BeginAuth()

	var id models.Identity
	var err error
	switch {
	case c.Register:
		id, err = ctx.Session.Register(bg, c.Email, c.Password)
	case c.Password != "":
		id, err = ctx.Session.SignInWithPassword(bg, c.Email, c.Password)
	default:
		id, err = c.signInWithCode(bg, ctx)
	}
	if err != nil {
		ctx.Reconciler.FailAuth()
		return err
	}

	if err := ctx.Reconciler.CompleteAuth(bg, id); err != nil {
		logger.Warn("Pull after sign-in failed", "error", err)
	}

	if err := auth.SetCachedToken(ctx.Session.Token()); err != nil {
		logger.Warn("Could not cache session token", "error", err)
	}

	fmt.Printf("Signed in as %s\n", id.Email)
	return nil
}

func (c *LoginCmd) signInWithCode(bg context.Context, ctx *Context) (models.Identity, error) {
	if err := ctx.Session.RequestLink(bg, c.Email); err != nil {
		return models.Identity{}, err
	}
	fmt.Printf("A sign-in code was emailed to %s.\n", c.Email)

	var code string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sign-in code").
				Value(&code).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("code is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return models.Identity{}, err
	}

	id, err := ctx.Session.VerifyCode(bg, c.Email, code)
	if errors.Is(err, auth.ErrInvalidCode) {
		return models.Identity{}, fmt.Errorf("that code is invalid or has expired, request a new one with 'prepometer login'")
	}
	return id, err
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if ctx.Session != nil {
		if err := ctx.Session.SignOut(context.Background()); err != nil {
			return err
		}
	}
	ctx.Reconciler.SignOut()

	if err := auth.DeleteCachedToken(); err != nil && !errors.Is(err, auth.ErrNotFound) {
		logger.Warn("Could not clear cached session token", "error", err)
	}

	fmt.Println("Signed out. Local data is kept.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	id, err := ctx.requireSession()
	if err != nil {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("%s (user %s)\n", id.Email, id.UserID)
	return nil
}
