package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"our_culture/be/biz/config"
	"our_culture/be/biz/db"
	"our_culture/be/biz/middleware/jwt"
	"our_culture/be/biz/model/domain"
	"our_culture/be/biz/service/user"
	"our_culture/be/biz/util/logger"

	"github.com/urfave/cli/v2"
)

func setup(confPath string) {
	config.Init(confPath)
	logger.Init()
	db.Init()
}

func createCmd(confPath *string) *cli.Command {
	var email, name, role, password string
	return &cli.Command{
		Name:  "create",
		Usage: "Create a user with the given role",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "Login email", Required: true, Destination: &email},
			&cli.StringFlag{Name: "name", Usage: "Display name", Destination: &name},
			&cli.StringFlag{Name: "role", Usage: "user or admin", Value: string(domain.RoleUser), Destination: &role},
			&cli.StringFlag{Name: "password", Usage: "Password, prompted when empty", Destination: &password},
		},
		Action: func(c *cli.Context) error {
			setup(*confPath)
			pwd, err := passwordOrPrompt(password, c.App.Writer)
			if err != nil {
				return err
			}
			return runCreate(c.Context, user.NewDefault(), c.App.Writer, email, name, domain.Role(role), pwd)
		},
	}
}

func setPasswordCmd(confPath *string) *cli.Command {
	var email, password string
	return &cli.Command{
		Name:  "set-password",
		Usage: "Rehash a user's password with a fresh salt and log the user out everywhere",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "Login email", Required: true, Destination: &email},
			&cli.StringFlag{Name: "password", Usage: "New password, prompted when empty", Destination: &password},
		},
		Action: func(c *cli.Context) error {
			setup(*confPath)
			pwd, err := passwordOrPrompt(password, c.App.Writer)
			if err != nil {
				return err
			}
			return runSetPassword(c.Context, user.NewDefault(), c.App.Writer, email, pwd)
		},
	}
}

func runCreate(ctx context.Context, svc *user.Service, w io.Writer, email, name string, role domain.Role, password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	u, bizErr := svc.CreateUser(ctx, email, name, password, role)
	if bizErr != nil {
		return bizErr
	}
	fmt.Fprintf(w, "created %s user %s (%s)\n", u.Role, u.Email, u.UserID)
	return nil
}

func runSetPassword(ctx context.Context, svc *user.Service, w io.Writer, email, password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	u, bizErr := svc.SetPassword(ctx, email, password)
	if bizErr != nil {
		return bizErr
	}
	if err := jwt.RevokeUser(ctx, u.UserID); err != nil {
		return fmt.Errorf("password updated but revoking tokens failed: %w", err)
	}
	fmt.Fprintf(w, "password updated for %s (%s)\n", u.Email, u.UserID)
	return nil
}

func passwordOrPrompt(password string, w io.Writer) (string, error) {
	if password != "" {
		return password, nil
	}
	if w == nil {
		w = os.Stdout
	}
	return promptPassword(w)
}
