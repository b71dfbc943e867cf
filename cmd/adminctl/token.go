package main

import (
	"errors"
	"fmt"
	"time"

	"castle-admin/core/config"
	"castle-admin/core/utils"

	"github.com/urfave/cli/v2"
)

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "mint an admin bearer token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true, Usage: "admin email, must be in ADMIN_EMAILS"},
			&cli.StringFlag{Name: "secret", EnvVars: []string{"ADMIN_JWT_SECRET"}, Usage: "signing secret, defaults to the configured one"},
			&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour, Usage: "token lifetime"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Init()
			if err != nil {
				return err
			}
			secret := c.String("secret")
			if secret == "" {
				secret = cfg.Admin.JWTSecret
			}
			if secret == "" {
				return errors.New("no signing secret: set ADMIN_JWT_SECRET or pass --secret")
			}
			email := c.String("email")
			if !cfg.Admin.IsAdmin(email) {
				fmt.Fprintf(c.App.ErrWriter, "warning: %s is not in ADMIN_EMAILS, the API will answer 403\n", email)
			}

			token, err := utils.GenerateAdminToken(secret, email, c.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, token)
			return nil
		},
	}
}
