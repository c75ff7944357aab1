package commands

import (
	"Quill/internal/pkg/security"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as admin and print the bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.client.Login(cmd.Context(), username, password)
			if err != nil {
				return userErr(err)
			}
			a.printf("%s\n", token.Token)
			a.printf("# expires %s; export QUILL_TOKEN to reuse it\n", token.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "admin", "Admin username")
	cmd.Flags().StringVarP(&password, "password", "P", os.Getenv("QUILL_PASSWORD"), "Admin password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the current token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return userErr(a.client.Logout(cmd.Context()))
		},
	}
}

func newCoverCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload-cover <file>",
		Short: "Upload a cover image and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			cover, err := a.client.UploadCover(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return userErr(err)
			}
			a.printf("%s (%dx%d)\n", cover.URL, cover.Width, cover.Height)
			return nil
		},
	}
}

func newActivitiesCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Show recent admin activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			activities, err := a.client.ListActivities(cmd.Context(), limit)
			if err != nil {
				return userErr(err)
			}
			for _, act := range activities {
				actor := act.Actor
				if actor == "" {
					actor = "-"
				}
				a.printf("%s  %-6s %-8s %s  %s (%s)\n",
					act.CreatedAt.Local().Format("2006-01-02 15:04:05"), act.Action, act.Entity, actor, act.Title, act.EntityID)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries")
	return cmd
}

func newHashPasswordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for auth.admin_password_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := security.HashPassword(args[0])
			if err != nil {
				return err
			}
			a.printf("%s\n", hash)
			return nil
		},
	}
}
