package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/visualvc/versionlog/pkg/vlogctl/config"
)

func NewLoginCommand() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session in the current context",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if password == "" {
				password = os.Getenv("VLOGCTL_PASSWORD")
			}
			if username == "" || password == "" {
				return errors.New("username and password are required (use --password or VLOGCTL_PASSWORD)")
			}

			var ctxCfg *config.Context
			if rt.serverOverride == "" {
				if err := rt.EnsureConfigLoaded(); err != nil {
					return err
				}
				ctxCfg, err = rt.ResolveContext()
				if err != nil {
					return err
				}
			}

			apiClient, err := anonymousClient(rt, ctxCfg)
			if err != nil {
				return err
			}
			session, err := apiClient.Login(context.Background(), username, password)
			if err != nil {
				return err
			}

			// With --server there is no context to persist the session into.
			if ctxCfg == nil {
				_, _ = fmt.Fprintf(rt.Writer(), "Logged in as %s\nsession: %s\n", username, session)
				return nil
			}

			ctxCfg.Username = username
			ctxCfg.Session = session
			if err := config.Save(rt.configPathValue(), rt.cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Logged in as %s (context %s)\n", username, ctxCfg.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (falls back to VLOGCTL_PASSWORD)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}
