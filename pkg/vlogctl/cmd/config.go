package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/visualvc/versionlog/pkg/vlogctl/config"
	"github.com/visualvc/versionlog/pkg/vlogctl/output"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vlogctl configuration",
	}

	cmd.AddCommand(
		newConfigInitCommand(),
		newConfigViewCommand(),
		newConfigSetContextCommand(),
		newConfigUseContextCommand(),
	)

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		contextName string
		server      string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a vlogctl config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			path := rt.configPathValue()
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config already exists: %s", path)
				}
			}
			if contextName == "" {
				contextName = "default"
			}
			cfg := config.DefaultConfig()
			cfg.CurrentContext = contextName
			cfg.Contexts = append(cfg.Contexts, config.Context{
				Name:   contextName,
				Server: server,
			})
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(path, &cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Config written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&contextName, "context-name", "default", "Name for the initial context")
	cmd.Flags().StringVar(&server, "server", "", "Server URL for the initial context")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	_ = cmd.MarkFlagRequired("server")

	return cmd
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			// Never print stored session tokens.
			redacted := *rt.cfg
			redacted.Contexts = make([]config.Context, len(rt.cfg.Contexts))
			copy(redacted.Contexts, rt.cfg.Contexts)
			for i := range redacted.Contexts {
				if redacted.Contexts[i].Session != "" {
					redacted.Contexts[i].Session = "REDACTED"
				}
			}
			return output.WriteObject(rt.Writer(), output.FormatYAML, redacted)
		},
	}
}

func newConfigSetContextCommand() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "set-context NAME",
		Short: "Add or update a context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			name := args[0]
			ctx := config.Context{Name: name, Server: server}
			if existing, err := rt.cfg.FindContext(name); err == nil {
				ctx.Username = existing.Username
				ctx.Session = existing.Session
				if server == "" {
					ctx.Server = existing.Server
				}
			}
			rt.cfg.UpsertContext(ctx)
			if err := rt.cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(rt.configPathValue(), rt.cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Context %s saved\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "Server URL")

	return cmd
}

func newConfigUseContextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use-context NAME",
		Short: "Set the current context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			if _, err := rt.cfg.FindContext(args[0]); err != nil {
				return err
			}
			rt.cfg.CurrentContext = args[0]
			if err := config.Save(rt.configPathValue(), rt.cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Switched to context %s\n", args[0])
			return nil
		},
	}
}
