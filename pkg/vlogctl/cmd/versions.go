package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/visualvc/versionlog/pkg/store"
	"github.com/visualvc/versionlog/pkg/versions"
	"github.com/visualvc/versionlog/pkg/vlogctl/client"
	"github.com/visualvc/versionlog/pkg/vlogctl/output"
)

func NewVersionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Manage version entries",
	}

	cmd.AddCommand(
		newVersionsListCommand(),
		newVersionsAddCommand(),
		newVersionsDeleteCommand(),
	)

	return cmd
}

func newVersionsListCommand() *cobra.Command {
	var (
		page   int
		search string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List version entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			resp, err := apiClient.Versions().List(context.Background(), client.VersionListOptions{
				Page:   page,
				Search: search,
			})
			if err != nil {
				return err
			}
			format := output.Format(rt.OutputFormat())
			if format == output.FormatTable {
				output.WriteVersionTable(rt.Writer(), resp.Versions)
				if resp.HasNext && resp.NextNum != nil {
					_, _ = fmt.Fprintf(rt.Writer(), "More entries available (--page %d)\n", *resp.NextNum)
				}
				return nil
			}
			return output.WriteObject(rt.Writer(), format, resp)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().StringVar(&search, "search", "", "Filter by version or changes substring")
	return cmd
}

func newVersionsAddCommand() *cobra.Command {
	var (
		version string
		date    string
		changes string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a version entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			entry, err := apiClient.Versions().Create(context.Background(), versions.CreateRequest{
				Version: version,
				Date:    date,
				Changes: changes,
			})
			if err != nil {
				return err
			}
			format := output.Format(rt.OutputFormat())
			if format == output.FormatTable {
				output.WriteVersionTable(rt.Writer(), []store.VersionEntry{*entry})
				return nil
			}
			return output.WriteObject(rt.Writer(), format, entry)
		},
	}
	cmd.Flags().StringVar(&version, "version", "", "Version string")
	cmd.Flags().StringVar(&date, "date", "", "Release date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&changes, "changes", "", "Change description")
	_ = cmd.MarkFlagRequired("version")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("changes")
	return cmd
}

func newVersionsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a version entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id: %s", args[0])
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			if err := apiClient.Versions().Delete(context.Background(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Deleted version entry %d\n", id)
			return nil
		},
	}
}
