package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nlsh-dev/nlsh/internal/app"
	"github.com/nlsh-dev/nlsh/internal/domain"
)

func newHistoryCommand(container *app.Container) *cobra.Command {
	var limit int
	var search string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := container.History.Records(limit, search)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history yet.")
				return nil
			}
			for _, record := range records {
				status := " "
				if record.Executed && !record.Success {
					status = fmt.Sprintf("!%d", record.ExitCode)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %-3s %s\n",
					record.Timestamp.Format("2006-01-02 15:04"),
					record.Provider, status, record.Command)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Maximum records to show")
	cmd.Flags().StringVar(&search, "search", "", "Filter records by substring")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all history records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.History.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "export FILE",
		Short: "Export history as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.History.ExportJSON(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "History exported to %s\n", args[0])
			return nil
		},
	})
	return cmd
}

func newConfigCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect nlsh configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, container)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show configuration with keys redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, container)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), container.Config.Path())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Delete the configuration, forcing setup on next run",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Config.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration removed.")
			return nil
		},
	})
	return cmd
}

func runConfigShow(cmd *cobra.Command, container *app.Container) error {
	cfg, err := container.Config.Load(cmd.Context())
	if err != nil {
		return err
	}
	for kind, key := range cfg.APIKeys {
		if key != "" {
			cfg.APIKeys[kind] = redactKey(key)
		}
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(raw))
	return nil
}

// redactKey keeps the last four characters so users can tell keys apart.
func redactKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}

func newCacheCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := container.Cache.Entries()
			if err != nil {
				return err
			}
			perProvider := map[domain.ProviderKind]int{}
			for _, entry := range entries {
				perProvider[entry.Provider]++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Entries: %d\n", len(entries))
			for _, kind := range domain.ProviderKinds() {
				if perProvider[kind] > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %d\n", kind, perProvider[kind])
				}
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all cached responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Cache.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return nil
		},
	})
	return cmd
}

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.Doctor.Run(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, check := range report.Checks {
				if check.OK {
					okColor.Fprintf(out, "✓ %s", check.Name)
					fmt.Fprintf(out, " — %s\n", check.Detail)
					continue
				}
				errColor.Fprintf(out, "✗ %s", check.Name)
				fmt.Fprintf(out, " — %s\n", check.Detail)
				if check.Advice != "" {
					infoColor.Fprintf(out, "  %s\n", check.Advice)
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("some checks failed")
			}
			return nil
		},
	}
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the nlsh version",
		Run: func(cmd *cobra.Command, args []string) {
			if version == "" {
				version = "dev"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "nlsh %s\n", version)
		},
	}
}
