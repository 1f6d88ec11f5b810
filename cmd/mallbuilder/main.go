package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartmall/builder/internal/config"
	"github.com/smartmall/builder/internal/server"
	"github.com/smartmall/builder/internal/store"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mallbuilder",
		Short: "Mall layout design engine and project server",
	}

	rootCmd.AddCommand(newCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(templatesCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	var templateID string
	var name string

	cmd := &cobra.Command{
		Use:   "new [output-file]",
		Short: "Create a project from a template and write its document",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runNew(args[0], templateID, name)
		},
	}

	cmd.Flags().StringVarP(&templateID, "template", "t", "rectangle", "template ID")
	cmd.Flags().StringVarP(&name, "name", "n", "New Mall", "project name")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-file]",
		Short: "Validate a project document against all layout rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [project-file]",
		Short: "Print floor and area metrics for a project document",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}
}

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in project templates",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTemplates()
		},
	}
}

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the project server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				log.Fatalf("open store: %v", err)
			}
			defer st.Close()

			srv, err := server.New(cfg, st)
			if err != nil {
				return err
			}
			return srv.Listen()
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP server port (overrides PORT)")
	return cmd
}
