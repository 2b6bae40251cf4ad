package main

import (
	"os"

	"github.com/spf13/cobra"
)

// ============================================================
// floorprox
// ============================================================

func main() {
	rootCmd := &cobra.Command{
		Use:          "floorprox",
		Short:        "Desk proximity analytics and highlight overlay for floor plans",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(analyzeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the floor API server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP server port (overrides PORT)")
	return cmd
}

func importCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import [floor-id] [file]",
		Short: "Store a floor plan from a JSON resources file or annotated SVG",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runImport(args[0], args[1], name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name of the floor")
	return cmd
}

func analyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Print desk averages and replay clicks against a floor plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runAnalyze(args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.scheme, "scheme", "", "color scheme: default or monochrome (overrides COLOR_SCHEME)")
	cmd.Flags().BoolVar(&opts.icons, "icons", false, "show category icons in monochrome mode")
	cmd.Flags().StringArrayVar(&opts.clicks, "click", nil, "click position as x,y (repeatable)")
	return cmd
}
