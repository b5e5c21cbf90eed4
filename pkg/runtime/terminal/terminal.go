package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/erp-tools/costboard/pkg/runtime/terminal/commands"
)

// CLI represents the command-line interface
type CLI struct {
	rootCmd *cobra.Command
	opts    *commands.Options
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cmdOpts := &commands.Options{Output: opts.Output}

	cli := &CLI{opts: cmdOpts}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (c *CLI) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "costboard",
		Short: "Cost-center reports and recipe cost simulations",
	}

	rootCmd.PersistentFlags().StringVar(&c.opts.DbPath, "db", "costboard.db", "Path to the SQLite database")
	rootCmd.PersistentFlags().StringVar(&c.opts.Locale, "locale", "en", "Display locale")
	rootCmd.PersistentFlags().StringVar(&c.opts.Currency, "currency", "USD", "Display currency code")

	rootCmd.AddCommand(commands.NewReportCmd(c.opts))
	rootCmd.AddCommand(commands.NewSimulateCmd(c.opts))
	rootCmd.AddCommand(commands.NewLoadCmd(c.opts))

	return rootCmd
}

// Execute runs the CLI
func (c *CLI) Execute() error {
	return c.rootCmd.Execute()
}
