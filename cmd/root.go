package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"stubctl/internal/cli"
	"stubctl/internal/color"
	"stubctl/internal/config"
	"stubctl/pkg/logging"
)

var (
	logLevelFlag string
	outputFlag   string
	noColorFlag  bool

	// settings holds the merged configuration once PersistentPreRunE ran.
	settings = config.GetDefaultConfig()

	// For mocking in tests
	loadConfig = config.LoadConfig
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stubctl",
	Short: "Inspect capability sets and resolve implementations against them",
	Long: `stubctl loads capability-set declarations from YAML or TOML files and
shows how anonymous implementations resolve against them: the flattened
catalog of every set, shadowed operations, and which operation a given
name and signature would bind to.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. unknown sets, failed matches)
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "stubctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSetsCmd())
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newMatchCmd())

	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
}

// setup layers command-line flags over the loaded configuration and
// initializes logging and colors.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevelFlag
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = outputFlag
	}
	if noColorFlag {
		disabled := false
		cfg.Color = &disabled
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logging.InitForCLI(level, cmd.ErrOrStderr())
	color.Configure(cfg.ColorEnabled())

	settings = cfg
	logging.Debug("CLI", "Using output %s with %d configured declaration paths", cfg.Output, len(cfg.DeclarationPaths))
	return nil
}

// newFormatter creates the output formatter for cmd from the current settings.
func newFormatter(cmd *cobra.Command, showBindings bool) *cli.Formatter {
	format, err := cli.ParseOutputFormat(settings.Output)
	if err != nil {
		format = cli.OutputFormatTable
	}
	return cli.NewFormatter(cmd.OutOrStdout(), cli.FormatterOptions{
		Format:            format,
		ShowBindings:      showBindings || settings.Catalog.ShowBindings,
		MaxSignatureWidth: settings.Catalog.MaxSignatureWidth,
	})
}
