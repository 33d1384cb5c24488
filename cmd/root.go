package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/scanio-checkstyle/cmd/parse"
	"github.com/scan-io-git/scanio-checkstyle/cmd/version"
	"github.com/scan-io-git/scanio-checkstyle/pkg/shared/config"
	cmderrors "github.com/scan-io-git/scanio-checkstyle/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "scanio-checkstyle [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Scanio-checkstyle converts checkstyle reports into prioritized issues.",
		Long: `Scanio-checkstyle reads checkstyle XML reports and converts their violations
	into issues with a priority, category, type and package, printed as text, JSON or SARIF.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $SCANIO_CHECKSTYLE_CONFIG or config.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(parse.ParseCmd)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		// command errors were already logged by the failing command
		var cmdErr *cmderrors.CommandError
		if errors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing config file function is crashed - %v \n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	parse.Init(AppConfig)
}
