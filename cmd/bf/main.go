// Command bf evaluates Brainfuck programs.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bf-lang/brainfuck/errz"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var logger zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "bf [file]",
	Short: "Evaluate Brainfuck programs",
	Long: strings.TrimSpace(`
bf evaluates Brainfuck programs deterministically and within fixed
resource bounds. Programs read code from a file, the -c flag, or stdin,
and the produced output is written to stdout.`),
	Args:          cobra.MaximumNArgs(1),
	RunE:          runHandler,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP("code", "c", "", "Code to evaluate")
	flags.Bool("stdin", false, "Read code from stdin")
	flags.Bool("no-color", false, "Disable colored output")
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.Int("tape-size", 0, "Number of tape cells (default 30000)")
	flags.Int("max-steps", 0, "Instruction budget per run (default 1000000)")

	viper.BindPFlag("no-color", flags.Lookup("no-color"))
	viper.BindPFlag("tape-size", flags.Lookup("tape-size"))
	viper.BindPFlag("max-steps", flags.Lookup("max-steps"))

	rootCmd.Flags().Bool("timing", false, "Show execution time")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(disCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetConfigName(".bf")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("BF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	level := zerolog.InfoLevel
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !colorEnabled()}).
		Level(level).
		With().Timestamp().Logger()
}

// colorEnabled reports whether diagnostics should use color: disabled by
// --no-color, the NO_COLOR convention, or a non-terminal stderr.
func colorEnabled() bool {
	if viper.GetBool("no-color") {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

func formatter() *errz.Formatter {
	enabled := colorEnabled()
	color.NoColor = !enabled
	return errz.NewFormatter(enabled)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatter().Format(err))
		os.Exit(1)
	}
}
