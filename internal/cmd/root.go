package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cheerioskun/tinterval/internal/utils"
	"github.com/cheerioskun/tinterval/temporal"
	"github.com/cheerioskun/tinterval/ui/timeline"
)

var (
	cfgFile string

	// appFs backs config loading and scanning
	appFs afero.Fs = afero.NewOsFs()
	// clock supplies "now" to every parser the commands build
	clock temporal.Clock = temporal.SystemClock{}
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tinterval",
	Short: "Inspect, compare and scan half-open time intervals",
	Long: `tinterval works with half-open time intervals [start, end) written in
ISO-8601 interval notation, e.g. 2024-01-01T00:00:00Z/2024-01-02T00:00:00Z.

The start is inclusive and the end exclusive, so back-to-back intervals
never overlap.

Settings can be given as flags, as TINTERVAL_* environment variables or in
a .tinterval.yaml file in the working directory or $HOME.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .tinterval.yaml in . or $HOME)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.String("log-file", utils.DefaultLogPath, "log file path")
	flags.String("unit", "millisecond", "comparison granularity (ms, s, m, h, d, w, M, y)")
	flags.String("format", temporal.DefaultFormat, "pattern used to display bounds")
	flags.String("location", "UTC", "time zone for display and for input without an offset")
	flags.Int("width", timeline.DefaultWidth, "timeline width in cells")

	bindFlags()
}

// bindFlags wires the persistent flags and environment into viper
func bindFlags() {
	for _, name := range []string{"verbose", "log-file", "unit", "format", "location", "width"} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
	viper.SetEnvPrefix("TINTERVAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// initConfig reads the config file (if any) and sets up logging
func initConfig(cmd *cobra.Command, args []string) error {
	viper.SetFs(appFs)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".tinterval")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := utils.Init(viper.GetString("log-file"), viper.GetBool("verbose")); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		utils.Debug("using config file %s", used)
	}
	utils.Debug("running %s %v", cmd.CommandPath(), args)
	return nil
}
