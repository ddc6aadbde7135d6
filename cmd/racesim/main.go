package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/san-kum/racesim/internal/catalog"
	"github.com/san-kum/racesim/internal/log"
	"github.com/san-kum/racesim/internal/report"
	"github.com/san-kum/racesim/internal/stage"
	"github.com/san-kum/racesim/internal/tui"
)

const envPrefix = "RACESIM"

type options struct {
	configFile  string
	catalogPath string
	logLevel    string
	logFormat   string

	samples int
	span    float64
	png     string
	noChart bool

	preset     string
	saveConfig string
	vehicles   string
	boost      string
	wing       string
	skirt      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:          "racesim",
		Short:        "four-stage vehicle course simulator",
		Long:         "Runs the selected vehicles through a ramp launch, a loop, a jump and a run-out, then reports each stage.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(cmd, v)
			return log.Init(opts.logLevel, opts.logFormat)
		},
		// Without a subcommand the selection is asked interactively.
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cat, err := loadSetup(cmd, opts)
			if err != nil {
				return err
			}
			sel, err := tui.Run(cat)
			if err != nil {
				return err
			}
			return simulate(cmd, cfg, cat, sel)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "run configuration file (yaml)")
	pf.StringVar(&opts.catalogPath, "catalog", "", "vehicle catalog file replacing the built-in table (yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")
	pf.IntVar(&opts.samples, "samples", stage.DefaultSamples, "samples per stage grid")
	pf.Float64Var(&opts.span, "span", stage.DefaultSpan, "time span of each stage grid in seconds")
	pf.StringVar(&opts.png, "png", "", "also write the stage plots as a 2x2 PNG grid to this file")
	pf.BoolVar(&opts.noChart, "no-chart", false, "skip the ascii charts")

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newVehiclesCmd(opts))
	rootCmd.AddCommand(newPresetsCmd())

	return rootCmd
}

func newVehiclesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "vehicles",
		Short: "list the vehicle catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(opts.catalogPath)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), report.CatalogTable(cat))
			return err
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list named vehicle selections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), report.PresetTable())
			return err
		},
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// Bind each cobra flag to its viper key so RACESIM_<FLAG> environment
// variables act as flag defaults.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v\n", f.Name, err)
			}
		}
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not set flag value for %s: %v\n", f.Name, err)
			}
		}
	})
}
