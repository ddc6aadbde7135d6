package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/racesim/internal/catalog"
	"github.com/san-kum/racesim/internal/config"
	"github.com/san-kum/racesim/internal/log"
	"github.com/san-kum/racesim/internal/report"
	"github.com/san-kum/racesim/internal/resolve"
	"github.com/san-kum/racesim/internal/sim"
	"github.com/san-kum/racesim/internal/stage"
)

func newRunCmd(opts *options) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the course without prompting",
		Example: "  racesim run --vehicles dodge,supra --boost a --wing oui --skirt non\n" +
			"  racesim run --preset jdm --no-chart",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cat, err := loadSetup(cmd, opts)
			if err != nil {
				return err
			}
			sel, err := selection(cmd, opts, cfg, cat)
			if err != nil {
				return err
			}
			if opts.saveConfig != "" {
				cfg.Selection = sel
				if err := config.Save(opts.saveConfig, cfg); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				log.Logger.Info("saved run configuration", zap.String("path", opts.saveConfig))
			}
			return simulate(cmd, cfg, cat, sel)
		},
	}

	f := runCmd.Flags()
	f.StringVar(&opts.vehicles, "vehicles", "", "comma separated vehicle names")
	f.StringVar(&opts.boost, "boost", "n", "stage to boost (a, b, c, d or n)")
	f.StringVar(&opts.wing, "wing", "non", "fit a wing (oui/non)")
	f.StringVar(&opts.skirt, "skirt", "non", "fit a skirt (oui/non)")
	f.StringVar(&opts.preset, "preset", "", "named selection, see 'racesim presets'")
	f.StringVar(&opts.saveConfig, "save-config", "", "write the effective run configuration to this file (yaml)")

	return runCmd
}

// loadSetup reads the run configuration and applies flag overrides to it.
func loadSetup(cmd *cobra.Command, opts *options) (*config.Config, *catalog.Catalog, error) {
	cfg := config.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := config.Load(opts.configFile)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	for _, g := range []*stage.Grid{&cfg.Grids.A, &cfg.Grids.B, &cfg.Grids.C, &cfg.Grids.D} {
		if flags.Changed("samples") {
			g.Samples = opts.samples
		}
		if flags.Changed("span") {
			g.Span = opts.span
		}
	}
	if flags.Changed("catalog") || cfg.Catalog == "" {
		cfg.Catalog = opts.catalogPath
	}
	if opts.png != "" {
		cfg.Chart.PNG = opts.png
	}
	if opts.noChart {
		cfg.Chart.Disabled = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cat, nil
}

// selection picks the vehicles from --vehicles, then --preset, then the
// configuration file. Boost and add-on flags given explicitly override the
// preset or file.
func selection(cmd *cobra.Command, opts *options, cfg *config.Config, cat *catalog.Catalog) (resolve.Selection, error) {
	if opts.vehicles != "" {
		return resolve.Answers{
			Vehicles: opts.vehicles,
			Boost:    opts.boost,
			Wing:     opts.wing,
			Skirt:    opts.skirt,
		}.Selection(cat)
	}

	sel := cfg.Selection
	if opts.preset != "" {
		p, ok := config.GetPreset(opts.preset)
		if !ok {
			return resolve.Selection{}, fmt.Errorf("unknown preset %q (see 'racesim presets')", opts.preset)
		}
		sel = p
	}
	if len(sel.Vehicles) == 0 {
		return resolve.Selection{}, fmt.Errorf("%w: use --vehicles, --preset or a config file", resolve.ErrNoVehicles)
	}

	flags := cmd.Flags()
	if flags.Changed("boost") {
		b, ok := resolve.ParseBoost(opts.boost)
		if !ok {
			log.Logger.Warn("invalid boost choice, boost disabled", zap.String("answer", opts.boost))
		}
		sel.Boost = b
	}
	if flags.Changed("wing") {
		sel.Wing = answerFlag("wing", opts.wing)
	}
	if flags.Changed("skirt") {
		sel.Skirt = answerFlag("skirt", opts.skirt)
	}
	return sel, nil
}

func answerFlag(name, answer string) bool {
	yes, ok := resolve.ParseAnswer(answer)
	if !ok {
		log.Logger.Warn("invalid answer, add-on not fitted", zap.String("addon", name), zap.String("answer", answer))
	}
	return yes
}

type progressLogger struct{}

func (progressLogger) OnStage(vehicle string, out *stage.Outcome, rec sim.TerminalRecord) {
	log.Logger.Info("stage done",
		zap.String("vehicle", vehicle),
		zap.Stringer("stage", out.Stage),
		zap.Bool("reached", out.Reached()),
		zap.Float64("elapsed", rec.Elapsed))
}

func simulate(cmd *cobra.Command, cfg *config.Config, cat *catalog.Catalog, sel resolve.Selection) error {
	res, err := resolve.Resolve(sel, cat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	simulator := sim.New(cfg.Runner())
	simulator.AddObserver(progressLogger{})

	result, err := simulator.Run(ctx, res.Vehicles)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := report.WriteStageTables(out, result); err != nil {
		return err
	}
	if !cfg.Chart.Disabled {
		if _, err := fmt.Fprintln(out, report.ChartGrid(result, cfg.Chart.Width, cfg.Chart.Height)); err != nil {
			return err
		}
	}
	if cfg.Chart.PNG != "" {
		if err := report.WritePNG(cfg.Chart.PNG, result); err != nil {
			return err
		}
		log.Logger.Info("wrote stage plots", zap.String("path", cfg.Chart.PNG))
	}
	return nil
}
