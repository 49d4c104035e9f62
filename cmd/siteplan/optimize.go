package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	siteplan "github.com/meridian-civic/siteplan"
	"github.com/meridian-civic/siteplan/internal/model"
	"github.com/meridian-civic/siteplan/internal/scene"
	"github.com/meridian-civic/siteplan/internal/setback"
)

// optimizeFileConfig is the YAML shape viper decodes a run config into,
// via mapstructure, before converting it to the model structs
// Optimize actually takes.
type optimizeFileConfig struct {
	Parcel   string   `mapstructure:"parcel"`
	Roads    string   `mapstructure:"roads"`
	Setbacks setback.Feet `mapstructure:"setbacks"`

	Zoning model.ZoningLimits `mapstructure:"zoning"`
	Design model.DesignConfig `mapstructure:"design"`

	MaxIterations int   `mapstructure:"maxIterations"`
	Seed          int64 `mapstructure:"seed"`
}

func newOptimizeCmd(logger *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize <config.yaml> [config2.yaml ...]",
		Short: "Run the simulated-annealing layout search for one or more configured parcels",
		Long: "Runs each scenario's own Optimize call. Multiple scenarios run " +
			"concurrently, one goroutine per scenario, each against its own " +
			"decoded config; the optimizer itself stays single-threaded per call.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ctx := errgroup.WithContext(cmd.Context())
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					return runOptimizeScenario(ctx, *logger, path, i)
				})
			}
			return g.Wait()
		},
	}
	return cmd
}

// runOptimizeScenario loads, runs, and writes one scenario. idx selects
// the output filenames when more than one scenario is given so
// concurrent runs never clobber each other's output.
func runOptimizeScenario(ctx context.Context, logger zerolog.Logger, path string, idx int) error {
	logger = logger.With().Str("scenario", path).Logger()

	v, err := loadViperConfig(path)
	if err != nil {
		return errors.Wrapf(err, "load config %s", path)
	}

	var fc optimizeFileConfig
	if err := v.Unmarshal(&fc, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc())); err != nil {
		return errors.Wrapf(err, "decode config %s", path)
	}

	parcel, err := readParcel(fc.Parcel)
	if err != nil {
		return errors.Wrap(err, "read parcel")
	}
	roads, err := readRoads(fc.Roads)
	if err != nil {
		return errors.Wrap(err, "read roads")
	}

	env, err := setback.ComputeEnvelope(parcel, roads, fc.Setbacks)
	if err != nil {
		return errors.Wrap(err, "compute envelope")
	}

	res, err := siteplan.Optimize(ctx, env, fc.Zoning, fc.Design, fc.Design.Parking,
		siteplan.WithLogger(logger),
		siteplan.WithSeed(fc.Seed),
		siteplan.WithMaxIterations(fc.MaxIterations),
	)
	if err != nil {
		return errors.Wrap(err, "optimize")
	}

	logger.Info().
		Float64("far", res.Metrics.FAR).
		Int("stallsProvided", res.Metrics.StallsProvided).
		Bool("zoningCompliant", res.Metrics.ZoningCompliant).
		Msg("optimize complete")

	sc := scene.Assemble(env.Polygon, res.Buildings, res.Parking)

	fcOut := geojson.NewFeatureCollection()
	for _, el := range sc.Elements {
		f := geojson.NewFeature(el.Geometry)
		f.Properties["id"] = el.ID
		f.Properties["type"] = string(el.Type)
		f.Properties["areaSqFt"] = el.Properties.AreaSqFt
		fcOut.Append(f)
	}

	sceneName, metricsName := "scene.json", "metrics.json"
	if idx > 0 {
		sceneName = fmt.Sprintf("scene-%d.json", idx)
		metricsName = fmt.Sprintf("metrics-%d.json", idx)
	}

	sceneOut, err := os.Create(sceneName)
	if err != nil {
		return errors.Wrapf(err, "create %s", sceneName)
	}
	defer sceneOut.Close()
	sceneEnc := json.NewEncoder(sceneOut)
	sceneEnc.SetIndent("", "  ")
	if err := sceneEnc.Encode(fcOut); err != nil {
		return errors.Wrap(err, "encode scene")
	}

	metricsOut, err := os.Create(metricsName)
	if err != nil {
		return errors.Wrapf(err, "create %s", metricsName)
	}
	defer metricsOut.Close()
	metricsEnc := json.NewEncoder(metricsOut)
	metricsEnc.SetIndent("", "  ")
	return metricsEnc.Encode(res.Metrics)
}
