package main

import (
	"encoding/json"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/meridian-civic/siteplan/internal/geom"
	"github.com/meridian-civic/siteplan/internal/setback"
)

func newEnvelopeCmd(logger *zerolog.Logger) *cobra.Command {
	var frontFt, sideFt, rearFt float64

	cmd := &cobra.Command{
		Use:   "envelope <parcel.geojson> <roads.geojson>",
		Short: "Compute the buildable setback envelope for a parcel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parcel, err := readParcel(args[0])
			if err != nil {
				return errors.Wrap(err, "read parcel")
			}
			roads, err := readRoads(args[1])
			if err != nil {
				return errors.Wrap(err, "read roads")
			}

			env, err := setback.ComputeEnvelope(parcel, roads, setback.Feet{
				FrontFt: frontFt, SideFt: sideFt, RearFt: rearFt,
			})
			if err != nil {
				return errors.Wrap(err, "compute envelope")
			}

			logger.Info().Float64("areaM2", env.AreaM2).Int("edges", len(env.Edges)).Msg("envelope computed")
			return writeGeoJSON(os.Stdout, geojson.NewFeature(env.Polygon))
		},
	}
	cmd.Flags().Float64Var(&frontFt, "front-ft", 20, "front setback in feet")
	cmd.Flags().Float64Var(&sideFt, "side-ft", 10, "side setback in feet")
	cmd.Flags().Float64Var(&rearFt, "rear-ft", 15, "rear setback in feet")
	return cmd
}

// readParcel loads the first polygon geometry found in a GeoJSON file.
func readParcel(path string) (orb.Polygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		f, ferr := geojson.UnmarshalFeature(data)
		if ferr != nil {
			return nil, errors.Wrap(err, "not a feature or feature collection")
		}
		fc = geojson.NewFeatureCollection()
		fc.Append(f)
	}
	for _, f := range fc.Features {
		if p, ok := f.Geometry.(orb.Polygon); ok {
			return p, nil
		}
	}
	return nil, errors.New("no polygon geometry found")
}

// readRoads loads every LineString feature, using its "name" property
// (falling back to "unnamed") as the road name.
func readRoads(path string) ([]geom.NamedRoad, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	var roads []geom.NamedRoad
	for _, f := range fc.Features {
		line, ok := f.Geometry.(orb.LineString)
		if !ok {
			continue
		}
		name, _ := f.Properties["name"].(string)
		if name == "" {
			name = "unnamed"
		}
		roads = append(roads, geom.NamedRoad{Name: name, Line: line})
	}
	return roads, nil
}

func writeGeoJSON(w *os.File, f *geojson.Feature) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}
