// Command siteplan is a small inspection CLI around the siteplan
// library: it reads a parcel and road network as GeoJSON, runs the
// setback/optimize/proforma pipeline, and writes the result back out
// as GeoJSON plus a metrics JSON file.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error().Err(err).Msg("siteplan failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
