package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	siteplan "github.com/meridian-civic/siteplan"
)

func newProFormaCmd(logger *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proforma <inputs.yaml>",
		Short: "Run the development pro forma over a set of inputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadViperConfig(args[0])
			if err != nil {
				return errors.Wrap(err, "load config")
			}

			var in siteplan.ProFormaInputs
			if err := v.Unmarshal(&in); err != nil {
				return errors.Wrap(err, "decode config")
			}

			result := siteplan.ProForma(in)
			logger.Info().
				Float64("noi", result.NOI).
				Float64("yieldOnCost", result.YieldOnCost).
				Msg("proforma computed")

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	return cmd
}
