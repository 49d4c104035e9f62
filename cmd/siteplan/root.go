package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd(logger zerolog.Logger) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "siteplan",
		Short: "Deterministic urban-infill site planning engine",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger = logger.Level(zerolog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().String("config", "", "path to a YAML config file (viper-bound)")
	viper.BindPFlag("config", root.PersistentFlags().Lookup("config"))

	root.AddCommand(
		newEnvelopeCmd(&logger),
		newOptimizeCmd(&logger),
		newProFormaCmd(&logger),
	)
	return root
}

// loadViperConfig binds a YAML file at path into v, returning an error
// if the file can't be read or parsed; an empty path is not an error
// and yields an empty config.
func loadViperConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return v, nil
}
