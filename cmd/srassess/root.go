package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/caio-sobreiro/srassess/config"
	"github.com/caio-sobreiro/srassess/pipeline"
	"github.com/caio-sobreiro/srassess/sr"
)

func newRootCmd() *cobra.Command {
	v := config.New()
	var configFile string
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:   "srassess",
		Short: "Filter AI result findings and write an approval status report",
		Long: `Reads an IHE AIR (TID 1500) structured report, prints its measurement
tree, removes the findings at the given positions of the "Image
Measurements" container and writes two new reports: the filtered result
and an approval status object referencing both the filtered and the
original report.`,
		Example:       `  srassess -i result.dcm -f filtered.dcm -a assessment.dcm --remove 0,7`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(v, configFile)
			if err != nil {
				return err
			}
			return setupLogging(cmd.ErrOrStderr(), cfg)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAssess(cmd, cfg, v.IsSet(config.KeyRemove))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (YAML, TOML or JSON)")
	flags.BoolP("verbose", "v", false, "log debug output")
	flags.String("log-format", "console", "log format: console or json")
	bindFlag(v, config.KeyVerbose, flags.Lookup("verbose"))
	bindFlag(v, config.KeyLogFormat, flags.Lookup("log-format"))

	local := cmd.Flags()
	local.StringP("input", "i", "", "input structured report")
	local.StringP("filtered", "f", "", "output path of the filtered report")
	local.StringP("assessment", "a", "", "output path of the approval status report")
	local.String("remove", "", `comma separated finding positions to remove, "" keeps all`)
	local.Bool("per-observation", false, "write one result assessment per remaining observation")
	bindFlag(v, config.KeyInput, local.Lookup("input"))
	bindFlag(v, config.KeyFiltered, local.Lookup("filtered"))
	bindFlag(v, config.KeyAssessment, local.Lookup("assessment"))
	bindFlag(v, config.KeyRemove, local.Lookup("remove"))
	bindFlag(v, config.KeyPerObservation, local.Lookup("per-observation"))

	cmd.AddCommand(newWalkCmd(), newUIDsCmd())
	return cmd
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

func runAssess(cmd *cobra.Command, cfg *config.Config, removeSet bool) error {
	if !removeSet {
		return fmt.Errorf(`finding positions are required: pass --remove (use --remove "" to keep every finding)`)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := pipeline.FromConfig(cfg)
	if err != nil {
		return err
	}
	opts.Trace = cmd.OutOrStdout()

	result, err := pipeline.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "filtered:   %s (%s)\n", cfg.Filtered, result.FilteredSOPInstanceUID)
	fmt.Fprintf(out, "assessment: %s (%s)\n", cfg.Assessment, result.AssessmentSOPInstanceUID)
	fmt.Fprintf(out, "observations: %d original, %d remaining\n",
		len(result.OriginalObservations), len(result.FilteredObservations))
	return nil
}

func newWalkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "walk FILE",
		Short: `Print the "Image Measurements" tree of a structured report`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := sr.Read(args[0])
			if err != nil {
				return err
			}
			if doc.Content == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No content sequence found in the structured report.")
				return nil
			}
			return sr.WriteTrace(cmd.OutOrStdout(), doc.Content)
		},
	}
}

func newUIDsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uids FILE",
		Short: "List the observation UIDs of the findings in a structured report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := sr.Read(args[0])
			if err != nil {
				return err
			}
			for _, u := range doc.ObservationUIDs() {
				fmt.Fprintln(cmd.OutOrStdout(), u)
			}
			return nil
		},
	}
}

// setupLogging configures the global zerolog logger used by every package.
func setupLogging(w io.Writer, cfg *config.Config) error {
	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	switch cfg.LogFormat {
	case "json":
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	case "", "console":
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	default:
		return fmt.Errorf("log format must be \"console\" or \"json\", got %q", cfg.LogFormat)
	}
	return nil
}
