package cmd

import (
	"github.com/spf13/cobra"

	"github.com/robalobadob/hintle/internal/config"
)

// Execute runs the hintle command line.
func Execute() error {
	return newRootCmd().Execute()
}

// overrides are the flags that win over the environment.
type overrides struct {
	length  int
	offline bool
	port    string
}

func (o overrides) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("length") {
		cfg.WordLength = o.length
	}
	if cmd.Flags().Changed("offline") {
		cfg.Offline = o.offline
	}
	if f := cmd.Flags().Lookup("port"); f != nil && f.Changed {
		cfg.Port = o.port
	}
}

func newRootCmd() *cobra.Command {
	var o overrides

	rootCmd := &cobra.Command{
		Use:           "hintle",
		Short:         "hintle: a word-guessing game with a hint assistant",
		Long:          "hintle serves a Wordle-style game over HTTP (serve) or plays it in the terminal (play). Guesses are checked against a dictionary, and an assistant answers questions about the hidden word.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().IntVar(&o.length, "length", 5, "word length (4-8)")
	rootCmd.PersistentFlags().BoolVar(&o.offline, "offline", false, "use the embedded word list instead of online lookups")

	rootCmd.AddCommand(
		newServeCmd(&o),
		newPlayCmd(&o),
	)
	return rootCmd
}

// loadConfig reads the environment, applies flags, sets up logging and
// validates the result.
func loadConfig(cmd *cobra.Command, o *overrides) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	o.apply(cmd, &cfg)
	setupLogging(cfg, cmd.ErrOrStderr())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
