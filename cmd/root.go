package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gruntjs-updater/transifex-keyvaluejson/config"
	"github.com/gruntjs-updater/transifex-keyvaluejson/credentials"
	"github.com/gruntjs-updater/transifex-keyvaluejson/download"
)

var (
	downloadOpts download.Options
	locales      string
	mode         string
)

var rootCmd = &cobra.Command{
	Use:          "txkv",
	Short:        "Downloads string translations from Transifex as key/value JSON files, one per locale.",
	Example:      "./txkv -p my-project -r frontend -l en,es -d ./translations --mode reviewed",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		downloadService, logger, err := newService()
		if err != nil {
			return err
		}
		defer logger.Sync()

		result, err := downloadService.Download(cmd.Context())
		if err != nil {
			return err
		}

		logger.Infow("Download complete", "locales", result.Locales, "dest", downloadOpts.Dest)
		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

// newService builds the download service from the flags and the environment.
func newService() (*download.Service, *zap.SugaredLogger, error) {
	env, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(env)
	if err != nil {
		return nil, nil, err
	}

	creds, err := credentials.Resolve(env)
	if err != nil {
		logger.Sync()
		return nil, nil, err
	}

	opts := downloadOpts
	opts.Locales = download.ParseLocales(locales)
	opts.Mode = download.Mode(mode)
	opts.Credentials = creds
	opts.BaseURL = env.BaseURL

	svc, err := download.NewService(opts, logger)
	if err != nil {
		logger.Sync()
		return nil, nil, err
	}

	return svc, logger, nil
}

func newLogger(env config.Env) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(env.LogLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&downloadOpts.Project, "project", "p", "", "Transifex project slug")
	flags.StringVarP(&downloadOpts.Resource, "resource", "r", "", "Transifex resource slug")
	flags.UintVarP(&downloadOpts.Timeout, "timeout", "t", 30, "timeout for each request in seconds (0 disables it)")

	rootCmd.Flags().StringVarP(&locales, "locales", "l", download.AllLocales, `comma-separated locale codes, or "*" for every available locale`)
	rootCmd.Flags().StringVarP(&downloadOpts.Dest, "dest", "d", "./translations", "destination directory")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", string(download.ModeDefault), "download mode: default, reviewed, translator, onlytranslated, onlyreviewed")

	rootCmd.MarkPersistentFlagRequired("project")

	rootCmd.AddCommand(localesCmd, resourcesCmd)
}
