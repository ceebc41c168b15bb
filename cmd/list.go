package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/gruntjs-updater/transifex-keyvaluejson/config"
	"github.com/gruntjs-updater/transifex-keyvaluejson/credentials"
	"github.com/gruntjs-updater/transifex-keyvaluejson/download"
	"github.com/gruntjs-updater/transifex-keyvaluejson/transifex"
)

var localesCmd = &cobra.Command{
	Use:          "locales",
	Short:        "Lists the locales available on a resource.",
	Example:      "./txkv locales -p my-project -r frontend",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		downloadService, logger, err := newService()
		if err != nil {
			return err
		}
		defer logger.Sync()

		codes, err := downloadService.ListLocales(cmd.Context())
		if err != nil {
			return err
		}

		for _, code := range codes {
			fmt.Fprintln(cmd.OutOrStdout(), code)
		}
		return nil
	},
}

var resourcesCmd = &cobra.Command{
	Use:          "resources",
	Short:        "Lists the resource slugs of a project.",
	Example:      "./txkv resources -p my-project",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := config.Load()
		if err != nil {
			return err
		}

		creds, err := credentials.Resolve(env)
		if err != nil {
			return err
		}

		client := transifex.NewClient(env.BaseURL, creds, &http.Client{
			Timeout: time.Second * time.Duration(downloadOpts.Timeout),
		})

		slugs, err := download.ListResources(cmd.Context(), client, downloadOpts.Project)
		if err != nil {
			return err
		}

		for _, slug := range slugs {
			fmt.Fprintln(cmd.OutOrStdout(), slug)
		}
		return nil
	},
}
