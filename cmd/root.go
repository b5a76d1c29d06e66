/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"postfeed/config"
)

func RootApp() *cli.App {
	return &cli.App{
		Name:  "postfeed",
		Usage: "Turn a Facebook post export into a website news feed",
		Description: `Reads the posts file of a Facebook data export and writes a
		small JSON feed with the most recent posts for the website.

		Posts with too little text are left out, text mangled by the export's
		double encoding is repaired and the first image of every post is
		pointed at the website's image directory.

		Flags can generally be set via environment variables, e.g.:

		--input => POSTFEED_INPUT=export/your_posts_1.json
		--max-posts => POSTFEED_MAX_POSTS=20
		`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "postfeed.toml",
				Usage:   "Path to the TOML configuration file, optional unless set explicitly",
				EnvVars: []string{"POSTFEED_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (trace, debug, info, warn, error)",
				EnvVars: []string{"POSTFEED_LOG_LEVEL"},
			},
		},
		Before: func(ctx *cli.Context) error {
			level, err := log.ParseLevel(ctx.String("log-level"))
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			buildCmd(),
			sitemapCmd(),
			showCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return cli.ShowAppHelp(ctx)
		},
	}
}

// Execute runs the app with the process arguments and exits non-zero on failure
func Execute() {
	log.SetOutput(os.Stderr)

	if err := RootApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig only insists on the config file existing when it was asked for
func loadConfig(ctx *cli.Context) (*config.TomlConfig, error) {
	path := ctx.String("config")
	if ctx.IsSet("config") {
		return config.LoadConfig(path)
	}
	return config.LoadOptional(path)
}
