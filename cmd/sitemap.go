/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"postfeed/feeds"
	"postfeed/sitemap"
)

func sitemapCmd() *cli.Command {
	return &cli.Command{
		Name:  "sitemap",
		Usage: "Generate the website sitemap from a built feed",
		Description: `Writes a sitemap.xml listing the static pages and a news page
for every post of the feed, once per website language.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "feed",
				Aliases: []string{"f"},
				Usage:   "Feed JSON file written by the build command",
				EnvVars: []string{"POSTFEED_OUTPUT"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Sitemap XML file to write",
				EnvVars: []string{"POSTFEED_SITEMAP_OUTPUT"},
			},
			&cli.StringFlag{
				Name:    "site-url",
				Usage:   "Base URL of the website",
				EnvVars: []string{"POSTFEED_SITE_URL"},
			},
			&cli.StringSliceFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "Website language, can be repeated",
				EnvVars: []string{"POSTFEED_LANGUAGES"},
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			feedPath := cfg.Feed.OutputPath
			if ctx.IsSet("feed") {
				feedPath = ctx.String("feed")
			}

			siteCfg := cfg.Sitemap
			if ctx.IsSet("output") {
				siteCfg.OutputPath = ctx.String("output")
			}
			if ctx.IsSet("site-url") {
				siteCfg.SiteUrl = ctx.String("site-url")
			}
			if ctx.IsSet("language") {
				siteCfg.Languages = ctx.StringSlice("language")
			}

			if err := siteCfg.Validate(); err != nil {
				return fmt.Errorf("invalid sitemap configuration: %w", err)
			}

			out := ctx.App.Writer
			fmt.Fprintln(out, "Generating sitemap...")

			posts, err := feeds.ReadFeed(feedPath)
			if err != nil {
				return err
			}

			site := sitemap.Site{
				BaseUrl:     siteCfg.SiteUrl,
				Languages:   siteCfg.Languages,
				StaticPages: siteCfg.StaticPages,
			}
			data, count, err := site.Generate(posts, time.Now())
			if err != nil {
				return err
			}

			if err := feeds.WriteFile(siteCfg.OutputPath, data); err != nil {
				return err
			}

			log.WithFields(log.Fields{
				"feed":   feedPath,
				"output": siteCfg.OutputPath,
				"posts":  len(posts),
				"urls":   count,
			}).Info("Sitemap generated")

			fmt.Fprintf(out, "✓ Sitemap generated successfully at %s\n", siteCfg.OutputPath)
			fmt.Fprintf(out, "✓ Total URLs: %d\n", count)

			return nil
		},
	}
}
