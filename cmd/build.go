/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"postfeed/feeds"
)

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Build the website feed from a post export",
		Description: `Loads the exported posts, keeps the ones with enough text,
sorts them newest first and writes them as a JSON array.

Values from the configuration file are overridden by flags.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Exported posts JSON file",
				EnvVars: []string{"POSTFEED_INPUT"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Feed JSON file to write",
				EnvVars: []string{"POSTFEED_OUTPUT"},
			},
			&cli.IntFlag{
				Name:    "min-text-length",
				Usage:   "Minimum number of characters of post text",
				EnvVars: []string{"POSTFEED_MIN_TEXT_LENGTH"},
			},
			&cli.IntFlag{
				Name:    "max-posts",
				Usage:   "Maximum number of posts in the feed, 0 for no limit",
				EnvVars: []string{"POSTFEED_MAX_POSTS"},
			},
			&cli.StringFlag{
				Name:    "image-prefix",
				Usage:   "Path local images are served from",
				EnvVars: []string{"POSTFEED_IMAGE_PREFIX"},
			},
			&cli.StringFlag{
				Name:    "metrics",
				Usage:   "Write build counters to this file in Prometheus text format",
				EnvVars: []string{"POSTFEED_METRICS"},
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			feedCfg := cfg.Feed
			if ctx.IsSet("input") {
				feedCfg.InputPath = ctx.String("input")
			}
			if ctx.IsSet("output") {
				feedCfg.OutputPath = ctx.String("output")
			}
			if ctx.IsSet("min-text-length") {
				feedCfg.MinTextLength = ctx.Int("min-text-length")
			}
			if ctx.IsSet("max-posts") {
				feedCfg.MaxPosts = ctx.Int("max-posts")
			}
			if ctx.IsSet("image-prefix") {
				feedCfg.ImagePrefix = ctx.String("image-prefix")
			}
			if ctx.IsSet("metrics") {
				feedCfg.MetricsPath = ctx.String("metrics")
			}

			if err := feedCfg.Validate(); err != nil {
				return fmt.Errorf("invalid feed configuration: %w", err)
			}

			out := ctx.App.Writer

			fmt.Fprintf(out, "Loading posts from %s...\n", feedCfg.InputPath)
			raw, err := feeds.Load(feedCfg.InputPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Total posts in file: %d\n", len(raw))

			metrics := feeds.NewMetrics()
			builder := feeds.NewFeedBuilder(feeds.Options{
				MinTextLength: feedCfg.MinTextLength,
				MaxPosts:      feedCfg.MaxPosts,
				ImagePrefix:   feedCfg.ImagePrefix,
				Metrics:       metrics,
			})
			posts := builder.Build(raw)
			fmt.Fprintf(out, "Processed %d posts with substantial content\n", len(posts))

			fmt.Fprintf(out, "Writing to %s...\n", feedCfg.OutputPath)
			if err := feeds.Write(feedCfg.OutputPath, posts); err != nil {
				return err
			}

			if feedCfg.MetricsPath != "" {
				if err := metrics.WriteTextfile(feedCfg.MetricsPath); err != nil {
					return err
				}
			}

			log.WithFields(log.Fields{
				"input":  feedCfg.InputPath,
				"output": feedCfg.OutputPath,
				"loaded": len(raw),
				"posts":  len(posts),
			}).Info("Feed built")

			fmt.Fprintf(out, "✓ Successfully created %s\n", feedCfg.OutputPath)
			fmt.Fprintf(out, "✓ Included %d posts\n", len(posts))

			if len(posts) > 0 {
				sample := posts[0]
				image := "None"
				if sample.ImageUrl != nil {
					image = *sample.ImageUrl
				}
				fmt.Fprintln(out, "\nSample post (most recent):")
				fmt.Fprintf(out, "  Date: %s\n", sample.Date)
				fmt.Fprintf(out, "  Text: %s...\n", feeds.Preview(sample.Text, 100))
				fmt.Fprintf(out, "  Image: %s\n", image)
			}

			return nil
		},
	}
}
