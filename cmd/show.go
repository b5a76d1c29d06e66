/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"postfeed/feeds"
)

func showCmd() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the posts of a built feed",
		Description: `Prints the newest posts of a feed the way the website lists
them, with the text cut short at a word boundary.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "feed",
				Aliases: []string{"f"},
				Usage:   "Feed JSON file written by the build command",
				EnvVars: []string{"POSTFEED_OUTPUT"},
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Value:   8,
				Usage:   "Number of posts to print",
			},
			&cli.IntFlag{
				Name:  "width",
				Value: 150,
				Usage: "Maximum number of characters of text per post",
			},
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Only print posts containing this text",
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

			posts, err := feeds.ReadFeed(feedPath)
			if err != nil {
				return err
			}

			matched := feeds.Search(posts, ctx.String("search"))
			out := ctx.App.Writer
			fmt.Fprintf(out, "%d of %d posts\n", len(matched), len(posts))

			limit := ctx.Int("limit")
			if limit > 0 && len(matched) > limit {
				matched = matched[:limit]
			}

			for _, post := range matched {
				fmt.Fprintf(out, "\n%s  %s\n", post.Date, post.Id)
				fmt.Fprintf(out, "  %s\n", feeds.Truncate(post.Text, ctx.Int("width")))
				if post.ImageUrl != nil {
					fmt.Fprintf(out, "  Image: %s\n", *post.ImageUrl)
				}
			}

			return nil
		},
	}
}
