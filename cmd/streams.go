package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/anisan-cli/mirai/color"
	"github.com/anisan-cli/mirai/icon"
	"github.com/anisan-cli/mirai/player"
	"github.com/anisan-cli/mirai/source"
	"github.com/anisan-cli/mirai/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(streamsCmd)

	streamsCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	streamsCmd.Flags().BoolP("play", "p", false, "Play a link with the configured player")
	streamsCmd.Flags().BoolP("pick", "k", false, "Choose the link to play interactively instead of taking the best one")
	streamsCmd.Flags().StringP("title", "t", "", "Title shown by the player")
	streamsCmd.MarkFlagsMutuallyExclusive("json", "pick")
	streamsCmd.SetOut(os.Stdout)
}

var streamsCmd = &cobra.Command{
	Use:               "streams <source> <episode data>",
	Short:             "Resolve the stream links of an episode",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		src, err := openSource(args[0])
		handleErr(err)

		ctx, cancel := interruptible()
		defer cancel()

		report, err := src.Streams(ctx, args[1])
		handleErr(err)
		report.SortByQuality()

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(printJson(cmd.OutOrStdout(), report))
		} else {
			printReport(cmd, report)
		}

		pick := lo.Must(cmd.Flags().GetBool("pick"))
		if !lo.Must(cmd.Flags().GetBool("play")) && !pick {
			return
		}

		if len(report.Links) == 0 {
			handleErr(errors.New("no playable links"))
		}

		link := report.Links[0]
		if pick {
			link, err = pickLink(report.Links)
			handleErr(err)
		}

		p, err := player.Default()
		handleErr(err)
		CheckDependencies(p)

		title := lo.Must(cmd.Flags().GetString("title"))
		handleErr(p.Play(ctx, link, lo.CoalesceOrEmpty(title, link.Name)))
	},
}

func printReport(cmd *cobra.Command, report *source.StreamReport) {
	for _, link := range report.Links {
		cmd.Printf("%s %s %s %s\n",
			icon.Get(icon.Link),
			style.Fg(color.Yellow)(link.Quality.String()),
			style.Bold(link.Name),
			link.URL,
		)
		for _, sub := range link.Subtitles {
			cmd.Printf("  %s %s %s\n", icon.Get(icon.Subtitle), sub.Label, style.Faint(sub.URL))
		}
	}

	for _, outcome := range report.Failed() {
		cmd.Printf("%s %s %s\n", icon.Get(icon.Warn), style.Fg(color.Red)(outcome.Mirror), style.Faint(outcome.Error))
	}
}

func pickLink(links []*source.StreamLink) (*source.StreamLink, error) {
	options := lo.Map(links, func(l *source.StreamLink, i int) string {
		return fmt.Sprintf("%d. %s %s", i+1, l.Name, l.Quality)
	})

	var chosen int
	err := survey.AskOne(&survey.Select{
		Message: "Stream",
		Options: options,
	}, &chosen)
	if err != nil {
		return nil, err
	}

	return links[chosen], nil
}
