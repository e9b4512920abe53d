package cmd

import (
	"io"
	"os"

	"github.com/anisan-cli/mirai/filesystem"
	"github.com/anisan-cli/mirai/inline"
	"github.com/anisan-cli/mirai/query"
	"github.com/anisan-cli/mirai/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "Search query")
	inlineCmd.Flags().StringP("anime", "a", "", "Anime selector")
	inlineCmd.Flags().StringP("episodes", "e", "", "Episodes selector")
	inlineCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	inlineCmd.Flags().BoolP("include-streams", "V", false, "Resolve stream links of the selected episodes")
	inlineCmd.Flags().StringP("output", "o", "", "Write the output to a file")

	lo.Must0(inlineCmd.MarkFlagRequired("query"))
	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("anime", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"first", "last", "best"}, cobra.ShellCompDirectiveNoFileComp
	}))
}

var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Search, load and resolve streams without interaction",
	Long: `Run search, load and stream resolution for scripts.

Anime selectors:
  first - first result
  last - last result
  best - result whose title is closest to the query
  [number] - result by index (starting from 0)

Episode selectors:
  first - first episode
  last - last episode
  all - every episode
  [number] - episode by index (starting from 0)
  [from]-[to] - episodes by index range
  #[number] - episode by its number
  @[substring]@ - episodes whose name contains substring

With --json the anime selector may be omitted to load every result.`,
	PreRun: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(cmd.MarkFlagRequired("anime"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		sources, err := defaultSources()
		handleErr(err)

		q := lo.Must(cmd.Flags().GetString("query"))

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(file.Close)
			writer = file
		}

		picker := mo.None[inline.Picker]()
		if selector := lo.Must(cmd.Flags().GetString("anime")); selector != "" {
			fn, err := inline.ParsePicker(selector, q)
			handleErr(err)
			picker = mo.Some(fn)
		}

		episodes := mo.None[inline.EpisodesFilter]()
		if selector := lo.Must(cmd.Flags().GetString("episodes")); selector != "" {
			fn, err := inline.ParseEpisodesFilter(selector)
			handleErr(err)
			episodes = mo.Some(fn)
		}

		ctx, cancel := interruptible()
		defer cancel()

		handleErr(inline.Run(ctx, &inline.Options{
			Out:      writer,
			Sources:  sources,
			Json:     lo.Must(cmd.Flags().GetBool("json")),
			Query:    q,
			Picker:   picker,
			Episodes: episodes,
			Streams:  lo.Must(cmd.Flags().GetBool("include-streams")),
		}))
	},
}
