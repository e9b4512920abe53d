package cmd

import (
	"os"
	"strings"

	"github.com/anisan-cli/mirai/icon"
	"github.com/anisan-cli/mirai/inline"
	"github.com/anisan-cli/mirai/query"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	searchCmd.SetOut(os.Stdout)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search every selected source and merge the results",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		sources, err := defaultSources()
		handleErr(err)

		ctx, cancel := interruptible()
		defer cancel()

		q := strings.Join(args, " ")
		results := inline.Search(ctx, sources, q)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(printJson(cmd.OutOrStdout(), results))
			return
		}

		if len(results) == 0 {
			cmd.Printf("%s nothing found for %q\n", icon.Get(icon.Warn), q)
			return
		}

		printResults(cmd, results)
	},
}
