package cmd

import (
	"os"
	"strconv"

	"github.com/anisan-cli/mirai/color"
	"github.com/anisan-cli/mirai/source"
	"github.com/anisan-cli/mirai/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().StringP("category", "c", "", "Category ID or name, defaults to the first one")
	browseCmd.Flags().IntP("page", "p", 1, "Page number, starting from 1")
	browseCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	browseCmd.SetOut(os.Stdout)
}

var browseCmd = &cobra.Command{
	Use:               "browse <source>",
	Short:             "Show a page of a category listing",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		src, err := openSource(args[0])
		handleErr(err)

		categories := src.Categories()
		category := lo.FirstOrEmpty(categories)
		if name := lo.Must(cmd.Flags().GetString("category")); name != "" {
			c, ok := source.CategoryByID(src, name)
			if !ok {
				handleErr(errUnknownCategory(name, categories))
			}
			category = c
		}

		pageNumber := max(lo.Must(cmd.Flags().GetInt("page")), 1)

		ctx, cancel := interruptible()
		defer cancel()

		page, err := src.Browse(ctx, category, pageNumber)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(printJson(cmd.OutOrStdout(), page))
			return
		}

		cmd.Println(style.Title(category.Name))
		printResults(cmd, page.Results)
		if page.HasNext {
			cmd.Println(style.Faint("more on page " + strconv.Itoa(pageNumber+1)))
		}
	},
}

func printResults(cmd *cobra.Command, results []*source.SearchResult) {
	for i, r := range results {
		line := style.Fg(color.Yellow)(strconv.Itoa(i)) + " " + style.Bold(r.Title)
		if n, ok := r.LatestEpisode.Get(); ok {
			line += " " + style.Fg(color.Cyan)("ep "+strconv.Itoa(n))
		}
		cmd.Println(line + " " + style.Faint(r.Source+" "+r.URL))
	}
}
