package cmd

import (
	"fmt"
	"os"

	"github.com/anisan-cli/mirai/color"
	"github.com/anisan-cli/mirai/provider"
	"github.com/anisan-cli/mirai/source"
	"github.com/anisan-cli/mirai/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Inspect the built-in sources",
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)

	sourcesListCmd.Flags().BoolP("raw", "r", false, "Print IDs only")
	sourcesListCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	sourcesListCmd.MarkFlagsMutuallyExclusive("raw", "json")
	sourcesListCmd.SetOut(os.Stdout)
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered sources",
	Run: func(cmd *cobra.Command, args []string) {
		providers := provider.Builtins()

		switch {
		case lo.Must(cmd.Flags().GetBool("json")):
			type entry struct {
				ID   string `json:"id"`
				Name string `json:"name"`
				Lang string `json:"lang"`
			}
			handleErr(printJson(cmd.OutOrStdout(), lo.Map(providers, func(p *provider.Provider, _ int) entry {
				return entry{ID: p.ID, Name: p.Name, Lang: p.Lang}
			})))
		case lo.Must(cmd.Flags().GetBool("raw")):
			for _, p := range providers {
				cmd.Println(p.ID)
			}
		default:
			cmd.Println(style.New().Foreground(color.HiBlue).Bold(true).Render("Builtin:"))
			for _, p := range providers {
				cmd.Printf("%s %s %s\n", style.Fg(color.Purple)(p.ID), p.Name, style.Faint("("+p.Lang+")"))
			}
		}
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesCategoriesCmd)
	sourcesCategoriesCmd.SetOut(os.Stdout)
}

var sourcesCategoriesCmd = &cobra.Command{
	Use:               "categories <source>",
	Short:             "List the browsable categories of a source",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		src, err := openSource(args[0])
		handleErr(err)

		lo.ForEach(src.Categories(), func(c source.Category, _ int) {
			cmd.Println(fmt.Sprintf("%s %s", style.Fg(color.Yellow)(c.ID), c.Name))
		})
	},
}
