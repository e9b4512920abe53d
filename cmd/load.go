package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/anisan-cli/mirai/color"
	"github.com/anisan-cli/mirai/icon"
	"github.com/anisan-cli/mirai/open"
	"github.com/anisan-cli/mirai/source"
	"github.com/anisan-cli/mirai/style"
	"github.com/anisan-cli/mirai/util"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const defaultWrapWidth = 80

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	loadCmd.Flags().BoolP("open", "o", false, "Open the page in the browser")
	loadCmd.Flags().String("with", "", "Application used by --open instead of the default browser")
	loadCmd.SetOut(os.Stdout)
}

var loadCmd = &cobra.Command{
	Use:               "load <source> <url>",
	Short:             "Show the details and episodes of a title",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		src, err := openSource(args[0])
		handleErr(err)

		ctx, cancel := interruptible()
		defer cancel()

		entry, err := src.Load(ctx, args[1])
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.StartWith(entry.URL, lo.Must(cmd.Flags().GetString("with"))))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(printJson(cmd.OutOrStdout(), entry))
			return
		}

		printEntry(cmd, entry)
	},
}

func printEntry(cmd *cobra.Command, entry *source.MediaEntry) {
	width := defaultWrapWidth
	if w, _, err := util.TerminalSize(); err == nil && w > 0 {
		width = min(w, defaultWrapWidth)
	}

	cmd.Println(style.Title(entry.Title))

	facts := []string{entry.Type.String(), entry.Status.String()}
	if year, ok := entry.Year.Get(); ok {
		facts = append(facts, strconv.Itoa(year))
	}
	cmd.Println(style.Faint(strings.Join(facts, " · ")))

	if len(entry.Genres) > 0 {
		cmd.Println(style.Fg(color.Cyan)(strings.Join(entry.Genres, ", ")))
	}

	if entry.Plot != "" {
		cmd.Println()
		cmd.Println(wordwrap.String(entry.Plot, width))
	}

	if entry.Trailer != "" {
		cmd.Println()
		cmd.Println(style.Faint("Trailer: " + entry.Trailer))
	}

	cmd.Println()
	cmd.Println(style.Bold(util.Quantify(len(entry.Episodes), "episode", "episodes")))
	for _, ep := range entry.Episodes {
		line := icon.Get(icon.Episode) + " " + ep.String()
		if date, ok := ep.AirDate.Get(); ok {
			line += " " + style.Faint(date.Format("2006-01-02"))
		}
		cmd.Println(line + " " + style.Faint(ep.Data))
	}
}
