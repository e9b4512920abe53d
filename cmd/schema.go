package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/anisan-cli/mirai/inline"
	"github.com/anisan-cli/mirai/source"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var schemaTargets = map[string]any{
	"inline":  &inline.Output{},
	"page":    &source.Page{},
	"results": []*source.SearchResult{},
	"entry":   &source.MediaEntry{},
	"streams": &source.StreamReport{},
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringP("target", "t", "inline", "Output to describe: "+strings.Join(lo.Keys(schemaTargets), ", "))
	lo.Must0(schemaCmd.RegisterFlagCompletionFunc("target", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Keys(schemaTargets), cobra.ShellCompDirectiveNoFileComp
	}))
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the --json outputs",
	Run: func(cmd *cobra.Command, args []string) {
		target := lo.Must(cmd.Flags().GetString("target"))
		value, ok := schemaTargets[target]
		if !ok {
			handleErr(errUnknownTarget(target))
		}

		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "output", "result", "streams":
				return filepath.Base(t.PkgPath()) + "." + name
			}
			return name
		}

		handleErr(printJson(os.Stdout, reflector.Reflect(value)))
	},
}
