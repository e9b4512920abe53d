package inline

import (
	"encoding/json"
	"io"

	"github.com/anisan-cli/mirai/source"
)

// Streams holds the resolved links of one episode.
type Streams struct {
	Episode string               `json:"episode"`
	Data    string               `json:"data"`
	Report  *source.StreamReport `json:"report"`
}

// Result is a loaded entry together with whatever streams were resolved for it.
type Result struct {
	Source  string             `json:"source"`
	Entry   *source.MediaEntry `json:"entry"`
	Streams []*Streams         `json:"streams,omitempty"`
}

// Output is the document written in JSON mode.
type Output struct {
	Query  string    `json:"query"`
	Result []*Result `json:"result"`
}

func writeJson(out io.Writer, query string, results []*Result) error {
	if results == nil {
		results = []*Result{}
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(&Output{Query: query, Result: results})
}
