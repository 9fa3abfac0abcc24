package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/andrescamacho/stars-go/internal/domain/game"
)

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

// splitList splits a comma separated flag, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseMessageMask turns "Battle,Colonized" into a mask; empty means all.
func parseMessageMask(s string) (game.MessageMask, error) {
	names := splitList(s)
	if len(names) == 0 {
		return game.MessageMaskAll, nil
	}
	types := make([]game.MessageType, 0, len(names))
	for _, name := range names {
		t, err := game.ParseMessageType(name)
		if err != nil {
			return 0, err
		}
		types = append(types, t)
	}
	return game.MaskOf(types...), nil
}

// maskPassword hides the password part of a connection URL
func maskPassword(url string) string {
	at := strings.LastIndex(url, "@")
	scheme := strings.Index(url, "://")
	if at < 0 || scheme < 0 {
		return url
	}
	creds := url[scheme+3 : at]
	if colon := strings.Index(creds, ":"); colon >= 0 {
		return fmt.Sprintf("%s%s:****%s", url[:scheme+3], creds[:colon], url[at:])
	}
	return url
}
