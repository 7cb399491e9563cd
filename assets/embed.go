// Package assets embeds the static word list the server falls back to when
// the remote word source cannot supply candidates.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed fallback.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out, sc.Err()
}

// FallbackList returns every embedded word, uppercased, in file order.
func FallbackList() ([]string, error) {
	return readLines("fallback.txt")
}
