package main

import (
	"os"
	"strconv"
	"strings"

	"listboard/internal/cli"
)

// rewriteBareMoveArgs turns `listboard notes 3 5` into `listboard notes move 3 --onto 5`,
// the short form for a one-off reorder.
func rewriteBareMoveArgs(argv []string) []string {
	for i := 1; i+2 < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if strings.HasPrefix(a, "-") {
			continue
		}
		if a != "notes" && a != "todos" {
			return argv
		}
		if !isID(argv[i+1]) || !isID(argv[i+2]) || i+3 != len(argv) {
			return argv
		}
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i+1]...)
		out = append(out, "move", argv[i+1], "--onto", argv[i+2])
		return out
	}
	return argv
}

func isID(s string) bool {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil && n > 0
}

func main() {
	os.Args = rewriteBareMoveArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
