package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"steeldesk/internal/search"
)

// interactiveSearch reads queries from standard input line by line, debounces
// them, and renders only the latest query's results. A query still waiting
// out its debounce window when input ends is flushed, so the last thing the
// operator typed is never dropped.
func interactiveSearch(run search.QueryFunc, render func(query string, results any)) error {
	ctx := context.Background()
	deb := search.NewDebouncer(cfg.DebounceInterval, run,
		func(query string, results any, err error) {
			if err != nil {
				fmt.Fprintf(os.Stderr, "search %q failed: %v\n", query, friendlyError(err))
				return
			}
			render(query, results)
			fmt.Print("> ")
		},
	)

	fmt.Println("Type a query and press enter (ctrl-d to quit).")
	fmt.Print("> ")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			fmt.Print("> ")
			continue
		}
		deb.Input(ctx, query)
	}
	deb.FlushPending(ctx)
	return scanner.Err()
}
