package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/wyrm/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCmd(app.Run, os.Stdout)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "wyrm: %v\n", err)
		return 1
	}
	return 0
}

type runFunc func(context.Context, app.Options) (app.Result, error)

func newRootCmd(runApp runFunc, out io.Writer) *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:          "wyrm [title words...]",
		Short:        "Search book seekers and pick results in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Browse everything the seekers return
  wyrm

  # Search by title and author
  wyrm victory of eagles --author "naomi novik"

  # Only EPUBs from 2008
  wyrm --year 2008 --format epub temeraire
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title := strings.Join(args, " "); strings.TrimSpace(title) != "" {
				opts.Query.Title = title
			}
			result, err := runApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			for _, it := range result.Wanted {
				fmt.Fprintln(out, it.String())
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "override config path (default ~/.config/wyrm/config.toml)")
	flags.StringVar(&opts.Query.Title, "title", "", "title to search for")
	flags.StringArrayVar(&opts.Query.Authors, "author", nil, "author to search for (repeatable)")
	flags.StringVar(&opts.Query.Series, "series", "", "series to search for")
	flags.StringVar(&opts.Query.Publisher, "publisher", "", "publisher to search for")
	flags.IntVar(&opts.Query.Year, "year", 0, "exact publication year")
	flags.StringVar(&opts.Query.Format, "format", "", "exact file format, e.g. epub")
	flags.BoolVar(&opts.Debug, "debug", false, "show debug messages in the log view")
	return cmd
}
