package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/five82/wyrm/internal/app"
	"github.com/five82/wyrm/internal/item"
)

func TestRootCmdBuildsQuery(t *testing.T) {
	var got app.Options
	runApp := func(_ context.Context, opts app.Options) (app.Result, error) {
		got = opts
		return app.Result{}, nil
	}

	cmd := newRootCmd(runApp, &bytes.Buffer{})
	cmd.SetArgs([]string{"victory", "of", "eagles", "--author", "Naomi Novik", "--author", "N. Novik", "--year", "2008", "--debug"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if got.Query.Title != "victory of eagles" {
		t.Fatalf("title = %q", got.Query.Title)
	}
	if len(got.Query.Authors) != 2 || got.Query.Authors[1] != "N. Novik" {
		t.Fatalf("authors = %v", got.Query.Authors)
	}
	if got.Query.Year != 2008 || !got.Debug {
		t.Fatalf("options = %+v", got)
	}
}

func TestRootCmdPrintsWantedItems(t *testing.T) {
	runApp := func(context.Context, app.Options) (app.Result, error) {
		return app.Result{Wanted: []item.Item{{Title: "His Majesty's Dragon", Year: 2006}, {Title: "Throne of Jade"}}}, nil
	}
	var out bytes.Buffer
	cmd := newRootCmd(runApp, &out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "His Majesty's Dragon (2006)") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRootCmdReturnsRunError(t *testing.T) {
	runApp := func(context.Context, app.Options) (app.Result, error) {
		return app.Result{}, errors.New("load config: boom")
	}
	cmd := newRootCmd(runApp, &bytes.Buffer{})
	cmd.SetArgs([]string{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("Execute error = %v", err)
	}
}
