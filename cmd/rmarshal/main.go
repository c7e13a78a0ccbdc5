package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/rmarshal/pipeline"
	"github.com/signadot/rmarshal/unit"
)

// version is set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

func MainCommand() *cli.Command {
	return cli.NewCommand("rmarshal").
		WithSynopsis(usage).
		WithDescription(description).
		WithRun(rmarshal)
}

func rmarshal(cc *cli.Context, args []string) error {
	switch {
	case len(args) == 0:
		return report(fmt.Errorf("%w: nothing to do, see --help", unit.ErrParameter))
	case len(args) == 1 && args[0] == "--help":
		fmt.Fprintf(cc.Out, "usage: %s\n\n%s\n", usage, description)
		return nil
	case len(args) == 2 && args[0] == "--help":
		fmt.Fprintln(cc.Out, topicHelp(args[1]))
		return nil
	case len(args) == 1 && args[0] == "--version":
		fmt.Fprintf(cc.Out, "rmarshal %s\n", version)
		return nil
	}
	units, err := unit.Parse(args)
	if err != nil {
		return report(err)
	}
	e := pipeline.NewExecutor()
	e.Stdin = cc.In
	e.Stdout = cc.Out
	return report(e.Run(units))
}

// report prints err to stderr and turns it into the matching exit code.
func report(err error) error {
	if err == nil {
		return nil
	}
	printErr(os.Stderr, err)
	return cli.ExitCodeErr(pipeline.ExitCode(err))
}

func printErr(w io.Writer, err error) {
	msg := "rmarshal: " + err.Error()
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		c := color.New(color.FgRed)
		c.EnableColor()
		msg = c.Sprint(msg)
	}
	fmt.Fprintln(w, msg)
}
