package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dargueta/ebfpack"
	"github.com/urfave/cli/v2"
)

// Errors that mean the input data itself is bad, as opposed to the
// environment. These exit with status 2.
var dataErrors = []error{
	ebfpack.ErrInputTooShort,
	ebfpack.ErrTruncatedRun,
	ebfpack.ErrInvalidRunLength,
	ebfpack.ErrLiteralOverflow,
	ebfpack.ErrSizeMismatch,
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()

	app.Name = "ebfpack"
	app.HelpName = app.Name
	app.Usage = "Build and inspect sentinel-RLE compressed EBF image assets"
	app.Version = "1.0.0"
	app.Writer = stdout
	app.ErrWriter = stderr
	app.ExitErrHandler = func(*cli.Context, error) {}

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		generateCommand(),
		compressCommand(),
		decompressCommand(),
		inspectCommand(),
		textToBinCommand(),
		cleanCommand(),
	}
	return app
}

// run executes the command line in args and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	err := newApp(stdout, stderr).Run(args)
	if err == nil {
		return 0
	}

	fmt.Fprintln(stderr, err)
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(c.App.ErrWriter)
	}
	return logger
}

// exitError attaches an exit status to err: 2 if the data was corrupt, 1 for
// anything else.
func exitError(err error) error {
	for _, target := range dataErrors {
		if errors.Is(err, target) {
			return cli.Exit(err, 2)
		}
	}
	return cli.Exit(err, 1)
}

// requireArgs fails with a usage message unless the command got between min
// and max positional arguments.
func requireArgs(c *cli.Context, min, max int) error {
	if c.NArg() < min || c.NArg() > max {
		return cli.Exit(
			fmt.Sprintf("Usage: %s %s", c.Command.HelpName, c.Command.ArgsUsage), 1)
	}
	return nil
}
