package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dargueta/ebfpack"
	"github.com/dargueta/ebfpack/utilities/hexlit"
	"github.com/urfave/cli/v2"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "texttobin",
		HelpName:  "texttobin",
		Usage:     "Write the value of every 0x literal in a text file to a binary file",
		ArgsUsage: "input_file.txt output_file.bin",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "truncate",
				Usage: "keep the low byte of literals wider than 8 bits instead of failing",
			},
		},
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		// Exit codes are worked out by run, don't let the library call os.Exit.
		ExitErrHandler: func(*cli.Context, error) {},
		Action:         textToBin,
	}
}

func textToBin(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit(
			fmt.Sprintf("Usage: %s input_file.txt output_file.bin", c.App.Name), 1)
	}

	outputPath := c.Args().Get(1)
	if _, err := hexlit.ConvertFile(c.Args().Get(0), outputPath, c.Bool("truncate")); err != nil {
		if errors.Is(err, ebfpack.ErrIO) {
			return cli.Exit(err, 1)
		}
		return cli.Exit(err, 2)
	}

	fmt.Fprintf(c.App.Writer, "File %s created successfully.\n", outputPath)
	return nil
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
