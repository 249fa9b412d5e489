package main

import (
	"fmt"
	"os"

	"github.com/dargueta/ebfpack"
	"github.com/dargueta/ebfpack/assets"
	"github.com/dargueta/ebfpack/generate"
	"github.com/urfave/cli/v2"
)

const defaultOutput = "images.h"

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Convert, compress and embed image assets in a C header",
		Description: "Runs the converter on every asset in the manifest, compresses the\n" +
			"results and writes one `const uint8_t` array per asset. Without\n" +
			"--manifest the built-in asset list is used.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "manifest",
				EnvVars: []string{"EBFPACK_MANIFEST"},
				Usage:   "path to a `name|path` asset manifest",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   defaultOutput,
				Usage:   "path of the header to write",
			},
			&cli.StringFlag{
				Name:    "python",
				EnvVars: []string{"EBFPACK_PYTHON"},
				Value:   generate.DefaultInterpreter,
				Usage:   "interpreter used to run the converter",
			},
			&cli.StringFlag{
				Name:    "converter",
				EnvVars: []string{"EBFPACK_CONVERTER"},
				Value:   generate.DefaultScript,
				Usage:   "converter script",
			},
			&cli.StringFlag{
				Name:  "ext",
				Value: generate.DefaultIntermediateExt,
				Usage: "extension of the files the converter writes",
			},
			&cli.StringFlag{
				Name:  "guard",
				Value: generate.DefaultGuard,
				Usage: "include guard macro",
			},
			&cli.StringFlag{
				Name:  "preamble",
				Usage: "file copied verbatim to the top of the header",
			},
			&cli.BoolFlag{
				Name:  "keep-temp",
				Usage: "don't delete the converter's temporary files",
			},
			&cli.StringFlag{
				Name:  "sweep",
				Usage: "after a successful run, also delete every temporary file under `DIR`",
			},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 0, 0); err != nil {
				return err
			}
			logger := newLogger(c)

			list := assets.Default()
			if manifestPath := c.String("manifest"); manifestPath != "" {
				var err error
				list, err = assets.LoadManifest(manifestPath)
				if err != nil {
					return exitError(err)
				}
			}

			converter := generate.ExecConverter{
				Interpreter: c.String("python"),
				Script:      c.String("converter"),
				Stdout:      logger.Writer(),
			}
			generator := generate.New(converter, logger)
			generator.IntermediateExt = c.String("ext")
			generator.Guard = c.String("guard")

			if preamblePath := c.String("preamble"); preamblePath != "" {
				preamble, err := os.ReadFile(preamblePath)
				if err != nil {
					return exitError(ebfpack.ErrIO.Wrap(err))
				}
				generator.Preamble = string(preamble)
			}

			outputPath := c.String("output")
			if c.Bool("keep-temp") {
				header, err := generator.Render(c.Context, list)
				if err != nil {
					return exitError(err)
				}
				if err := os.WriteFile(outputPath, header, 0o644); err != nil {
					return exitError(ebfpack.ErrIO.Wrap(err))
				}
			} else {
				if err := generator.Run(c.Context, list, outputPath); err != nil {
					return exitError(err)
				}
				if root := c.String("sweep"); root != "" {
					removed, err := generate.SweepTempFiles(root)
					for _, path := range removed {
						logger.Printf("Removed %q", path)
					}
					if err != nil {
						return exitError(err)
					}
				}
			}

			fmt.Fprintf(c.App.Writer, "File %s created successfully.\n", outputPath)
			return nil
		},
	}
}

func cleanCommand() *cli.Command {
	return &cli.Command{
		Name:      "clean",
		Usage:     "Delete leftover converter output files",
		ArgsUsage: "[DIR]",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 0, 1); err != nil {
				return err
			}
			root := "."
			if c.NArg() == 1 {
				root = c.Args().First()
			}

			removed, err := generate.SweepTempFiles(root)
			for _, path := range removed {
				fmt.Fprintln(c.App.Writer, path)
			}
			if err != nil {
				return exitError(err)
			}
			return nil
		},
	}
}
