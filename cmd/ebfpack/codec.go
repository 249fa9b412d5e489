package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dargueta/ebfpack"
	"github.com/dargueta/ebfpack/ebf"
	"github.com/dargueta/ebfpack/utilities/compression"
	"github.com/dargueta/ebfpack/utilities/hexlit"
	"github.com/urfave/cli/v2"
)

func compressCommand() *cli.Command {
	return &cli.Command{
		Name:      "compress",
		Usage:     "Compress a raw EBF file",
		ArgsUsage: "INPUT OUTPUT",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "hex",
				Usage: "write the output as comma-separated hex literals",
			},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 2, 2); err != nil {
				return err
			}
			inputPath, outputPath := c.Args().Get(0), c.Args().Get(1)

			if c.Bool("hex") {
				raw, err := os.ReadFile(inputPath)
				if err != nil {
					return exitError(ebfpack.ErrIO.Wrap(err))
				}
				compressed, err := compression.Compress(raw)
				if err != nil {
					return exitError(err)
				}
				text := hexlit.Format(compressed) + "\n"
				if err := os.WriteFile(outputPath, []byte(text), 0o644); err != nil {
					return exitError(ebfpack.ErrIO.Wrap(err))
				}
				fmt.Fprintf(c.App.Writer, "Compressed %d bytes to %d.\n", len(raw), len(compressed))
				return nil
			}

			nWritten, err := streamFile(inputPath, outputPath, compression.CompressSentinelRLE)
			if err != nil {
				return exitError(err)
			}
			fmt.Fprintf(c.App.Writer, "Compressed input file to %d bytes.\n", nWritten)
			return nil
		},
	}
}

func decompressCommand() *cli.Command {
	return &cli.Command{
		Name:      "decompress",
		Usage:     "Expand a compressed EBF file",
		ArgsUsage: "INPUT OUTPUT",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "hex-input",
				Usage: "read the input as text containing hex literals",
			},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 2, 2); err != nil {
				return err
			}
			inputPath, outputPath := c.Args().Get(0), c.Args().Get(1)

			if c.Bool("hex-input") {
				compressed, err := readCompressed(inputPath, true)
				if err != nil {
					return exitError(err)
				}
				raw, err := compression.Decompress(compressed)
				if err != nil {
					return exitError(err)
				}
				if err := os.WriteFile(outputPath, raw, 0o644); err != nil {
					return exitError(ebfpack.ErrIO.Wrap(err))
				}
				fmt.Fprintf(c.App.Writer, "Expanded input file to %d bytes.\n", len(raw))
				return nil
			}

			nWritten, err := streamFile(inputPath, outputPath, compression.DecompressSentinelRLE)
			if err != nil {
				return exitError(err)
			}
			fmt.Fprintf(c.App.Writer, "Expanded input file to %d bytes.\n", nWritten)
			return nil
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the header and structure of a compressed EBF file",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "hex-input",
				Usage: "read the input as text containing hex literals",
			},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1, 1); err != nil {
				return err
			}

			compressed, err := readCompressed(c.Args().First(), c.Bool("hex-input"))
			if err != nil {
				return exitError(err)
			}
			header, err := ebf.ParseHeader(compressed)
			if err != nil {
				return exitError(err)
			}
			report, err := compression.Analyze(compressed)
			if err != nil {
				return exitError(err)
			}

			w := c.App.Writer
			fmt.Fprintf(w, "Format:            % x\n", header.Format[:])
			fmt.Fprintf(w, "Dimensions:        %dx%d (%d pixels)\n",
				header.Width, header.Height, header.PixelCount())
			fmt.Fprintf(w, "Compressed size:   %d\n", report.CompressedSize)
			fmt.Fprintf(w, "Decoded size:      %d (ratio %.3f)\n", report.DecodedSize, report.Ratio())
			fmt.Fprintf(w, "Literal bytes:     %d\n", report.Literals)
			fmt.Fprintf(w, "Run tokens:        %d (%d of the sentinel)\n", report.Runs, report.SentinelRuns)
			fmt.Fprintf(w, "Escaped sentinels: %d\n", report.EscapedSentinels)

			if body := report.DecodedSize - compression.HeaderSize; body != header.PixelCount() {
				fmt.Fprintf(w, "Warning: body expands to %d bytes, header says %d\n",
					body, header.PixelCount())
			}
			return nil
		},
	}
}

func textToBinCommand() *cli.Command {
	return &cli.Command{
		Name:      "text2bin",
		Usage:     "Write the value of every 0x literal in a text file to a binary file",
		ArgsUsage: "INPUT OUTPUT",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "truncate",
				Usage: "keep the low byte of literals wider than 8 bits instead of failing",
			},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 2, 2); err != nil {
				return err
			}

			outputPath := c.Args().Get(1)
			if _, err := hexlit.ConvertFile(c.Args().Get(0), outputPath, c.Bool("truncate")); err != nil {
				return exitError(err)
			}
			fmt.Fprintf(c.App.Writer, "File %s created successfully.\n", outputPath)
			return nil
		},
	}
}

type streamCodec func(io.Reader, io.Writer) (int64, error)

// streamFile runs codec from inputPath to outputPath. The output file is
// removed if the codec fails.
func streamFile(inputPath, outputPath string, codec streamCodec) (int64, error) {
	sourceFile, err := os.Open(inputPath)
	if err != nil {
		return 0, ebfpack.ErrIO.Wrap(err)
	}
	defer sourceFile.Close()

	outFile, err := os.Create(outputPath)
	if err != nil {
		return 0, ebfpack.ErrIO.Wrap(err)
	}

	nWritten, err := codec(sourceFile, outFile)
	closeErr := outFile.Close()
	if err == nil && closeErr != nil {
		err = ebfpack.ErrIO.Wrap(closeErr)
	}
	if err != nil {
		os.Remove(outputPath)
		return 0, err
	}
	return nWritten, nil
}

func readCompressed(path string, hexInput bool) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ebfpack.ErrIO.Wrap(err)
	}
	if hexInput {
		return hexlit.Extract(string(data))
	}
	return data, nil
}
