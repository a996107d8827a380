package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"linerev"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	zeroDelim bool
	chunkKB   int
	lineBufKB int
	prof      string
)

var rootCmd = &cobra.Command{
	Use:   "linerev [file ...]",
	Short: "Reverse the byte order of each line",
	Long: `linerev copies the given files (or standard input, when none are given
or in place of "-") to standard output, reversing the byte order within
each line while keeping the lines themselves in order. The tool is
binary-safe: lines may contain any byte except the delimiter.`,
	Version:       version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVarP(&zeroDelim, "zero", "z", false, "Line delimiter is NUL, not newline")
	rootCmd.Flags().IntVar(&chunkKB, "chunk", linerev.DefaultChunkSize/1024, "Read buffer size in KiB")
	rootCmd.Flags().IntVar(&lineBufKB, "line-buf", linerev.DefaultLineSize/1024, "Line buffer size in KiB; longer lines are split")
	rootCmd.Flags().StringVar(&prof, "prof", "", "Write a cpu|mem profile to the current directory")
}

func run(cmd *cobra.Command, args []string) error {
	switch prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q, want cpu or mem", prof)
	}

	// a reader that goes away should end the process the usual way,
	// not keep the run looping on write errors
	signal.Reset(syscall.SIGPIPE)

	delim := byte('\n')
	if zeroDelim {
		delim = 0
	}

	var sources []linerev.Source
	for _, arg := range args {
		if arg == "-" {
			sources = append(sources, linerev.ReaderSource("standard input", os.Stdin))
		} else {
			sources = append(sources, linerev.FileSource(arg))
		}
	}

	engine := linerev.New(
		linerev.WithDelimiter(delim),
		linerev.WithChunkSize(chunkKB*1024),
		linerev.WithLineSize(lineBufKB*1024),
		linerev.OnSourceError(func(e *linerev.SourceError) {
			fmt.Fprintf(os.Stderr, "linerev: %s: %v\n", e.Name, e.Err)
		}),
	)

	return engine.Run(os.Stdout, sources...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// per-source failures were already reported as they happened
		var srcErr *linerev.SourceError
		if !errors.As(err, &srcErr) {
			fmt.Fprintf(os.Stderr, "linerev: %v\n", err)
		}
		os.Exit(1)
	}
}
