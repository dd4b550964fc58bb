// ldtool inspects and converts .ld telemetry logs.
//
// Usage: ldtool COMMAND [OPTIONS] ARGS
//
// Example:
//
//	$> ldtool laps ./samples/Sample1.ld
//	Lap 1: 01:05.163  [00:18.894 00:32.856 00:13.413]
//	Lap 2: 01:03.682  [00:18.301 00:31.888 00:13.493]
//	[...]
//
// Files ending in .zst, .s2 or .lz4 are read and written as compressed archives.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

const defaultPath = "./samples/Sample1.ld"

var verbose bool

func main() {
	log.SetPrefix("ldtool: ")
	log.SetFlags(0)

	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ldtool",
		Short: "Inspect and convert .ld telemetry logs",
		Long: `ldtool reads .ld telemetry containers, decodes lap times from the
beacon channel and rewrites containers, optionally as compressed archives.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log reader and writer diagnostics to stderr")

	root.AddCommand(
		newDumpCmd(),
		newLapsCmd(),
		newRewriteCmd(),
		newDiffCmd(),
		newPackCmd(),
	)

	return root
}

// libLogger returns the logger handed to the reader and writer.
func libLogger() *log.Logger {
	if !verbose {
		return nil
	}

	return log.New(os.Stderr, "ldtool: ", 0)
}

// pathArg returns the first argument, or the bundled sample file.
func pathArg(args []string) string {
	if len(args) == 0 {
		return defaultPath
	}

	return args[0]
}
