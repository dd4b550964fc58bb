package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/ldfile"
	"github.com/arloliu/ldfile/beacon"
	"github.com/arloliu/ldfile/ld"
)

func newLapsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "laps [FILE]",
		Short: "Decode lap and sector times from the beacon channel",
		Long: `Decode lap and sector times from the beacon channel. By default only
flying laps are listed; --all includes the out-lap and the in-lap.

Example:
  ldtool laps ./samples/Sample1.ld`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return laps(cmd.OutOrStdout(), pathArg(args), all)
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include out-lap and in-lap")

	return cmd
}

func laps(w io.Writer, fname string, all bool) (err error) {
	wbuf := bufio.NewWriter(w)
	defer flush(wbuf, &err)

	f, err := ldfile.Open(fname, ld.WithReaderLogger(libLogger()))
	if err != nil {
		return fmt.Errorf("could not read %q: %w", fname, err)
	}

	decoded := ldfile.Laps(f)
	if decoded == nil {
		return fmt.Errorf("no beacon channel in %q", fname)
	}

	if f.Event != nil && f.Venue != nil {
		fmt.Fprintf(wbuf, "%s at %s, %s:\n", f.Event.Name, f.Venue.Name, f.Header.Date)
	}

	shown, first := beacon.FlyingLaps(decoded), 1
	if all {
		shown, first = decoded, 0
	}

	for i, lap := range shown {
		n := first + i
		label := fmt.Sprintf("Lap %d", n)
		switch {
		case n == 0:
			label = "Out"
		case n == len(decoded)-1:
			label = "In"
		}

		fmt.Fprintf(wbuf, "%s: %s", label, beacon.FormatLapTime(lap.LapTime))
		if len(lap.Sectors) > 0 {
			splits := make([]string, 0, len(lap.Sectors)+1)
			for _, s := range lap.Sectors {
				splits = append(splits, beacon.FormatLapTime(s))
			}
			splits = append(splits, beacon.FormatLapTime(lap.FinalSector()))
			fmt.Fprintf(wbuf, "  [%s]", strings.Join(splits, " "))
		}
		fmt.Fprintln(wbuf)
	}

	return nil
}
