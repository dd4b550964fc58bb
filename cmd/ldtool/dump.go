package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arloliu/ldfile"
	"github.com/arloliu/ldfile/ld"
	"github.com/arloliu/ldfile/sample"
)

type dumpOptions struct {
	channel string
	samples int
}

func newDumpCmd() *cobra.Command {
	var opts dumpOptions

	cmd := &cobra.Command{
		Use:   "dump [FILE]",
		Short: "Display header, records and channels of a container",
		Long: `Display the header, event, venue and vehicle records, the channel table
and the first samples of one channel.

Example:
  ldtool dump --channel "Ground Speed" --samples 10 ./samples/Sample1.ld`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dump(cmd.OutOrStdout(), pathArg(args), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.channel, "channel", "c", "", "channel to display (default: first channel)")
	cmd.Flags().IntVarP(&opts.samples, "samples", "n", 6, "number of samples to display")

	return cmd
}

func dump(w io.Writer, fname string, opts dumpOptions) (err error) {
	wbuf := bufio.NewWriter(w)
	defer flush(wbuf, &err)

	f, err := ldfile.Open(fname, ld.WithReaderLogger(libLogger()))
	if err != nil {
		return fmt.Errorf("could not read %q: %w", fname, err)
	}

	hdr := f.Header
	fmt.Fprintf(wbuf, "File:     %s\n", fname)
	fmt.Fprintf(wbuf, "Device:   %s #%d v%d\n", hdr.DeviceType, hdr.DeviceSerial, hdr.DeviceVersion)
	fmt.Fprintf(wbuf, "Date:     %s %s\n", hdr.Date, hdr.Time)
	fmt.Fprintf(wbuf, "Driver:   %s\n", hdr.Driver)
	fmt.Fprintf(wbuf, "Vehicle:  %s\n", hdr.VehicleID)
	fmt.Fprintf(wbuf, "Venue:    %s\n", hdr.Venue)
	fmt.Fprintf(wbuf, "Session:  %s\n", hdr.Session)
	fmt.Fprintf(wbuf, "Comment:  %s\n", hdr.ShortComment)

	if ev := f.Event; ev != nil {
		fmt.Fprintf(wbuf, "=== Event ===\n")
		fmt.Fprintf(wbuf, "Name:     %s\n", ev.Name)
		fmt.Fprintf(wbuf, "Session:  %s\n", ev.Session)
		fmt.Fprintf(wbuf, "Comment:  %s\n", ev.Comment)
	}
	if v := f.Venue; v != nil {
		fmt.Fprintf(wbuf, "=== Venue ===\n")
		fmt.Fprintf(wbuf, "Name:     %s\n", v.Name)
		fmt.Fprintf(wbuf, "Length:   %.3f km\n", float64(v.Length)/1e6)
	}
	if v := f.Vehicle; v != nil {
		fmt.Fprintf(wbuf, "=== Vehicle ===\n")
		fmt.Fprintf(wbuf, "ID:       %s\n", v.ID)
		fmt.Fprintf(wbuf, "Desc:     %s\n", v.Desc)
		fmt.Fprintf(wbuf, "Engine:   %s\n", v.EngineID)
		fmt.Fprintf(wbuf, "Weight:   %d kg\n", v.Weight)
		fmt.Fprintf(wbuf, "Fuel:     %.1f l\n", v.FuelTankLiters())
	}

	fmt.Fprintf(wbuf, "=== Channels (%d) ===\n", len(f.Channels))
	for i, ch := range f.Channels {
		m := ch.Meta
		fmt.Fprintf(wbuf, "%3d %-32s %-12s %5d Hz %8d %-8s %s\n",
			i, m.Name, m.Unit, m.SampleRate, m.DataCount, m.Datatype, m.Flag,
		)
	}

	if len(f.Channels) == 0 {
		return nil
	}

	ch := f.Channels[0]
	if opts.channel != "" {
		var ok bool
		ch, ok = f.Channel(opts.channel)
		if !ok {
			return fmt.Errorf("no channel named %q in %q", opts.channel, fname)
		}
	}

	fmt.Fprintf(wbuf, "=== %s (%d samples at %d Hz) ===\n", ch.Meta.Name, ch.Meta.DataCount, ch.Meta.SampleRate)
	values := ch.Values()
	for i := 0; i < opts.samples && i < len(values); i++ {
		fmt.Fprintf(wbuf, "[%d]: %.1f %s (raw %v)\n", i, values[i], ch.Meta.Unit, ch.Samples[i].Raw())
	}

	s := sample.Summarize(values)
	fmt.Fprintf(wbuf, "count=%d min=%.3f max=%.3f mean=%.3f std=%.3f\n", s.Count, s.Min, s.Max, s.Mean, s.StdDev)

	return nil
}
