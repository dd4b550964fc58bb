package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/ldfile/errs"
)

func newDiffCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "diff A B",
		Short: "Compare two files byte by byte",
		Long: `Compare the first --limit bytes of two files and list every offset
where they differ.

Example:
  ldtool diff --limit 1762 ./samples/Sample1.ld ./test_write.ld`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := diff(cmd.OutOrStdout(), args[0], args[1], limit)
			return err
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 2000, "number of leading bytes to compare, 0 for all")

	return cmd
}

// diff reports the differing offsets within the first limit bytes of a and b.
func diff(w io.Writer, a, b string, limit int) (count int, err error) {
	wbuf := bufio.NewWriter(w)
	defer flush(wbuf, &err)

	da, err := os.ReadFile(a)
	if err != nil {
		return 0, errs.IO("read "+a, err)
	}
	db, err := os.ReadFile(b)
	if err != nil {
		return 0, errs.IO("read "+b, err)
	}

	n := min(len(da), len(db))
	if limit > 0 {
		n = min(n, limit)
	}

	for i := range n {
		if da[i] != db[i] {
			fmt.Fprintf(wbuf, "0x%06x: %02x %02x\n", i, da[i], db[i])
			count++
		}
	}

	fmt.Fprintf(wbuf, "%d of %d bytes differ", count, n)
	if len(da) != len(db) {
		fmt.Fprintf(wbuf, " (sizes %d and %d)", len(da), len(db))
	}
	fmt.Fprintln(wbuf)

	return count, nil
}

// flush flushes wbuf, reporting its error through err unless err is already set.
func flush(wbuf *bufio.Writer, err *error) {
	if ferr := wbuf.Flush(); ferr != nil && *err == nil {
		*err = errs.IO("flush output", ferr)
	}
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint: gosec
		return errs.IO("create "+path, err)
	}

	return nil
}
