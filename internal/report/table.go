package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bebsworthy/pmbench/internal/bench"
)

func fprintf(w io.Writer, format string, a ...interface{}) {
	_, _ = fmt.Fprintf(w, format, a...) //nolint:errcheck
}

// WriteTable prints one row per record in the order given
func WriteTable(w io.Writer, results []bench.InstallResult) error {
	if len(results) == 0 {
		fprintf(w, "No results recorded.\n")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fprintf(tw, "Manager\tVersion\tPackage\tTime\n")
	for _, r := range results {
		fprintf(tw, "%s\t%s\t%s\t%dms\n", r.Manager, r.ManagerVersion, r.Package, r.Time)
	}
	return tw.Flush()
}
