package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/visualvc/versionlog/pkg/store"
)

func WriteVersionTable(w io.Writer, entries []store.VersionEntry) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tVERSION\tDATE\tCHANGES")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.ID, e.Version, e.Date.String(), e.Changes)
	}
	_ = tw.Flush()
}
