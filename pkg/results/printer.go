package results

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// PrintRuns 以表格形式输出记录，测量值按标签排序
func PrintRuns(w io.Writer, runs []Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "ID\tTIME\tCOMMAND\tCORPUS\tFORMAT\tALGO\tSIZE\tROUNDS\tMEASUREMENTS (ms)\n")
	for _, run := range runs {
		m, err := run.DecodeMeasurements()
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.CreatedAt.Local().Format(time.DateTime),
			run.Command,
			orDash(run.Corpus),
			orDash(run.Format),
			orDash(run.Algorithm),
			run.Size,
			run.Rounds,
			fmtMeasurements(m),
		)
	}
	return tw.Flush()
}

func fmtMeasurements(m map[string]float64) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strconv.FormatFloat(m[k], 'f', 3, 64))
	}
	return strings.Join(parts, "; ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
