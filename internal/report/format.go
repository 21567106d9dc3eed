package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// Header names the CSV columns in order
var Header = []string{
	"FileName",
	"Table Size",
	"Hash Base",
	"Total Words",
	"Total Collision",
	"Total Probe Length",
	"Maximum Probe Length",
	"Rehash Count",
	"Loading Time",
}

// WriteCSV writes Header followed by one record per row. Load times are in
// seconds.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for _, row := range rows {
		record := []string{
			row.File,
			strconv.Itoa(row.Capacity),
			strconv.Itoa(row.Base),
			strconv.Itoa(row.Words),
			strconv.Itoa(row.Stats.Collisions),
			strconv.Itoa(row.Stats.ProbeTotal),
			strconv.Itoa(row.Stats.ProbeMax),
			strconv.Itoa(row.Stats.Rehashes),
			strconv.FormatFloat(row.LoadTime.Seconds(), 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "writing %s", row.File)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}

// WriteTable renders rows as an aligned text table
func WriteTable(w io.Writer, rows []Row) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(Header)
	for _, row := range rows {
		loadTime := row.LoadTime.Round(time.Millisecond).String()
		if row.TimedOut {
			loadTime = ">" + loadTime
		}
		table.Append([]string{
			row.File,
			humanize.Comma(int64(row.Capacity)),
			humanize.Comma(int64(row.Base)),
			humanize.Comma(int64(row.Words)),
			humanize.Comma(int64(row.Stats.Collisions)),
			humanize.Comma(int64(row.Stats.ProbeTotal)),
			humanize.Comma(int64(row.Stats.ProbeMax)),
			humanize.Comma(int64(row.Stats.Rehashes)),
			loadTime,
		})
	}
	table.Render()
}
