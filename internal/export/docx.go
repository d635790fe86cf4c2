package export

import (
	"fmt"
	"io"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/tripgest/internal/trip"
)

var docxHeader = []string{"Time", "Activity", "Location", "Cost", "Duration"}

// DOCX writes t as a Word document: title, summary, then one heading and
// schedule table per day.
func DOCX(w io.Writer, t *trip.Trip) error {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().Style("Title").AddText(t.Title).Bold()
	summary := fmt.Sprintf("%s, %d day(s), %d traveler(s), estimated total %s",
		t.Destination, t.DurationDays(), t.Travelers, formatCost(t.TotalCost()))
	if !t.StartDate.IsZero() {
		summary += fmt.Sprintf(". %s to %s", t.StartDate.Format("Jan 2, 2006"), t.EndDate.Format("Jan 2, 2006"))
	}
	doc.AddParagraph().AddText(summary)

	for _, day := range GroupByDay(t.Items) {
		doc.AddParagraph().Style("Heading1").AddText(dayTitle(t, day.Number)).Bold().Size("28")

		tbl := doc.AddTable(len(day.Items)+1, len(docxHeader), 0, nil)
		for c, h := range docxHeader {
			tbl.TableRows[0].TableCells[c].AddParagraph().AddText(h).Bold()
		}
		for r, it := range day.Items {
			cells := tbl.TableRows[r+1].TableCells
			cells[0].AddParagraph().AddText(it.Time)
			cells[1].AddParagraph().AddText(it.Activity.Activity)
			cells[2].AddParagraph().AddText(it.Location)
			cells[3].AddParagraph().AddText(formatCost(it.EstimatedCost))
			cells[4].AddParagraph().AddText(formatDuration(it.Duration))
		}
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
