package calendar

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"EconPull/internal/domain/models"
)

// Cell classes we keep, in the order the table renders them. Forecast,
// previous and graph cells are resolved separately so the cell-count contract
// (1/4/5) stays intact for the reconstructor.
var allowedCellClasses = []string{
	"calendar__date",
	"calendar__time",
	"calendar__currency",
	"calendar__impact",
	"calendar__event",
}

// iconColorMap translates the presentational impact icon class to the
// severity enumeration.
var iconColorMap = map[string]string{
	"icon icon--ff-impact-yel": "Low",
	"icon icon--ff-impact-ora": "Medium",
	"icon icon--ff-impact-red": "High",
	"icon icon--ff-impact-gra": "Holiday",
}

// Extractor parses an already-retrieved calendar page into table rows.
// Browser control and page scrolling live outside this module; the input here
// is the final rendered HTML.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// Extract pulls every calendar row from the page. Each returned TableRow
// carries the cell texts the reconstructor consumes plus the row's event id
// and magnitude cells when present.
func (e *Extractor) Extract(html string) ([]models.TableRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse calendar page: %w", err)
	}

	var rows []models.TableRow
	doc.Find("table.calendar__table tr").Each(func(_ int, tr *goquery.Selection) {
		row := models.TableRow{
			EventID:  tr.AttrOr("data-event-id", ""),
			Actual:   strings.TrimSpace(tr.Find("td.calendar__actual").Text()),
			Forecast: strings.TrimSpace(tr.Find("td.calendar__forecast").Text()),
			Previous: strings.TrimSpace(tr.Find("td.calendar__previous").Text()),
		}

		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			if !isAllowedCell(td) {
				return
			}
			text := strings.TrimSpace(td.Text())
			if text != "" {
				row.Cells = append(row.Cells, text)
				return
			}
			if td.HasClass("calendar__impact") {
				row.Cells = append(row.Cells, impactColor(td))
			}
		})

		if len(row.Cells) > 0 {
			rows = append(rows, row)
		}
	})

	return rows, nil
}

func isAllowedCell(td *goquery.Selection) bool {
	for _, class := range allowedCellClasses {
		if td.HasClass(class) {
			return true
		}
	}
	// Bare calendar__cell without a role class is the date-group spacer.
	return td.AttrOr("class", "") == "calendar__cell"
}

// impactColor maps the impact icon span to its severity color. Unknown icons
// yield a sentinel the reconstructor's impact filter will drop.
func impactColor(td *goquery.Selection) string {
	color := "impact"
	td.Find("span").Each(func(_ int, span *goquery.Selection) {
		if c, ok := iconColorMap[span.AttrOr("class", "")]; ok {
			color = c
		}
	})
	return color
}
