package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jszwec/csvutil"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"orderdash/internal/model"
)

// rawRow mirrors the CSV export of the order-confirmation sheet. Everything
// comes in as text; Load cleans and converts it.
type rawRow struct {
	Date     string `csv:"Date"`
	Inquiry  string `csv:"Inquiry No"`
	Company  string `csv:"Company Name"`
	Client   string `csv:"Client Name"`
	Product  string `csv:"Product"`
	Qty      string `csv:"Qty"`
	City     string `csv:"City"`
	State    string `csv:"State"`
	Total    string `csv:"Total Amount"`
	Delivery string `csv:"Delivery Date"`
}

// Exclusion records one ledger row that could not become an Order, with the
// reason it was rejected. Excluded rows never abort a load.
type Exclusion struct {
	Row       int    `json:"row"`
	InquiryNo string `json:"inquiry_no,omitempty"`
	Reason    string `json:"reason"`
}

// Loader reads and cleans the order ledger from a CSV file.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load parses the ledger. Rows with an unparseable date or amount are
// collected as Exclusions alongside the valid orders; only an unreadable file
// or a broken header is an error.
func (l *Loader) Load() ([]model.Order, []Exclusion, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open ledger: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	dec, err := csvutil.NewDecoder(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("read ledger header: %w", err)
	}

	caser := cases.Title(language.English)

	var (
		orders     []model.Order
		exclusions []Exclusion
	)

	row := 1 // header
	for {
		row++
		var raw rawRow
		if err := dec.Decode(&raw); err == io.EOF {
			break
		} else if err != nil {
			exclusions = append(exclusions, Exclusion{Row: row, Reason: fmt.Sprintf("malformed row: %v", err)})
			continue
		}

		order, reason := cleanRow(raw, caser)
		if reason != "" {
			exclusions = append(exclusions, Exclusion{
				Row:       row,
				InquiryNo: strings.TrimSpace(raw.Inquiry),
				Reason:    reason,
			})
			continue
		}
		orders = append(orders, order)
	}

	return orders, exclusions, nil
}

// cleanRow converts one raw row into an Order, returning a non-empty reason
// when the row must be excluded.
func cleanRow(raw rawRow, caser cases.Caser) (model.Order, string) {
	date, err := parseDate(raw.Date)
	if err != nil {
		return model.Order{}, "unparseable order date: " + strings.TrimSpace(raw.Date)
	}

	total, err := parseAmount(raw.Total)
	if err != nil {
		return model.Order{}, "unparseable total amount: " + strings.TrimSpace(raw.Total)
	}

	order := model.Order{
		ID:       strings.TrimSpace(raw.Inquiry),
		Date:     date,
		Company:  titleCase(caser, raw.Company),
		Client:   strings.TrimSpace(raw.Client),
		Product:  strings.TrimSpace(raw.Product),
		Quantity: parseQuantity(raw.Qty),
		City:     strings.TrimSpace(raw.City),
		State:    cleanState(raw.State, caser),
		Total:    total,
		Year:     date.Year(),
		Month:    date.Month(),
	}

	// Delivery date is optional; a bad value just means no lead time.
	if delivery, err := parseDate(raw.Delivery); err == nil {
		order.Delivery = delivery
		order.LeadTimeDays = int(delivery.Sub(date).Hours() / 24)
	}

	return order, ""
}

// dateLayouts are tried in order; the sheet writes day-first dates.
var dateLayouts = []string{
	"02-01-2006",
	"2-1-2006",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseAmount strips the currency symbol and thousands separators the sheet
// uses before parsing.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty amount")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative amount %v", v)
	}
	return v, nil
}

// parseQuantity defaults to 1 when blank or unparseable, matching how the
// sheet is filled in practice.
func parseQuantity(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 1
	}
	return v
}

func cleanState(s string, caser cases.Caser) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "", strings.EqualFold(s, "n/a"), strings.EqualFold(s, "na"):
		return "Not Specified"
	}
	return caser.String(strings.ToLower(s))
}

func titleCase(caser cases.Caser, s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return caser.String(strings.ToLower(s))
}
