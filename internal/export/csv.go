// Package export renders finished search results to CSV for spreadsheet
// handoff and reads them back for verification.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/localleads/leads-cli/internal/model"
)

// notAvailable fills enrichment columns for leads that were never enriched.
const notAvailable = "N/A"

var header = []string{
	"place_id",
	"name",
	"address",
	"lat",
	"lng",
	"rating",
	"reviews",
	"phone",
	"website",
	"lead_score",
	"quality",
	"description",
	"company_size",
	"decision_makers",
	"pain_points",
	"recommended_approach",
	"outreach_template",
}

// WriteCSV writes the leads as CSV, one row per lead. Enrichment columns hold
// "N/A" for leads outside the enriched set.
func WriteCSV(w io.Writer, leads []model.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, l := range leads {
		if err := cw.Write(row(l)); err != nil {
			return eris.Wrapf(err, "export: write lead %s", l.PlaceID)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush")
}

func row(l model.Lead) []string {
	e := l.Enrichment
	if e == nil {
		e = &model.Enrichment{
			Description:         notAvailable,
			CompanySize:         notAvailable,
			DecisionMakers:      notAvailable,
			PainPoints:          notAvailable,
			RecommendedApproach: notAvailable,
			OutreachTemplate:    notAvailable,
		}
	}
	return []string{
		l.PlaceID,
		l.Name,
		l.BestAddress(),
		strconv.FormatFloat(l.Lat, 'f', 6, 64),
		strconv.FormatFloat(l.Lng, 'f', 6, 64),
		strconv.FormatFloat(l.Rating, 'f', 1, 64),
		strconv.Itoa(l.Reviews),
		l.Phone,
		l.Website,
		strconv.Itoa(l.LeadScore),
		model.QualityBand(l.LeadScore),
		e.Description,
		e.CompanySize,
		e.DecisionMakers,
		e.PainPoints,
		e.RecommendedApproach,
		e.OutreachTemplate,
	}
}

// ReadCSV parses leads previously written by WriteCSV. Rows whose enrichment
// columns are all "N/A" come back with a nil Enrichment.
func ReadCSV(r io.Reader) ([]model.Lead, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "export: read csv")
	}
	if len(records) == 0 {
		return nil, eris.New("export: empty csv")
	}
	if len(records[0]) != len(header) {
		return nil, eris.Errorf("export: expected %d columns, got %d", len(header), len(records[0]))
	}

	leads := make([]model.Lead, 0, len(records)-1)
	for i, rec := range records[1:] {
		lead, err := parseRow(rec)
		if err != nil {
			return nil, eris.Wrapf(err, "export: row %d", i+2)
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

func parseRow(rec []string) (model.Lead, error) {
	lat, err := strconv.ParseFloat(rec[3], 64)
	if err != nil {
		return model.Lead{}, eris.Wrap(err, "parse lat")
	}
	lng, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return model.Lead{}, eris.Wrap(err, "parse lng")
	}
	rating, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return model.Lead{}, eris.Wrap(err, "parse rating")
	}
	reviews, err := strconv.Atoi(rec[6])
	if err != nil {
		return model.Lead{}, eris.Wrap(err, "parse reviews")
	}
	score, err := strconv.Atoi(rec[9])
	if err != nil {
		return model.Lead{}, eris.Wrap(err, "parse lead_score")
	}

	lead := model.Lead{
		PlaceID:   rec[0],
		Name:      rec[1],
		Address:   rec[2],
		Lat:       lat,
		Lng:       lng,
		Rating:    rating,
		Reviews:   reviews,
		Phone:     rec[7],
		Website:   rec[8],
		LeadScore: score,
	}

	e := model.Enrichment{
		Description:         rec[11],
		CompanySize:         rec[12],
		DecisionMakers:      rec[13],
		PainPoints:          rec[14],
		RecommendedApproach: rec[15],
		OutreachTemplate:    rec[16],
	}
	if e != (model.Enrichment{
		Description:         notAvailable,
		CompanySize:         notAvailable,
		DecisionMakers:      notAvailable,
		PainPoints:          notAvailable,
		RecommendedApproach: notAvailable,
		OutreachTemplate:    notAvailable,
	}) {
		lead.Enrichment = &e
	}
	return lead, nil
}

// stripAccents folds accented characters to their base form so filenames stay
// portable across filesystems.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Filename derives a filesystem-safe CSV filename from a search location,
// e.g. "São Paulo, BR" -> "leads_sao_paulo_br.csv".
func Filename(location string) string {
	folded, _, err := transform.String(stripAccents, location)
	if err != nil {
		folded = location
	}
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore && b.Len() > 0:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	name := strings.TrimSuffix(b.String(), "_")
	if name == "" {
		name = "search"
	}
	return "leads_" + name + ".csv"
}
