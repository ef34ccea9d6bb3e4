package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localleads/leads-cli/internal/model"
)

func sampleLeads() []model.Lead {
	return []model.Lead{
		{
			PlaceID:     "p1",
			Name:        "Acme Plumbing",
			Address:     "12 Main St",
			FullAddress: "12 Main St, Springfield, IL 62701, USA",
			Lat:         39.781721,
			Lng:         -89.650148,
			Rating:      4.6,
			Reviews:     210,
			Phone:       "(217) 555-0101",
			Website:     "https://acmeplumbing.example",
			LeadScore:   90,
			Enrichment: &model.Enrichment{
				Description:         "Family-owned plumbing contractor.",
				CompanySize:         "Small (estimated 5-20 employees)",
				DecisionMakers:      "Owner or Office Manager",
				PainPoints:          "Scheduling, seasonal demand",
				RecommendedApproach: "Call mid-morning.",
				OutreachTemplate:    "Hello, I noticed Acme Plumbing...",
			},
		},
		{
			PlaceID:   "p2",
			Name:      "Budget Movers",
			Address:   "4 Elm St",
			Lat:       39.79,
			Lng:       -89.64,
			Rating:    3.9,
			Reviews:   40,
			LeadScore: 50,
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	leads := sampleLeads()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, leads))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "p1", got[0].PlaceID)
	assert.Equal(t, "Acme Plumbing", got[0].Name)
	// writer exports the best available address
	assert.Equal(t, leads[0].FullAddress, got[0].Address)
	assert.InDelta(t, leads[0].Lat, got[0].Lat, 1e-6)
	assert.InDelta(t, leads[0].Lng, got[0].Lng, 1e-6)
	assert.InDelta(t, 4.6, got[0].Rating, 0.01)
	assert.Equal(t, 210, got[0].Reviews)
	assert.Equal(t, 90, got[0].LeadScore)
	require.NotNil(t, got[0].Enrichment)
	assert.Equal(t, leads[0].Enrichment.OutreachTemplate, got[0].Enrichment.OutreachTemplate)

	// un-enriched lead round-trips back to nil enrichment
	assert.Nil(t, got[1].Enrichment)
}

func TestWriteCSV_UnenrichedColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleLeads()[1:]))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, header, records[0])

	row := records[1]
	for i := 11; i < len(row); i++ {
		assert.Equal(t, "N/A", row[i])
	}
	assert.Equal(t, model.QualityLow, row[10])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadCSV_Malformed(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("a,b,c\n1,2,3\n"))
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"Springfield, IL", "leads_springfield_il.csv"},
		{"São Paulo, BR", "leads_sao_paulo_br.csv"},
		{"  New   York  ", "leads_new_york.csv"},
		{"Zürich", "leads_zurich.csv"},
		{"", "leads_search.csv"},
		{"!!!", "leads_search.csv"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.location), "location %q", tt.location)
	}
}
