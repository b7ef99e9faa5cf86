package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var namingNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func TestArtifactName(t *testing.T) {
	tests := []struct {
		name  string
		table string
		year  int
		cfg   NamingConfig
		want  string
	}{
		{
			name:  "default pattern",
			table: "SALES",
			year:  2008,
			cfg:   NamingConfig{},
			want:  "SALES-2008",
		},
		{
			name:  "prefix with year placeholder and lowercase",
			table: "Sales",
			year:  2020,
			cfg:   NamingConfig{TablePrefix: "hist-{year}-", LowercaseNames: true},
			want:  "hist-2020-sales",
		},
		{
			name:  "suffix with year placeholder",
			table: "AT2",
			year:  2011,
			cfg:   NamingConfig{TablePrefix: "x-", TableSuffix: "_{year}"},
			want:  "x-AT2_2011",
		},
		{
			name:  "spaces replaced",
			table: "Monthly Sales",
			year:  2010,
			cfg:   NamingConfig{ReplaceSpaces: true},
			want:  "Monthly_Sales-2010",
		},
		{
			name:  "sanitized",
			table: "Venta$ (AT2)",
			year:  2009,
			cfg:   NamingConfig{ReplaceSpaces: true, SanitizeChars: true},
			want:  "Venta_AT2-2009",
		},
		{
			name:  "timestamp suffix",
			table: "T",
			year:  2008,
			cfg:   NamingConfig{TimestampSuffix: true},
			want:  "T-2008_20240315_103000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ArtifactName(tt.table, tt.year, tt.cfg, namingNow)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArtifactName_Idempotent(t *testing.T) {
	cfg := NamingConfig{TablePrefix: "p-{year}-", LowercaseNames: true, SanitizeChars: true}
	first := ArtifactName("Sales", 2020, cfg, namingNow)
	second := ArtifactName("Sales", 2020, cfg, namingNow)
	assert.Equal(t, first, second)
}

func TestArtifactName_DistinctPairs(t *testing.T) {
	cfg := NamingConfig{}
	seen := make(map[string]bool)
	for _, table := range []string{"A", "B", "SALES"} {
		for _, year := range []int{2008, 2009, 2010} {
			name := ArtifactName(table, year, cfg, namingNow)
			assert.False(t, seen[name], "collision for %s/%d", table, year)
			seen[name] = true
		}
	}
}
