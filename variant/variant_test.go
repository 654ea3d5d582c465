package variant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Variants(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "single lower-case word collapses duplicates",
			query: "phone",
			want:  []string{"phone", "PHONE", "Phone"},
		},
		{
			name:  "mixed case keeps original first",
			query: "iPhone",
			want:  []string{"iPhone", "iphone", "IPHONE", "Iphone", "IPhone"},
		},
		{
			name:  "multiple words produce all five",
			query: "rED phone",
			want:  []string{"rED phone", "red phone", "RED PHONE", "Red phone", "RED Phone"},
		},
		{
			name:  "already upper",
			query: "TV",
			want:  []string{"TV", "tv", "Tv"},
		},
		{
			name:  "digits only",
			query: "42",
			want:  []string{"42"},
		},
		{
			name:  "non-ascii",
			query: "élan vital",
			want:  []string{"élan vital", "ÉLAN VITAL", "Élan vital", "Élan Vital"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Default().Variants(tt.query))
		})
	}
}

func TestDefault_Properties(t *testing.T) {
	queries := []string{"a", "ab", "Phone", "PHONE", "the red fox", "x-ray specs", "ÅNGSTRÖM", "1st place"}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			variants := Default().Variants(q)
			require.NotEmpty(t, variants)
			assert.LessOrEqual(t, len(variants), MaxVariants)
			assert.Equal(t, q, variants[0], "original comes first")
			assert.Contains(t, variants, strings.ToLower(q))

			seen := make(map[string]bool)
			for _, v := range variants {
				assert.False(t, seen[v], "duplicate variant %q", v)
				seen[v] = true
			}
		})
	}
}

func TestTitle(t *testing.T) {
	tests := map[string]string{
		"iPHONE case":       "IPHONE Case",
		"rock-n-roll shoes": "Rock-n-roll Shoes",
		"o'neil  boots":     "O'neil  Boots",
		"red\tphone":        "Red\tPhone",
		"élan vital":        "Élan Vital",
	}
	for in, want := range tests {
		assert.Equal(t, want, Title.Apply(in), in)
	}
}

func TestLower_FinalSigma(t *testing.T) {
	// Unicode lower-casing maps a word-final sigma to ς, unlike strings.ToLower.
	variants := Default().Variants("ΟΔΟΣ")
	assert.Contains(t, variants, "οδος")
	assert.NotContains(t, variants, strings.ToLower("ΟΔΟΣ"))
}

func TestVariants_EmptyQuery(t *testing.T) {
	assert.Nil(t, Default().Variants(""))
}

func TestExact(t *testing.T) {
	assert.Equal(t, []string{"Phone"}, Exact().Variants("Phone"))
}

func TestPolicy_Names(t *testing.T) {
	assert.Equal(t, []string{"original", "lower", "upper", "capitalize", "title"}, Default().Names())
}

func TestNew_CustomOrder(t *testing.T) {
	p := New(Upper, Original)
	assert.Equal(t, []string{"PHONE", "phone"}, p.Variants("phone"))
}

func TestPolicy_ZeroValue(t *testing.T) {
	var p Policy
	assert.Empty(t, p.Variants("phone"))
}
