package nameparse

import (
	"errors"
	"testing"

	"github.com/heartmarshall/namematch-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want domain.ParsedName
	}{
		{
			name: "binomial with author",
			raw:  "Rosa canina L.",
			want: domain.ParsedName{Genus: "Rosa", SpecificEpithet: "canina", AuthorText: "L."},
		},
		{
			name: "genus only",
			raw:  "Rosa",
			want: domain.ParsedName{Genus: "Rosa"},
		},
		{
			name: "genus with author",
			raw:  "Rosa L.",
			want: domain.ParsedName{Genus: "Rosa", AuthorText: "L."},
		},
		{
			name: "surrounding whitespace",
			raw:  "   Rosa   canina  ",
			want: domain.ParsedName{Genus: "Rosa", SpecificEpithet: "canina"},
		},
		{
			name: "standalone hybrid sign",
			raw:  "Mentha × piperita L.",
			want: domain.ParsedName{Genus: "Mentha", SpecificEpithet: "piperita", AuthorText: "L.", Hybrid: true},
		},
		{
			name: "prefixed hybrid sign",
			raw:  "Mentha ×piperita L.",
			want: domain.ParsedName{Genus: "Mentha", SpecificEpithet: "piperita", AuthorText: "L.", Hybrid: true},
		},
		{
			name: "letter x as hybrid sign",
			raw:  "Mentha x piperita",
			want: domain.ParsedName{Genus: "Mentha", SpecificEpithet: "piperita", Hybrid: true},
		},
		{
			name: "hybrid genus",
			raw:  "× Crataemespilus gillotii",
			want: domain.ParsedName{Genus: "Crataemespilus", SpecificEpithet: "gillotii", Hybrid: true},
		},
		{
			name: "variety with basionym author",
			raw:  "Rosa canina var. glauca (Vill.) Desv.",
			want: domain.ParsedName{
				Genus: "Rosa", SpecificEpithet: "canina", InfraspecificEpithet: "glauca",
				RankMarker: "var.", AuthorText: "(Vill.) Desv.",
			},
		},
		{
			name: "alternative marker spelling",
			raw:  "Rosa canina ssp. dumalis",
			want: domain.ParsedName{
				Genus: "Rosa", SpecificEpithet: "canina", InfraspecificEpithet: "dumalis", RankMarker: "subsp.",
			},
		},
		{
			name: "species author before marker is dropped",
			raw:  "Rosa canina L. subsp. dumalis (Bechst.) Rouy",
			want: domain.ParsedName{
				Genus: "Rosa", SpecificEpithet: "canina", InfraspecificEpithet: "dumalis",
				RankMarker: "subsp.", AuthorText: "(Bechst.) Rouy",
			},
		},
		{
			name: "later marker wins",
			raw:  "Rosa canina subsp. dumalis var. glauca Desv.",
			want: domain.ParsedName{
				Genus: "Rosa", SpecificEpithet: "canina", InfraspecificEpithet: "glauca",
				RankMarker: "var.", AuthorText: "Desv.",
			},
		},
		{
			name: "trailing f. stays in author text",
			raw:  "Rosa canina L. f.",
			want: domain.ParsedName{Genus: "Rosa", SpecificEpithet: "canina", AuthorText: "L. f."},
		},
		{
			name: "author abbreviation that looks like a marker",
			raw:  "Rosa canina Ser. ex DC.",
			want: domain.ParsedName{Genus: "Rosa", SpecificEpithet: "canina", AuthorText: "Ser. ex DC."},
		},
		{
			name: "infrageneric marker",
			raw:  "Rosa sect. Caninae",
			want: domain.ParsedName{Genus: "Rosa", InfraspecificEpithet: "Caninae", RankMarker: "sect."},
		},
		{
			name: "trinomial without marker",
			raw:  "Rosa canina dumalis",
			want: domain.ParsedName{Genus: "Rosa", SpecificEpithet: "canina", InfraspecificEpithet: "dumalis"},
		},
		{
			name: "infrageneric name in parentheses",
			raw:  "Rosa (Eurosa) canina L.",
			want: domain.ParsedName{Genus: "Rosa", SpecificEpithet: "canina", AuthorText: "L."},
		},
		{
			name: "author particle",
			raw:  "Aster de Candollei",
			want: domain.ParsedName{Genus: "Aster", AuthorText: "de Candollei"},
		},
		{
			name: "author spacing preserved",
			raw:  "Rosa canina  J.  Presl",
			want: domain.ParsedName{Genus: "Rosa", SpecificEpithet: "canina", AuthorText: "J.  Presl"},
		},
		{
			name: "quoted hybrid formula",
			raw:  `Rosa "canina × gallica"`,
			want: domain.ParsedName{Genus: "Rosa", AuthorText: `"canina × gallica"`, Hybrid: true},
		},
		{
			name: "hyphenated epithet",
			raw:  "Aster novae-angliae L.",
			want: domain.ParsedName{Genus: "Aster", SpecificEpithet: "novae-angliae", AuthorText: "L."},
		},
		{
			name: "lowercase genus",
			raw:  "rosa canina",
			want: domain.ParsedName{Genus: "rosa", SpecificEpithet: "canina"},
		},
		{
			name: "leading noise skipped",
			raw:  "1. Rosa canina",
			want: domain.ParsedName{Genus: "Rosa", SpecificEpithet: "canina"},
		},
		{
			name: "hybrid sign inside a word",
			raw:  "Rosa×damascena Mill.",
			want: domain.ParsedName{Genus: "Rosa", SpecificEpithet: "damascena", AuthorText: "Mill.", Hybrid: true},
		},
		{
			name: "trailing hybrid sign on genus",
			raw:  "Mentha× piperita",
			want: domain.ParsedName{Genus: "Mentha", SpecificEpithet: "piperita", Hybrid: true},
		},
		{
			name: "all capitals",
			raw:  "ROSA CANINA L.",
			want: domain.ParsedName{Genus: "ROSA", SpecificEpithet: "CANINA", AuthorText: "L."},
		},
		{
			name: "all capitals with marker",
			raw:  "ROSA CANINA VAR. GLAUCA",
			want: domain.ParsedName{Genus: "ROSA", SpecificEpithet: "CANINA", InfraspecificEpithet: "GLAUCA", RankMarker: "var."},
		},
		{
			name: "capital author after mixed-case genus",
			raw:  "Rosa canina DC",
			want: domain.ParsedName{Genus: "Rosa", SpecificEpithet: "canina", AuthorText: "DC"},
		},
		{
			name: "alphabetic token without a name-like word",
			raw:  "Mill.",
			want: domain.ParsedName{Genus: "Mill"},
		},
		{
			name: "fallback genus keeps following author text",
			raw:  "42 L'Hér. DC.",
			want: domain.ParsedName{Genus: "LHér", AuthorText: "DC."},
		},
		{
			name: "nothosubspecies marks hybrid",
			raw:  "Mentha spicata nothosubsp. glabrata",
			want: domain.ParsedName{
				Genus: "Mentha", SpecificEpithet: "spicata", InfraspecificEpithet: "glabrata",
				RankMarker: "nothosubsp.", Hybrid: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        string
		wantReason Reason
		wantErr    error
	}{
		{name: "empty", raw: "", wantReason: ReasonEmptyInput, wantErr: domain.ErrEmptyInput},
		{name: "whitespace", raw: " \t\n ", wantReason: ReasonEmptyInput, wantErr: domain.ErrEmptyInput},
		{name: "digits", raw: "123 456", wantReason: ReasonUnparseable, wantErr: domain.ErrUnparseable},
		{name: "punctuation", raw: "?? !!", wantReason: ReasonUnparseable, wantErr: domain.ErrUnparseable},
		{name: "single letters", raw: "a b c", wantReason: ReasonUnparseable, wantErr: domain.ErrUnparseable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.wantReason, pe.Reason)
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "collapses spaces", raw: "  Rosa   canina  L. ", want: "Rosa canina L."},
		{name: "hybrid species", raw: "Mentha x piperita", want: "Mentha × piperita"},
		{name: "hybrid genus", raw: "×Crataemespilus", want: "× Crataemespilus"},
		{name: "marker", raw: "Rosa canina  var.  glauca (Vill.)  Desv.", want: "Rosa canina var. glauca (Vill.) Desv."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Format(p))
		})
	}
}

func TestRankForMarker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		marker string
		want   domain.Rank
		ok     bool
	}{
		{"subsp.", domain.RankSubspecies, true},
		{"ssp", domain.RankSubspecies, true},
		{"var.", domain.RankVariety, true},
		{"Forma", domain.RankForm, true},
		{"sect.", domain.RankSection, true},
		{"cv.", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			t.Parallel()

			got, ok := RankForMarker(tt.marker)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarkerForRank_RoundTrip(t *testing.T) {
	t.Parallel()

	for marker, rank := range markerRanks {
		if marker != MarkerForRank(rank) {
			// notho- markers share a rank with their plain counterparts.
			continue
		}
		got, ok := RankForMarker(MarkerForRank(rank))
		require.True(t, ok, marker)
		assert.Equal(t, rank, got)
	}
	assert.Empty(t, MarkerForRank(domain.RankSpecies))
	assert.Empty(t, MarkerForRank(domain.RankGenus))
}

func TestTokenize_SplitsInnerHybridSign(t *testing.T) {
	t.Parallel()

	raw := "Rosa×damascena Mill."
	got := tokenize(raw)

	require.Len(t, got, 3)
	assert.Equal(t, token{text: "Rosa", start: 0, end: 4, kind: tokenWord}, got[0])
	assert.Equal(t, token{text: "×damascena", start: 4, end: 15, kind: tokenWord}, got[1])
	assert.Equal(t, "Mill.", raw[got[2].start:got[2].end])

	lone := tokenize("×")
	require.Len(t, lone, 1)
	assert.Equal(t, "×", lone[0].text)
}
