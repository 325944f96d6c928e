package listing_test

import (
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"theaterwecker/core/metrics"
	"theaterwecker/feature/listing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func parseFixture(t *testing.T, layout listing.Layout, name string, w listing.Window, rec *metrics.Recorder) ([]listing.Candidate, *observer.ObservedLogs) {
	t.Helper()

	f, err := os.Open("testdata/" + name)
	require.NoError(t, err)
	defer f.Close()

	core, logs := observer.New(zap.DebugLevel)
	p := listing.NewParser(layout, listing.DefaultRules(), zap.New(core), rec)

	seq, err := p.Parse(f, w)
	require.NoError(t, err)
	return slices.Collect(seq), logs
}

func TestParseSchedule(t *testing.T) {
	rec := metrics.New()
	w := listing.Window{Year: 2024, Month: time.May}

	got, logs := parseFixture(t, listing.ScheduleLayout, "gesamtspielplan.html", w, rec)
	require.Len(t, got, 3)

	t.Run("FullRecord", func(t *testing.T) {
		assert.Equal(t, listing.Candidate{
			Year: 2024, Month: time.May, Day: 1, Hour: 19, Minute: 0,
			Location:    "Hall A",
			Category:    "Drama",
			HasCategory: true,
			Title:       "Hamlet",
			Description: "Tragödie in fünf Akten",
			Ticketed:    true,
		}, got[0])
	})

	t.Run("RemappedCategoryWithoutDescriptionOrTickets", func(t *testing.T) {
		c := got[1]
		assert.Equal(t, "Einführung", c.Title)
		assert.Equal(t, 2, c.Day)
		assert.Equal(t, 18, c.Hour)
		assert.Equal(t, 30, c.Minute)
		assert.Equal(t, "Foyer", c.Location)
		assert.Equal(t, listing.MiscCategory, c.Category)
		assert.True(t, c.HasCategory)
		assert.Equal(t, "", c.Description)
		assert.False(t, c.Ticketed)
	})

	t.Run("NonExcludedSpecialWithoutCategory", func(t *testing.T) {
		c := got[2]
		assert.Equal(t, "Die Zauberflöte", c.Title)
		assert.Equal(t, "Opernhaus", c.Location)
		assert.False(t, c.HasCategory)
		assert.Equal(t, "", c.Category)
		assert.True(t, c.Ticketed)
	})

	t.Run("GuestPerformanceNeverYielded", func(t *testing.T) {
		for _, c := range got {
			assert.NotEqual(t, "Visiting Company", c.Title)
			assert.NotEqual(t, "Undated", c.Title)
		}
	})

	t.Run("MalformedRecordsReported", func(t *testing.T) {
		expected := `
# HELP theaterwecker_listing_malformed_records_total Records dropped by the parser, by reason
# TYPE theaterwecker_listing_malformed_records_total counter
theaterwecker_listing_malformed_records_total{reason="time_location"} 1
theaterwecker_listing_malformed_records_total{reason="title"} 1
`
		assert.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected),
			"theaterwecker_listing_malformed_records_total"))
		assert.Equal(t, 2, logs.FilterMessage("Dropping malformed listing record").Len())
	})
}

func TestParseRepertoire(t *testing.T) {
	w := listing.Window{Year: 2024, Month: time.June}

	got, _ := parseFixture(t, listing.RepertoireLayout, "repertoire.html", w, nil)
	require.Len(t, got, 2)

	assert.Equal(t, listing.Candidate{
		Year: 2024, Month: time.June, Day: 12, Hour: 19, Minute: 30,
		Location:    "Schauspielhaus",
		Category:    "Schauspiel",
		HasCategory: true,
		Title:       "Faust",
		Description: "Der Tragödie erster Teil",
		Ticketed:    true,
	}, got[0])

	assert.Equal(t, "Der kleine Prinz", got[1].Title)
	assert.Equal(t, 14, got[1].Day)
	assert.False(t, got[1].Ticketed)
}

func TestParseIsLazy(t *testing.T) {
	f, err := os.Open("testdata/gesamtspielplan.html")
	require.NoError(t, err)
	defer f.Close()

	p := listing.NewParser(listing.ScheduleLayout, listing.DefaultRules(), nil, nil)
	seq, err := p.Parse(f, listing.Window{Year: 2024, Month: time.May})
	require.NoError(t, err)

	var titles []string
	for c := range seq {
		titles = append(titles, c.Title)
		break
	}
	assert.Equal(t, []string{"Hamlet"}, titles)

	// The sequence can be walked again from the start.
	assert.Len(t, slices.Collect(seq), 3)
}

func TestParseEmptyDocument(t *testing.T) {
	p := listing.NewParser(listing.ScheduleLayout, listing.DefaultRules(), nil, nil)
	seq, err := p.Parse(strings.NewReader("<html><body><p>Wartungsarbeiten</p></body></html>"), listing.Window{Year: 2024, Month: time.May})
	require.NoError(t, err)
	assert.Empty(t, slices.Collect(seq))
}

func TestParseInvalidClock(t *testing.T) {
	doc := `<div class="block_top"><div class="pr_box_data_01">3</div>
<div class="pr_box_info"><div class="news_box_in_left_in_top">25:61 Uhr Hall A</div>
<a class="mini_title_link_b">Late</a></div></div>`

	p := listing.NewParser(listing.ScheduleLayout, listing.DefaultRules(), nil, nil)
	seq, err := p.Parse(strings.NewReader(doc), listing.Window{Year: 2024, Month: time.May})
	require.NoError(t, err)
	assert.Empty(t, slices.Collect(seq))
}

func TestParseTicketLink(t *testing.T) {
	tests := []struct {
		name string
		link string
		want bool
	}{
		{"LinkWithText", `<a class="karten" href="/karten">Karten</a>`, true},
		{"LinkWithoutText", `<a class="karten" href="/karten/17"></a>`, true},
		{"TextWithoutHref", `<a class="karten">Karten</a>`, true},
		{"EmptyAnchor", `<a class="karten"></a>`, false},
		{"BlankHref", `<a class="karten" href="  "> </a>`, false},
		{"NoLink", ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<div class="block_top"><div class="pr_box_data_01">3</div>
<div class="pr_box_info"><div class="news_box_in_left_in_top">19:00 Uhr Hall A</div>
<a class="mini_title_link_b">Hamlet</a>` + tt.link + `</div></div>`

			p := listing.NewParser(listing.ScheduleLayout, listing.DefaultRules(), nil, nil)
			seq, err := p.Parse(strings.NewReader(doc), listing.Window{Year: 2024, Month: time.May})
			require.NoError(t, err)

			got := slices.Collect(seq)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Ticketed)
		})
	}
}

func TestLayoutFor(t *testing.T) {
	l, err := listing.LayoutFor("")
	assert.NoError(t, err)
	assert.Equal(t, listing.ScheduleLayout.Name, l.Name)

	l, err = listing.LayoutFor(listing.ModeRepertoire)
	assert.NoError(t, err)
	assert.Equal(t, listing.RepertoireLayout.Name, l.Name)

	_, err = listing.LayoutFor("rss")
	assert.EqualError(t, err, "unsupported listing mode: rss")
}
