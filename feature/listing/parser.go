package listing

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"theaterwecker/core/metrics"
	"theaterwecker/core/utils"
)

// MiscCategory is the canonical "miscellaneous" category name.
const MiscCategory = "Sonstiges"

// timeLocationPattern matches "19:30 Uhr Opernhaus". The venue stops at the
// first character that is neither a letter, a digit nor whitespace.
var timeLocationPattern = regexp.MustCompile(`^(\d{2}):(\d{2})\s*Uhr\s*([\p{L}\p{N}_\s]*)`)

// Rules are the content filters applied to every record.
type Rules struct {
	// ExcludedSpecials drops records whose special marker is in the set.
	ExcludedSpecials []string
	// CategoryRemap renames categories before resolution.
	CategoryRemap map[string]string
}

// DefaultRules drops guest performances and files the theater's side program
// under the miscellaneous category.
func DefaultRules() Rules {
	return Rules{
		ExcludedSpecials: []string{"Gastspiel"},
		CategoryRemap: map[string]string{
			"Theaternahes Rahmenprogramm": MiscCategory,
		},
	}
}

// Parser turns listing markup into candidates.
type Parser struct {
	layout  Layout
	rules   Rules
	logger  *zap.Logger
	metrics *metrics.Recorder
}

// NewParser creates a Parser for layout. logger and rec may be nil.
func NewParser(layout Layout, rules Rules, logger *zap.Logger, rec *metrics.Recorder) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{layout: layout, rules: rules, logger: logger, metrics: rec}
}

// Parse reads the document for window w and returns its candidates as a lazy
// sequence. Only an unreadable document is an error; defective records are
// dropped and reported one by one while the sequence is consumed.
func (p *Parser) Parse(r io.Reader, w Window) (iter.Seq[Candidate], error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing document: %w", err)
	}

	return func(yield func(Candidate) bool) {
		doc.Find(p.layout.Block).EachWithBreak(func(_ int, block *goquery.Selection) bool {
			day, ok := p.day(block)
			if !ok {
				return true
			}

			infos := block
			if p.layout.Info != "" {
				infos = block.Find(p.layout.Info)
			}

			more := true
			infos.EachWithBreak(func(_ int, info *goquery.Selection) bool {
				c, err := p.candidate(info, w, day)
				if err != nil {
					p.drop(w, err)
					return true
				}
				if !yield(c) {
					more = false
				}
				return more
			})
			return more
		})
	}, nil
}

func (p *Parser) day(block *goquery.Selection) (int, bool) {
	sel := block.Find(p.layout.Day).First()
	if sel.Length() == 0 {
		return 0, false
	}
	text := strings.TrimSuffix(utils.NormalizeSpace(sel.Text()), ".")
	day, err := strconv.Atoi(text)
	if err != nil || day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}

func (p *Parser) candidate(info *goquery.Selection, w Window, day int) (Candidate, error) {
	c := Candidate{Year: w.Year, Month: w.Month, Day: day}

	raw, ok := p.text(info, p.layout.Time)
	if !ok {
		return c, &MalformedRecordError{Field: "time_location"}
	}
	m := timeLocationPattern.FindStringSubmatch(raw)
	if m == nil {
		return c, &MalformedRecordError{Field: "time_location", Text: raw}
	}
	c.Hour, _ = strconv.Atoi(m[1])
	c.Minute, _ = strconv.Atoi(m[2])
	if c.Hour > 23 || c.Minute > 59 {
		return c, &MalformedRecordError{Field: "time_location", Text: raw}
	}
	c.Location = utils.NormalizeSpace(m[3])
	if p.layout.Location != "" {
		c.Location, _ = p.text(info, p.layout.Location)
	}

	if special, ok := p.text(info, p.layout.Special); ok {
		for _, excluded := range p.rules.ExcludedSpecials {
			if special == excluded {
				return c, fmt.Errorf("%w: %s", errExcluded, special)
			}
		}
	}

	if category, ok := p.text(info, p.layout.Category); ok && category != "" {
		if remapped, found := p.rules.CategoryRemap[category]; found {
			category = remapped
		}
		c.Category = category
		c.HasCategory = true
	}

	title, ok := p.text(info, p.layout.Title)
	if !ok || title == "" {
		return c, &MalformedRecordError{Field: "title"}
	}
	c.Title = title

	c.Description, _ = p.text(info, p.layout.Description)
	c.Ticketed = p.ticketed(info)

	return c, nil
}

// ticketed reports whether the ticket link is present and points somewhere:
// a non-blank href or visible link text. A bare anchor does not count.
func (p *Parser) ticketed(info *goquery.Selection) bool {
	link := info.Find(p.layout.Ticket).First()
	if link.Length() == 0 {
		return false
	}
	href, _ := link.Attr("href")
	return strings.TrimSpace(href) != "" || utils.NormalizeSpace(link.Text()) != ""
}

func (p *Parser) text(info *goquery.Selection, selector string) (string, bool) {
	if selector == "" {
		return "", false
	}
	sel := info.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return utils.NormalizeSpace(sel.Text()), true
}

func (p *Parser) drop(w Window, err error) {
	var malformed *MalformedRecordError
	if errors.As(err, &malformed) {
		p.logger.Warn("Dropping malformed listing record",
			zap.String("window", w.String()),
			zap.String("field", malformed.Field),
			zap.String("text", malformed.Text))
		p.metrics.MalformedRecord(malformed.Field)
		return
	}
	p.logger.Debug("Skipping listing record",
		zap.String("window", w.String()),
		zap.Error(err))
}
