package listing

import "fmt"

// Layout is the set of selectors describing one listing markup format.
type Layout struct {
	Name string

	// Block selects the top-level listing blocks.
	Block string
	// Day selects the day-of-month marker inside a block.
	Day string
	// Info selects the per-performance sub-blocks of a block. Empty means the
	// block itself is a single performance.
	Info string

	// Time selects the "HH:MM Uhr [location]" text.
	Time string
	// Location selects a separate venue element. Empty means the venue follows
	// the time in the Time element.
	Location string

	Special     string
	Category    string
	Title       string
	Description string
	Ticket      string
}

// ScheduleLayout matches the full schedule (gesamtspielplan) markup.
var ScheduleLayout = Layout{
	Name:        ModeSchedule,
	Block:       "div.block_top",
	Day:         "div.pr_box_data_01",
	Info:        "div.pr_box_info",
	Time:        ".news_box_in_left_in_top",
	Special:     "span.pr_red",
	Category:    ".pr_box_content_right_table_top",
	Title:       ".mini_title_link_b",
	Description: ".news_box_descript",
	Ticket:      "a.karten",
}

// RepertoireLayout matches the repertoire markup.
var RepertoireLayout = Layout{
	Name:        ModeRepertoire,
	Block:       "div.cc_news_item",
	Day:         ".cc_news_date .cc_day",
	Time:        ".cc_news_date .cc_timeresp",
	Location:    ".cc_content",
	Special:     ".cc_premiere",
	Category:    ".cc_news_date .cc_type",
	Title:       "h2",
	Description: "h3",
	Ticket:      "a.cc_ticket",
}

// LayoutFor returns the layout for a listing mode.
func LayoutFor(mode string) (Layout, error) {
	switch mode {
	case ModeSchedule, "":
		return ScheduleLayout, nil
	case ModeRepertoire:
		return RepertoireLayout, nil
	default:
		return Layout{}, fmt.Errorf("unsupported listing mode: %s", mode)
	}
}
