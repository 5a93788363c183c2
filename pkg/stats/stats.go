// Package stats holds the account statistics rendered onto a card and the
// formatting rules for turning them into placeholder text.
package stats

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/statcardhq/statcard/pkg/layout"
)

// Stats is one complete set of account statistics. All counts are
// non-negative; a negative value indicates a caller bug and renders as-is
// rather than being silently corrected.
type Stats struct {
	Repos       int       // repositories owned by the account
	Stars       int       // stars across owned repositories
	Commits     int       // contributions in the commit window
	Contributed int       // repositories contributed to, any affiliation
	Followers   int       // follower count
	CreatedAt   time.Time // account creation time
}

// FormatCount renders a count with thousands separators, e.g. 1234 -> "1,234".
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// Substitutions renders every placeholder text for s: the five formatted
// counts, the age line, and the justification pads sized to the rendered
// count widths.
func (s Stats) Substitutions(l layout.Layout, age string) map[layout.Slot]string {
	repo := FormatCount(s.Repos)
	contrib := FormatCount(s.Contributed)
	star := FormatCount(s.Stars)
	commit := FormatCount(s.Commits)
	follower := FormatCount(s.Followers)

	out := map[layout.Slot]string{
		layout.SlotAge:      age,
		layout.SlotRepo:     repo,
		layout.SlotContrib:  contrib,
		layout.SlotStar:     star,
		layout.SlotCommit:   commit,
		layout.SlotFollower: follower,
	}

	vw := layout.ValueWidths{Repo: len(repo), Contrib: len(contrib), Commit: len(commit)}
	for slot, pad := range l.Plan(vw).Render() {
		out[slot] = pad
	}
	return out
}

// FormatAge renders the time since birth as "X years, Y months, Z weeks",
// pluralized per unit, with a trailing birthday cake when the age lands on a
// whole year.
func FormatAge(birth, now time.Time) string {
	years, months, days := dateDiff(birth, now)
	weeks := days / 7

	suffix := ""
	if months == 0 && weeks == 0 {
		suffix = " 🎂"
	}
	return fmt.Sprintf("%d year%s, %d month%s, %d week%s%s",
		years, plural(years),
		months, plural(months),
		weeks, plural(weeks),
		suffix)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// dateDiff returns the calendar difference now - birth as whole years,
// months, and leftover days: the largest month count whose anniversary does
// not pass now, then the days remaining. Anniversaries landing on a short
// month clamp to its last day, the way human age reckoning does.
func dateDiff(birth, now time.Time) (years, months, days int) {
	total := (now.Year()-birth.Year())*12 + int(now.Month()) - int(birth.Month())
	if addMonths(birth, total).After(now) {
		total--
	}
	anchor := addMonths(birth, total)
	days = int(now.Sub(anchor).Hours() / 24)
	return total / 12, total % 12, days
}

// addMonths shifts t by n months, clamping the day of month instead of
// rolling into the next month the way time.AddDate does.
func addMonths(t time.Time, n int) time.Time {
	y := t.Year()
	m := int(t.Month()) - 1 + n
	y += m / 12
	m %= 12
	if m < 0 {
		m += 12
		y--
	}
	d := t.Day()
	// day 0 of the following month is the last day of month m
	if last := time.Date(y, time.Month(m+2), 0, 0, 0, 0, 0, t.Location()).Day(); d > last {
		d = last
	}
	return time.Date(y, time.Month(m+1), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
