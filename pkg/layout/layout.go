// Package layout computes the justification padding for the two stat lines
// of a profile card template.
//
// The card renders two sibling lines whose left blocks end in a vertical
// separator and whose right blocks end at a shared edge:
//
//	. Repos: ..   42 {Contributed: 58} | Stars: ......... 1,234
//	. Commits: ............. 2,048     | Followers: .....   321
//
// The numeric values vary in width between runs, so the dot runs between a
// label and its value are recomputed on every render. All fixed widths are
// derived from the label text of the layout in use; nothing about a
// particular template is hardcoded in the arithmetic.
package layout

import "fmt"

// Slot identifies a placeholder element in the card template. The value is
// the element id the patcher looks up in the SVG document.
type Slot string

// Placeholder slots recognized by the default card templates.
const (
	SlotAge          Slot = "age_data"
	SlotRepo         Slot = "repo_data"
	SlotRepoDots     Slot = "repo_data_dots"
	SlotContrib      Slot = "contrib_data"
	SlotStar         Slot = "star_data"
	SlotStarDots     Slot = "star_data_dots"
	SlotCommit       Slot = "commit_data"
	SlotCommitDots   Slot = "commit_data_dots"
	SlotFollower     Slot = "follower_data"
	SlotFollowerDots Slot = "follower_data_dots"
)

// Slots returns every known slot in template order.
func Slots() []Slot {
	return []Slot{
		SlotAge,
		SlotRepo, SlotRepoDots,
		SlotContrib,
		SlotStar, SlotStarDots,
		SlotCommit, SlotCommitDots,
		SlotFollower, SlotFollowerDots,
	}
}

// Valid reports whether s names a known placeholder.
func (s Slot) Valid() bool {
	switch s {
	case SlotAge,
		SlotRepo, SlotRepoDots,
		SlotContrib,
		SlotStar, SlotStarDots,
		SlotCommit, SlotCommitDots,
		SlotFollower, SlotFollowerDots:
		return true
	}
	return false
}

// ID returns the element id carried by the placeholder in the template.
func (s Slot) ID() string { return string(s) }

// Layout describes the fixed label text of the two stat lines. The pad
// arithmetic only ever sees widths computed from these strings, so a
// template with different labels just supplies its own Layout.
type Layout struct {
	Line1Label   string // leading label of line 1, before the repo count
	ContribOpen  string // fixed text between the repo count and the contributed count
	ContribClose string // fixed text closing the contributed block
	Line2Label   string // leading label of line 2, before the commit count
	Line1Trailer string // trailing label of line 1, after the separator
	Line2Trailer string // trailing label of line 2, after the separator
}

// Default returns the layout matching the stock card templates.
func Default() Layout {
	return Layout{
		Line1Label:   ". Repos:",
		ContribOpen:  " {Contributed: ",
		ContribClose: "}",
		Line2Label:   ". Commits:",
		Line1Trailer: "Stars:",
		Line2Trailer: "Followers:",
	}
}

// Line1Fixed returns the character width of line 1's left block with every
// dynamic value removed.
func (l Layout) Line1Fixed() int {
	return len(l.Line1Label) + len(l.ContribOpen) + len(l.ContribClose)
}

// Line2Fixed returns the character width of line 2's left block with the
// commit count removed.
func (l Layout) Line2Fixed() int {
	return len(l.Line2Label)
}

// TrailerDelta returns how many characters longer line 2's trailing label is
// than line 1's. The shorter trailer absorbs this many extra dots so the
// right edges meet.
func (l Layout) TrailerDelta() int {
	return len(l.Line2Trailer) - len(l.Line1Trailer)
}

// Validate checks that the layout's labels are present. A layout with empty
// leading labels cannot be aligned against anything.
func (l Layout) Validate() error {
	if l.Line1Label == "" || l.Line2Label == "" {
		return fmt.Errorf("layout: leading labels must not be empty")
	}
	if l.Line1Trailer == "" || l.Line2Trailer == "" {
		return fmt.Errorf("layout: trailing labels must not be empty")
	}
	return nil
}

// Plan computes the pad lengths for the given rendered value widths using
// fixed widths derived from the layout's labels.
func (l Layout) Plan(vw ValueWidths) PadPlan {
	return ComputePadding(l.Line1Fixed(), l.Line2Fixed(), vw, l.TrailerDelta())
}
