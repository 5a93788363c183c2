package layout

import "strings"

// Minimum pad lengths. Every dot run renders at least this wide so a value
// never collides with its label, even when a value grows past the width the
// template was drawn for.
const (
	MinLeftPad  = 4 // leading dynamic field on line 1
	MinRightPad = 8 // trailing field on the line with the longer trailer
)

// ValueWidths holds the rendered character widths of the dynamic values that
// sit left of the separator on each line.
type ValueWidths struct {
	Repo    int // repo count, line 1
	Contrib int // contributed count, line 1
	Commit  int // commit count, line 2
}

// PadPlan maps each dots slot to its computed pad length.
type PadPlan map[Slot]int

// ComputePadding returns the pad length for each of the four dots slots so
// that the separator column and the right edge line up across both lines.
//
// Left side: line 1 takes the minimum pad, and line 2's pad absorbs the
// difference between the two left blocks:
//
//	line1Fixed + repo + contrib + repoDots == line2Fixed + commit + commitDots
//
// The commit pad is clamped to MinLeftPad, so the equality is exact only
// while the clamp is inactive; past that point the left blocks have grown
// wider than the template's guide and the pads bottom out instead of going
// negative.
//
// Right side: the line with the longer trailing label takes the minimum pad
// and the shorter trailer absorbs the width delta.
//
// The function is pure and total for all non-negative inputs.
func ComputePadding(line1Fixed, line2Fixed int, vw ValueWidths, trailerDelta int) PadPlan {
	repoDots := MinLeftPad
	commitDots := line1Fixed + vw.Repo + vw.Contrib + repoDots - line2Fixed - vw.Commit
	commitDots = max(MinLeftPad, commitDots)

	followerDots := MinRightPad
	starDots := max(MinRightPad, followerDots+trailerDelta)

	return PadPlan{
		SlotRepoDots:     repoDots,
		SlotCommitDots:   commitDots,
		SlotStarDots:     starDots,
		SlotFollowerDots: followerDots,
	}
}

// RenderPad renders a pad of the given length as a blank-dot-blank run.
// Degenerate lengths collapse to a single blank rather than erroring: the
// template stays well formed no matter what the arithmetic produced.
func RenderPad(n int) string {
	switch {
	case n <= 1:
		return " "
	case n == 2:
		return ". "
	default:
		return " " + strings.Repeat(".", n-2) + " "
	}
}

// Render converts the plan's lengths into their pad strings.
func (p PadPlan) Render() map[Slot]string {
	out := make(map[Slot]string, len(p))
	for slot, n := range p {
		out[slot] = RenderPad(n)
	}
	return out
}
