package cave

import (
	"fmt"

	"cave-ca/internal/core"
)

// Probabilities passed to RNG.Try by the growth rule. Higher means a smaller
// chance of taking the first branch.
const (
	stumpChance    = 40
	firstMidChance = 70
	midChance      = 50
	freeChance     = 50
)

// Initialize overwrites every cell with Free or Rock, one coin flip per cell.
// Cells are visited x outer, y inner; the order is part of the seed contract.
func Initialize(g *Grid, rng *core.RNG) {
	for x := 0; x < g.w; x++ {
		for y := 0; y < g.h; y++ {
			if rng.Try(freeChance) {
				g.set(x, y, Free)
			} else {
				g.set(x, y, Rock)
			}
		}
	}
}

// CaveStep applies one generation of the rock majority rule. Each interior
// cell becomes Rock when at least thresh cells of its 3x3 block (itself
// included) are Rock, and Free otherwise. Cells are rewritten in place during
// the sweep, so later cells see earlier results. The border ring is read but
// never written.
func CaveStep(g *Grid, thresh int) bool {
	changed := false
	for x := 1; x < g.w-1; x++ {
		for y := 1; y < g.h-1; y++ {
			rocks := 0
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					if g.at(x+dx, y+dy) == Rock {
						rocks++
					}
				}
			}
			next := Free
			if rocks >= thresh {
				next = Rock
			}
			if g.at(x, y) != next {
				g.set(x, y, next)
				changed = true
			}
		}
	}
	return changed
}

// GrowthStep applies one generation of the vegetation rule. A Free cell looks
// at the cell directly below it: rock starts a stump (or marks the spot as
// barren), a stump or mid segment continues the trunk or caps it with a top.
// Rows 0 and h-1 and columns 0 and w-1 are never written.
func GrowthStep(g *Grid, rng *core.RNG) bool {
	changed := false
	for x := 1; x < g.w-1; x++ {
		for y := 1; y < g.h-1; y++ {
			if g.at(x, y) != Free {
				continue
			}
			var next State
			switch below := g.at(x, y+1); below {
			case Rock:
				next = pick(rng.Try(stumpChance), TreeStump, NoTree)
			case TreeStump:
				next = pick(rng.Try(firstMidChance), TreeMid, TreeTop)
			case TreeMid:
				next = pick(rng.Try(midChance), TreeMid, TreeTop)
			case Free, TreeTop, NoTree:
				continue
			default:
				panic(fmt.Sprintf("cave: invalid state %d at (%d,%d)", uint8(below), x, y+1))
			}
			g.set(x, y, next)
			changed = true
		}
	}
	return changed
}

func pick(ok bool, yes, no State) State {
	if ok {
		return yes
	}
	return no
}
