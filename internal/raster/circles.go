package raster

import (
	"math"
	"sort"
)

const (
	// voteAngles is the number of directions each ink pixel votes in.
	voteAngles = 36
	// minVotes is the accumulator count a center needs to become a candidate.
	minVotes = 22
	// peakWindow is the half-size of the local-maximum neighbourhood.
	peakWindow = 5
	// minCoverage is the share of the circumference that must be ink.
	minCoverage = 0.85
	// maxInteriorInk is the share of the half-radius ring that may be ink
	// before the candidate is treated as a filled disk.
	maxInteriorInk = 0.5
	// ringSlack is how far, in pixels, a point may sit off a circle and
	// still be on it.
	ringSlack = 3
)

// pixelCircle is a detected circle in image pixel coordinates.
type pixelCircle struct {
	x, y, r  int
	votes    int
	coverage float64
}

// detectCircles finds circular outlines with the Hough circle transform:
// every ink pixel votes for the centers at each radius, and local maxima
// that clear minVotes are kept when the outline they describe is actually
// inked. Circles are returned largest coverage first.
func detectCircles(ink func(x, y int) bool, width, height, minRadius, maxRadius int) []pixelCircle {
	if limit := min(width, height) / 2; maxRadius > limit {
		maxRadius = limit
	}
	if minRadius < 1 || minRadius > maxRadius {
		return nil
	}

	type pixel struct{ x, y int }
	var inked []pixel
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ink(x, y) {
				inked = append(inked, pixel{x, y})
			}
		}
	}
	if len(inked) == 0 {
		return nil
	}

	var candidates []pixelCircle
	accumulator := make([]int, width*height)

	for radius := minRadius; radius <= maxRadius; radius++ {
		clear(accumulator)

		dx, dy := offsets(radius)
		for _, p := range inked {
			for k := range dx {
				cx, cy := p.x-dx[k], p.y-dy[k]
				if cx >= 0 && cx < width && cy >= 0 && cy < height {
					accumulator[cy*width+cx]++
				}
			}
		}

		for cy := radius; cy < height-radius; cy++ {
			for cx := radius; cx < width-radius; cx++ {
				votes := accumulator[cy*width+cx]
				if votes < minVotes || !localMax(accumulator, width, height, cx, cy) {
					continue
				}
				coverage := ringInk(ink, width, height, cx, cy, float64(radius), 1)
				if coverage < minCoverage {
					continue
				}
				if ringInk(ink, width, height, cx, cy, float64(radius)/2, 0) > maxInteriorInk {
					continue
				}
				candidates = append(candidates, pixelCircle{x: cx, y: cy, r: radius, votes: votes, coverage: coverage})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].coverage != candidates[j].coverage {
			return candidates[i].coverage > candidates[j].coverage
		}
		return candidates[i].votes > candidates[j].votes
	})
	return filterDuplicateCircles(candidates)
}

// offsets returns the rounded pixel offsets of voteAngles points around a
// circle of the given radius.
func offsets(radius int) (dx, dy []int) {
	dx = make([]int, voteAngles)
	dy = make([]int, voteAngles)
	for k := 0; k < voteAngles; k++ {
		rad := float64(k) * 2 * math.Pi / voteAngles
		dx[k] = int(math.Round(float64(radius) * math.Cos(rad)))
		dy[k] = int(math.Round(float64(radius) * math.Sin(rad)))
	}
	return dx, dy
}

func localMax(acc []int, width, height, x, y int) bool {
	v := acc[y*width+x]
	for ny := max(0, y-peakWindow); ny <= min(height-1, y+peakWindow); ny++ {
		for nx := max(0, x-peakWindow); nx <= min(width-1, x+peakWindow); nx++ {
			if acc[ny*width+nx] > v {
				return false
			}
		}
	}
	return true
}

// ringInk samples a circle about one pixel apart and returns the share of
// samples with ink within slack pixels.
func ringInk(ink func(x, y int) bool, width, height, cx, cy int, radius float64, slack int) float64 {
	n := max(8, int(math.Ceil(2*math.Pi*radius)))
	hits := 0
	for k := 0; k < n; k++ {
		rad := float64(k) * 2 * math.Pi / float64(n)
		x := cx + int(math.Round(radius*math.Cos(rad)))
		y := cy + int(math.Round(radius*math.Sin(rad)))
		if inkNear(ink, width, height, x, y, slack) {
			hits++
		}
	}
	return float64(hits) / float64(n)
}

func inkNear(ink func(x, y int) bool, width, height, x, y, slack int) bool {
	for ny := y - slack; ny <= y+slack; ny++ {
		for nx := x - slack; nx <= x+slack; nx++ {
			if nx >= 0 && nx < width && ny >= 0 && ny < height && ink(nx, ny) {
				return true
			}
		}
	}
	return false
}

// filterDuplicateCircles drops circles that repeat an earlier one: centers
// within ringSlack of each other and radii within ringSlack. Concentric
// circles of clearly different radii are both kept.
func filterDuplicateCircles(circles []pixelCircle) []pixelCircle {
	filtered := make([]pixelCircle, 0, len(circles))
	for _, c := range circles {
		duplicate := false
		for _, f := range filtered {
			if abs(c.x-f.x) <= ringSlack && abs(c.y-f.y) <= ringSlack && abs(c.r-f.r) <= ringSlack {
				duplicate = true
				break
			}
		}
		if !duplicate {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// onCircle reports whether the pixel lies on the outline of any circle.
func onCircle(circles []pixelCircle, x, y float64) bool {
	for _, c := range circles {
		d := math.Hypot(x-float64(c.x), y-float64(c.y))
		if math.Abs(d-float64(c.r)) <= ringSlack {
			return true
		}
	}
	return false
}
