// Package narrative turns element lists and detected structures into a
// plain-prose interpretation of a drawing.
//
// # Pipeline
//
// Summarize evaluates a fixed, ordered list of rules. Each rule pairs a
// predicate with a paragraph producer; when the predicate holds the paragraph
// is appended. Paragraphs are separated by a blank line:
//
//  1. Drawing type (text keywords first, then structural heuristics)
//  2. Approximate size (longest horizontal × longest vertical line)
//  3. Composition (element counts and the three busiest layers)
//  4. Structures (room count, largest and smallest room, corridors)
//  5. Text labels (up to five non-trivial labels)
//  6. Dimension info (every label that looks like a measurement)
//  7. Likely purpose
//  8. Disclaimer, always present
//
// An empty drawing yields the disclaimer alone.
//
// # Keywords
//
// Keyword matching is case-insensitive substring search over all text
// labels, in English and Korean:
//
//	plan       "plan", "평면"
//	elevation  "elevation", "입면"
//	section    "section", "단면"
//
// # Numbers
//
// Every reported measurement is rounded to one decimal place.
//
// # Documents
//
// SummarizeDocument is the equivalent for paginated documents: page and
// section counts, a 200-character preview of the whole text and up to three
// 100-character paragraph previews.
//
// All functions are pure and safe for concurrent use.
package narrative
