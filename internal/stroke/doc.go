// Package stroke expands stroked recording paths into fill outlines.
//
// A stroke becomes a closed fill region: the left offset of the polyline
// is walked forward, the right offset backward, and the two are joined by
// caps at open ends. Corners get miter, round or bevel joins. Closed
// polylines produce two rings of opposite winding, so the interior stays
// empty under the non-zero rule.
//
// Round joins and caps are emitted as cubic arcs, which the raster backend
// hands to x/image/vector unchanged.
//
//	e := stroke.NewExpander(stroke.Style{Width: 4, Join: stroke.JoinRound})
//	for _, seg := range e.Expand(path) {
//		...
//	}
package stroke
