// Package masonry arranges rectangular items into balanced columns.
//
// # Overview
//
// A masonry layout packs items of varying height into fixed-width columns so
// that the columns grow evenly, the arrangement popularised by image boards.
// The package is headless: items are host-owned handles implementing [Item],
// and the engine only ever calls their sizing and geometry setters.
//
// Two engine variants share the same policy model:
//
//   - [BoxLayout]: the column count is configured and the column width is
//     derived from the region width.
//   - [FlowLayout]: the column width is configured and the column count is
//     derived from how many columns of that width fit.
//
// # Layout Pass
//
// Every call to SetGeometry runs a full pass, recomputing from scratch:
//
//  1. Resolve the column structure for the region ([ResolveColumnWidth] or
//     [ResolveColumnCount]).
//  2. Reset the per-column heights to zero.
//  3. For each item in insertion order: resolve overflow against the column
//     width ([Overflow]), select a column ([VExpand]), compute the rectangle
//     ([HAdapt]) and apply it to the item.
//  4. Report the occupied size: the region width and the tallest column.
//
// # Strategies
//
//   - [HAdapt] decides how the column width used for positioning is derived
//     and whether items are rescaled to it.
//   - [VExpand] picks the column that receives the next item.
//   - [Overflow] reconciles an item whose width differs from the column width.
//
// A strategy value outside its declared set aborts the pass with an
// INVALID_CONFIG error before any item is touched.
//
// # Usage
//
//	l := masonry.NewFlowLayout(
//	    masonry.WithColumnWidth(150),
//	    masonry.WithHAdapt(masonry.Zoom),
//	)
//	for _, c := range cards {
//	    if err := l.AddItem(masonry.NewBox(c.ID, c.W, c.H)); err != nil {
//	        return err
//	    }
//	}
//	size, err := l.SetGeometry(masonry.Rect{W: 640, H: 480})
//
// [RandomInsert] draws from a [RandSource]; use [WithSeed] or [WithRand] for
// reproducible placement.
package masonry
