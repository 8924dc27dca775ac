// Package board provides the document formats read and written around the
// masonry engine: item sets going in and layouts coming out.
//
// # Architecture
//
// The package sits at the serialization boundary between the engine and the
// outside world:
//
//   - [ItemSet], [Layout]: serialization types (this package)
//   - masonry.Box: the in-memory item the engine places
//   - masonry.Placement: the engine's per-item pass record
//
// Use [ItemSet.Boxes] to turn a document into engine items and [FromEngine]
// to capture the result of a pass.
//
// # Item Sets
//
// Item sets list natural item sizes in input order, as JSON:
//
//	{
//	  "items": [
//	    {"id": "a", "width": 150, "height": 80, "label": "first"},
//	    {"width": 150, "height": 120}
//	  ]
//	}
//
// or as TOML (selected by the .toml extension):
//
//	[[items]]
//	id = "a"
//	width = 150
//	height = 80
//
// Items without an id receive a random UUID when the set is normalized.
// Order is significant: it is the insertion order the engine sees.
//
// # Layouts
//
// A [Layout] records the engine kind, the region, the resolved column grid,
// the configuration in effect and every placed item. Layouts are always
// JSON and are the input of the render command and the HTTP render endpoint.
//
// # Demo Data
//
// [Demo] generates a reproducible set of random items (width 150, height
// 50..200) for trying out the engine without an input file.
package board
