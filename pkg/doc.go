// Package pkg provides the libraries behind masonry, a column-packing layout
// engine.
//
// # Overview
//
// Masonry places items of varying height into vertical columns inside a
// rectangular region. The box engine fixes the number of columns and derives
// their width; the flow engine fixes the column width and derives how many
// columns fit. Three strategies shape each pass: horizontal adaption (what to
// do with leftover width), vertical expansion (which column gets the next
// item) and overflow (what to do with items wider or narrower than a column).
//
// # Architecture
//
// The typical data flow:
//
//	Item set (JSON / TOML / demo)
//	         ↓
//	    [board] package (decode, validate, assign IDs)
//	         ↓
//	    [masonry] package (one layout pass)
//	         ↓
//	    [board] layout document
//	         ↓
//	    [render] package (SVG, PNG, PDF, JSON, DOT, column diagram)
//
// [pipeline] runs those stages for the CLI and the HTTP server and caches
// both through [cache].
//
// # Quick Start
//
//	e := masonry.NewBoxLayout(masonry.WithColumnCount(3))
//	for _, b := range items.Boxes() {
//	    if err := e.AddItem(b); err != nil {
//	        return err
//	    }
//	}
//	size, err := e.SetGeometry(masonry.Rect{W: 800, H: 600})
//
// # Main Packages
//
// [masonry] - The engine: region resolver, overflow resolver, column
// selector, position calculator and the box and flow orchestrators.
//
// [board] - Item sets and layout documents, their JSON and TOML encodings,
// and random demo sets.
//
// [render] - Output formats. SVG is drawn directly; PNG and PDF are converted
// from it with rsvg-convert; the column diagram goes through Graphviz.
//
// [pipeline] - Layout then render, with defaults, validation, TOML config
// files and a caching [pipeline.Runner].
//
// [cache] - Cache backends keyed by content hash: file (CLI), Redis (server)
// and null.
//
// [observability] - Hooks around pipeline stages, cache lookups and HTTP
// requests, with a charmbracelet/log implementation.
//
// [errors] - Structured errors with codes that map to HTTP statuses.
//
// [buildinfo] - Version information set through ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/masonry/...         # Engine only
//	go test -run Example ./pkg/...    # Examples only
//	MASONRY_REDIS_URL=redis://localhost:6379/0 go test ./pkg/cache/
//
// [masonry]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/masonry
// [board]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/board
// [render]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/masonry/pkg/buildinfo
package pkg
