package pipeline

import (
	"context"

	"github.com/matzehuels/masonry/pkg/board"
	merr "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/render"
)

// GenerateLayout runs one masonry pass over items and captures the result.
// opts must have passed ValidateForLayout.
func GenerateLayout(ctx context.Context, items board.ItemSet, opts Options) (board.Layout, error) {
	if len(items.Items) > MaxItems {
		return board.Layout{}, merr.New(merr.ErrCodeInvalidInput, "too many items: %d (max %d)", len(items.Items), MaxItems)
	}
	if err := ctx.Err(); err != nil {
		return board.Layout{}, err
	}

	e, err := masonry.New(opts.Kind(),
		masonry.WithConfig(*opts.Config),
		masonry.WithSeed(opts.Seed),
		masonry.WithLogger(opts.Logger),
	)
	if err != nil {
		return board.Layout{}, err
	}

	boxes := items.Boxes()
	for _, b := range boxes {
		if err := e.AddItem(b); err != nil {
			return board.Layout{}, merr.Wrap(merr.GetCode(err), err, "add item %s", b.ID)
		}
	}
	if _, err := e.SetGeometry(masonry.Rect{W: opts.Width, H: opts.Height}); err != nil {
		return board.Layout{}, err
	}
	return board.FromEngine(e, boxes, opts.Seed)
}

// Render generates artifacts for every requested format.
func Render(ctx context.Context, l board.Layout, opts Options) (map[string][]byte, error) {
	return render.RenderAll(ctx, l, opts.Formats, opts.Render)
}
