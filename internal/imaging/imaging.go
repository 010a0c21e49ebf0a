// Package imaging converts uploaded images into self-contained JPEG data
// URIs small enough to live inside the persisted document.
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxWidth keeps lookbook and product shots below a size that
	// would blow through the storage budget after a handful of uploads.
	DefaultMaxWidth = 800

	// DefaultQuality matches a 0.7 canvas-export quality factor.
	DefaultQuality = 70

	dataURIPrefix = "data:image/jpeg;base64,"
)

// Options bounds the re-encode. Zero values fall back to the defaults.
type Options struct {
	MaxWidth int
	Quality  int
}

func (o Options) withDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	return o
}

// Ingest decodes raw bytes (png, jpeg, gif or webp), scales the image down
// uniformly when it is wider than MaxWidth, and re-encodes it as a JPEG data
// URI. Bytes that do not decode reject the ingestion with a validation
// error.
func Ingest(ctx context.Context, raw []byte, opts Options) (string, error) {
	opts = opts.withDefaults()

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "image is corrupt or in an unsupported format")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src = scaleToWidth(src, opts.MaxWidth)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "re-encoding image")
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// IngestAll ingests every input concurrently and returns data URIs in input
// order. The first failure cancels the batch and rejects all of it.
func IngestAll(ctx context.Context, inputs [][]byte, opts Options) ([]string, error) {
	if len(inputs) == 0 {
		return []string{}, nil
	}

	out := make([]string, len(inputs))
	group, groupCtx := errgroup.WithContext(ctx)
	for i := range inputs {
		i := i
		group.Go(func() error {
			uri, err := Ingest(groupCtx, inputs[i], opts)
			if err != nil {
				return err
			}
			out[i] = uri
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// scaleToWidth shrinks src so its width equals maxWidth, preserving aspect
// ratio. Images at or below maxWidth pass through untouched; nothing is ever
// upscaled.
func scaleToWidth(src image.Image, maxWidth int) image.Image {
	bounds := src.Bounds()
	width := bounds.Dx()
	if width <= maxWidth {
		return src
	}

	height := bounds.Dy() * maxWidth / width
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
