package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	pkgerrors "github.com/seedkitapp/seedkit-backend/pkg/errors"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png fixture: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg fixture: %v", err)
	}
	return buf.Bytes()
}

func encodeGIF(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewPaletted(image.Rect(0, 0, width, height), color.Palette{color.Black, color.White})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode gif fixture: %v", err)
	}
	return buf.Bytes()
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()
	if !strings.HasPrefix(uri, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected data URI prefix: %.40s", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/jpeg;base64,"))
	if err != nil {
		t.Fatalf("decode base64 payload: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode ingested jpeg: %v", err)
	}
	return img
}

func TestIngestDownscalesWideImages(t *testing.T) {
	uri, err := Ingest(context.Background(), encodePNG(t, 1600, 900), Options{MaxWidth: 800})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	bounds := decodeDataURI(t, uri).Bounds()
	if bounds.Dx() != 800 || bounds.Dy() != 450 {
		t.Fatalf("ingested dimensions = %dx%d, want 800x450", bounds.Dx(), bounds.Dy())
	}
}

func TestIngestKeepsNarrowImagesUnscaled(t *testing.T) {
	for name, raw := range map[string][]byte{
		"png":  encodePNG(t, 320, 200),
		"jpeg": encodeJPEG(t, 320, 200),
		"gif":  encodeGIF(t, 320, 200),
	} {
		t.Run(name, func(t *testing.T) {
			uri, err := Ingest(context.Background(), raw, Options{})
			if err != nil {
				t.Fatalf("Ingest(%s): %v", name, err)
			}
			bounds := decodeDataURI(t, uri).Bounds()
			if bounds.Dx() != 320 || bounds.Dy() != 200 {
				t.Fatalf("dimensions = %dx%d, want 320x200 untouched", bounds.Dx(), bounds.Dy())
			}
		})
	}
}

func TestIngestAtExactMaxWidthPassesThrough(t *testing.T) {
	uri, err := Ingest(context.Background(), encodePNG(t, 800, 600), Options{MaxWidth: 800})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	bounds := decodeDataURI(t, uri).Bounds()
	if bounds.Dx() != 800 || bounds.Dy() != 600 {
		t.Fatalf("dimensions = %dx%d, want 800x600", bounds.Dx(), bounds.Dy())
	}
}

func TestIngestRejectsUndecodableBytes(t *testing.T) {
	_, err := Ingest(context.Background(), []byte("definitely not an image"), Options{})
	if err == nil {
		t.Fatal("expected decode rejection")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("error = %v, want %s", err, pkgerrors.CodeValidation)
	}
}

func TestIngestAllPreservesInputOrder(t *testing.T) {
	inputs := [][]byte{
		encodePNG(t, 1600, 900),
		encodePNG(t, 100, 50),
		encodePNG(t, 1000, 1000),
	}

	uris, err := IngestAll(context.Background(), inputs, Options{MaxWidth: 800})
	if err != nil {
		t.Fatalf("IngestAll: %v", err)
	}
	if len(uris) != len(inputs) {
		t.Fatalf("got %d results, want %d", len(uris), len(inputs))
	}

	wantWidths := []int{800, 100, 800}
	for i, uri := range uris {
		if got := decodeDataURI(t, uri).Bounds().Dx(); got != wantWidths[i] {
			t.Fatalf("result %d width = %d, want %d", i, got, wantWidths[i])
		}
	}
}

func TestIngestAllFailsWholeBatchOnOneBadInput(t *testing.T) {
	inputs := [][]byte{
		encodePNG(t, 100, 100),
		[]byte("garbage"),
	}

	uris, err := IngestAll(context.Background(), inputs, Options{})
	if err == nil {
		t.Fatal("expected batch failure")
	}
	if uris != nil {
		t.Fatalf("partial results leaked: %v", uris)
	}
}

func TestIngestAllEmptyBatch(t *testing.T) {
	uris, err := IngestAll(context.Background(), nil, Options{})
	if err != nil {
		t.Fatalf("IngestAll: %v", err)
	}
	if len(uris) != 0 {
		t.Fatalf("got %d results, want none", len(uris))
	}
}
