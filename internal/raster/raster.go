// Package raster converts uploaded PDF or image bytes into per-page PNG
// images for the vision model. PDFs render through MuPDF; single images are
// normalized to PNG so every downstream consumer sees one format.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog"

	_ "image/jpeg"

	_ "golang.org/x/image/webp"

	"kyclens/internal/domain"
	"kyclens/internal/logger"
)

// Renderer rasterizes files into page images. It implements
// port.PageRasterizer.
type Renderer struct {
	dpi float64
	log zerolog.Logger
}

// New creates a Renderer rendering PDF pages at the given DPI.
func New(dpi int) *Renderer {
	if dpi <= 0 {
		dpi = 180
	}
	return &Renderer{
		dpi: float64(dpi),
		log: logger.WithComponent("raster"),
	}
}

// FileToPages returns a list of PNG page images for a PDF or image file,
// capped at maxPages. Images that cannot be decoded are passed through as raw
// bytes so the model can still attempt extraction.
func (r *Renderer) FileToPages(filename string, data []byte, maxPages int) ([][]byte, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "pdf" {
		return r.pdfToPages(data, maxPages)
	}

	page, err := imageToPNG(data)
	if err != nil {
		r.log.Debug().Err(err).Str("filename", filename).Msg("Image normalization failed, passing raw bytes")
		return [][]byte{data}, nil
	}
	return [][]byte{page}, nil
}

func (r *Renderer) pdfToPages(data []byte, maxPages int) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: opening document: %v", domain.ErrPDFRender, err)
	}
	defer func() { _ = doc.Close() }()

	total := doc.NumPage()
	if maxPages > 0 && total > maxPages {
		r.log.Warn().Int("pages", total).Int("max", maxPages).Msg("Truncating document to page cap")
		total = maxPages
	}

	pages := make([][]byte, 0, total)
	for i := 0; i < total; i++ {
		img, err := doc.ImageDPI(i, r.dpi)
		if err != nil {
			return nil, fmt.Errorf("%w: rendering page %d: %v", domain.ErrPDFRender, i, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("%w: encoding page %d: %v", domain.ErrPDFRender, i, err)
		}
		pages = append(pages, buf.Bytes())
	}
	return pages, nil
}

// imageToPNG decodes any supported image format and re-encodes it as PNG.
func imageToPNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}
