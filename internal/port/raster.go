package port

// PageRasterizer converts an uploaded file into per-page PNG images.
type PageRasterizer interface {
	FileToPages(filename string, data []byte, maxPages int) ([][]byte, error)
}
