package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"kyclens/internal/config"
	"kyclens/internal/domain"
	"kyclens/internal/logger"
	"kyclens/internal/multidoc"
	"kyclens/internal/normalize"
	"kyclens/internal/port"
)

// ExtractSource carries exactly one input source for an extraction request:
// uploaded bytes (with the original filename), a remote URL, or a
// server-local path.
type ExtractSource struct {
	Filename  string
	Data      []byte
	SourceURL string
	FilePath  string
}

// ExtractionService runs the multi-page, multi-document extraction pipeline.
type ExtractionService interface {
	ExtractMulti(ctx context.Context, src ExtractSource, grouping multidoc.Config) (*domain.ExtractionResult, error)
}

type extractionService struct {
	parser port.PageParser
	raster port.PageRasterizer
	cfg    *config.ExtractConfig
	fetch  *http.Client
	log    zerolog.Logger
}

// NewExtractionService creates a new ExtractionService implementation.
func NewExtractionService(parser port.PageParser, raster port.PageRasterizer, cfg *config.ExtractConfig) ExtractionService {
	fetchTimeout := time.Duration(cfg.FetchTimeoutSecs) * time.Second
	if fetchTimeout == 0 {
		fetchTimeout = 45 * time.Second
	}
	return &extractionService{
		parser: parser,
		raster: raster,
		cfg:    cfg,
		fetch:  &http.Client{Timeout: fetchTimeout},
		log:    logger.WithComponent("extraction"),
	}
}

// ExtractMulti loads and validates the source, rasterizes it into pages,
// fans out one model call per page, and assembles the grouped result.
//
// Page calls run concurrently; results land in a slice indexed by page
// position, so completion order never affects output order. A failed page
// call degrades to an empty PageResult instead of aborting the request.
func (s *extractionService) ExtractMulti(ctx context.Context, src ExtractSource, grouping multidoc.Config) (*domain.ExtractionResult, error) {
	start := time.Now()

	filename, data, err := s.resolveSource(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := s.validate(filename, data); err != nil {
		return nil, err
	}

	pages, err := s.raster.FileToPages(filename, data, s.cfg.MultiMaxPages)
	if err != nil {
		return nil, err
	}

	results := make([]domain.PageResult, len(pages))
	var wg sync.WaitGroup
	for i := range pages {
		wg.Add(1)
		go func(idx int, img []byte) {
			defer wg.Done()
			raw, err := s.parser.ParsePage(ctx, port.PageInput{ImagePNG: img, PageIndex: idx})
			if err != nil {
				s.log.Warn().Err(err).Int("page", idx).Msg("Page extraction failed, continuing with empty result")
				results[idx] = domain.PageResult{
					PageIndex:   idx,
					Fields:      map[string]domain.FieldValue{},
					ExtraFields: map[string]domain.FieldValue{},
				}
				return
			}
			results[idx] = normalize.PageResult(raw, idx, s.cfg.DefaultConfidence)
		}(i, pages[i])
	}
	wg.Wait()

	docs := multidoc.GroupAndMerge(results, grouping)

	s.log.Info().
		Str("filename", filename).
		Int("pages", len(results)).
		Int("groups", len(docs)).
		Dur("elapsed", time.Since(start)).
		Msg("Multi-document extraction complete")

	return &domain.ExtractionResult{
		Documents: docs,
		Meta: domain.ExtractionMeta{
			TotalPages:  len(results),
			TotalGroups: len(docs),
			ElapsedMS:   time.Since(start).Milliseconds(),
		},
	}, nil
}

// resolveSource enforces the exactly-one-source rule and materializes the
// file bytes.
func (s *extractionService) resolveSource(ctx context.Context, src ExtractSource) (string, []byte, error) {
	provided := 0
	if len(src.Data) > 0 {
		provided++
	}
	if src.SourceURL != "" {
		provided++
	}
	if src.FilePath != "" {
		provided++
	}
	if provided == 0 {
		return "", nil, domain.ErrNoSource
	}
	if provided > 1 {
		return "", nil, domain.ErrMultipleSources
	}

	switch {
	case len(src.Data) > 0:
		filename := src.Filename
		if filename == "" {
			filename = "upload"
		}
		return filename, src.Data, nil

	case src.SourceURL != "":
		return s.fetchURL(ctx, src.SourceURL)

	default:
		info, err := os.Stat(src.FilePath)
		if err != nil || !info.Mode().IsRegular() {
			return "", nil, domain.ErrSourceNotFound
		}
		data, err := os.ReadFile(src.FilePath)
		if err != nil {
			return "", nil, domain.ErrSourceNotFound
		}
		return filepath.Base(src.FilePath), data, nil
	}
}

func (s *extractionService) fetchURL(ctx context.Context, url string) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrSourceFetchFailed, err)
	}
	resp, err := s.fetch.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrSourceFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("%w: status %d", domain.ErrSourceFetchFailed, resp.StatusCode)
	}

	maxBytes := s.cfg.MaxFileMB * 1024 * 1024
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrSourceFetchFailed, err)
	}
	if int64(len(data)) > maxBytes {
		return "", nil, domain.ErrFileTooLarge
	}

	// Derive a filename from the URL path, dropping any query string.
	name := url
	if i := strings.IndexByte(name, '?'); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		name = "remote"
	}
	return name, data, nil
}

// validate checks size, extension, and magic-byte content type the same way
// uploads are vetted before hitting storage.
func (s *extractionService) validate(filename string, data []byte) error {
	maxBytes := s.cfg.MaxFileMB * 1024 * 1024
	if int64(len(data)) > maxBytes {
		return domain.ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return domain.ErrUnsupportedFileType
	}

	sniffLen := len(data)
	if sniffLen > 512 {
		sniffLen = 512
	}
	detected := http.DetectContentType(data[:sniffLen])
	if !domain.AllowedContentTypes[detected] {
		return domain.ErrUnsupportedFileType
	}

	return nil
}
