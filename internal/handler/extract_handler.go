package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kyclens/internal/csvexport"
	"kyclens/internal/multidoc"
	"kyclens/internal/service"
)

// ExtractHandler handles multi-document extraction endpoints.
type ExtractHandler struct {
	extractionService service.ExtractionService
	groupingDefaults  multidoc.Config
}

// NewExtractHandler creates a new ExtractHandler. The grouping defaults come
// from configuration and can be overridden per request via form fields.
func NewExtractHandler(extractionService service.ExtractionService, groupingDefaults multidoc.Config) *ExtractHandler {
	return &ExtractHandler{
		extractionService: extractionService,
		groupingDefaults:  groupingDefaults,
	}
}

// ExtractMulti handles POST /api/v1/extract/multi.
// Accepts multipart form data with exactly one source: a "file" part, a
// "source_url" field, or a "file_path" field. Optional fields override the
// grouping defaults: forward_fill, bridge_gap, min_fields_for_new_doc,
// min_key_overlap.
func (h *ExtractHandler) ExtractMulti(c *gin.Context) {
	src, grouping, ok := h.parseRequest(c)
	if !ok {
		return
	}

	result, err := h.extractionService.ExtractMulti(c.Request.Context(), src, grouping)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ExtractMultiCSV handles POST /api/v1/extract/multi/export.
// Same request shape as ExtractMulti, but streams the grouped result as a
// CSV attachment instead of JSON.
func (h *ExtractHandler) ExtractMultiCSV(c *gin.Context) {
	src, grouping, ok := h.parseRequest(c)
	if !ok {
		return
	}

	result, err := h.extractionService.ExtractMulti(c.Request.Context(), src, grouping)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(sourceName(src))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteGroups(result.Documents); err != nil {
		return
	}
	w.Flush()
}

// parseRequest reads the source and grouping overrides from the multipart
// form. On a malformed request it writes the error response and returns
// ok=false.
func (h *ExtractHandler) parseRequest(c *gin.Context) (service.ExtractSource, multidoc.Config, bool) {
	var src service.ExtractSource

	file, header, err := c.Request.FormFile("file")
	if err == nil {
		defer func() { _ = file.Close() }()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
			return src, multidoc.Config{}, false
		}
		src.Filename = header.Filename
		src.Data = data
	}
	src.SourceURL = c.PostForm("source_url")
	src.FilePath = c.PostForm("file_path")

	grouping, err := h.parseGrouping(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_GROUPING_PARAM", err.Error())
		return src, multidoc.Config{}, false
	}

	return src, grouping, true
}

func (h *ExtractHandler) parseGrouping(c *gin.Context) (multidoc.Config, error) {
	cfg := h.groupingDefaults

	if v := c.PostForm("forward_fill"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, errInvalidParam("forward_fill")
		}
		cfg.ForwardFill = b
	}
	if v := c.PostForm("bridge_gap"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, errInvalidParam("bridge_gap")
		}
		cfg.BridgeGap = b
	}
	if v := c.PostForm("min_fields_for_new_doc"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errInvalidParam("min_fields_for_new_doc")
		}
		cfg.MinFieldsForNewDoc = n
	}
	if v := c.PostForm("min_key_overlap"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errInvalidParam("min_key_overlap")
		}
		cfg.MinKeyOverlapForContinuation = n
	}

	return cfg, nil
}

func sourceName(src service.ExtractSource) string {
	switch {
	case src.Filename != "":
		return src.Filename
	case src.SourceURL != "":
		return src.SourceURL
	default:
		return src.FilePath
	}
}

type paramError string

func (e paramError) Error() string { return "invalid value for " + string(e) }

func errInvalidParam(field string) error { return paramError(field) }
