package compaction

import (
	"errors"
	"strings"

	"record-compactor/core/codec"
	"record-compactor/core/compactor"
	"record-compactor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Response headers set by HandleCompact.
const (
	HeaderRunID     = "X-Run-ID"
	HeaderObjectKey = "X-Object-Key"
)

// Handler handles HTTP requests for compaction.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the compaction routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/compaction")
	group.Post("/compact", h.HandleCompact)
	group.Post("/reconstruct", h.HandleReconstruct)
	group.Post("/verify", h.HandleVerify)
	group.Get("/artifacts", h.HandleListArtifacts)
	group.Get("/artifacts/:name", h.HandleGetArtifact)
}

// HandleCompact compacts the request body.
// @Summary Compact Document
// @Description Compacts a {"subresources": [...]} document into a columnar artifact. Comments and trailing commas are accepted.
// @Tags compaction
// @Accept json
// @Produce json
// @Produce application/cbor
// @Param fidelity query string false "structural, columnar or aggressive"
// @Param code_width query int false "Dictionary code width: 8, 16 or 32"
// @Param format query string false "Artifact encoding: json or cbor"
// @Param publish query string false "Publish the artifact under this name"
// @Param source query string false "Label recorded in the history ledger"
// @Success 200 {object} compactor.Artifact "Artifact"
// @Failure 400 {object} map[string]string "Invalid input or options"
// @Failure 422 {object} map[string]string "Dictionary exhausted"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compaction/compact [post]
func (h *Handler) HandleCompact(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	format, err := h.requestFormat(c)
	if err != nil {
		return h.fail(c, l, err)
	}
	req := Request{
		Input:     c.Body(),
		Source:    c.Query("source", "http"),
		Fidelity:  c.Query("fidelity"),
		CodeWidth: c.QueryInt("code_width"),
		PublishAs: c.Query("publish"),
		Format:    format,
	}

	res, err := h.service.Compact(c.Context(), req)
	if err != nil {
		return h.fail(c, l, err)
	}
	data, err := codec.Marshal(res.Artifact, format)
	if err != nil {
		return h.fail(c, l, err)
	}

	if res.RunID != "" {
		c.Set(HeaderRunID, res.RunID)
	}
	if res.ObjectKey != "" {
		c.Set(HeaderObjectKey, res.ObjectKey)
	}
	c.Set(fiber.HeaderContentType, format.ContentType())
	return c.Send(data)
}

// HandleReconstruct rebuilds a document from an artifact.
// @Summary Reconstruct Document
// @Description Decodes an artifact (JSON or CBOR, chosen by the format query or Content-Type) and returns the reconstructed document.
// @Tags compaction
// @Accept json
// @Accept application/cbor
// @Produce json
// @Param format query string false "Artifact encoding: json or cbor"
// @Success 200 {object} map[string]interface{} "Reconstructed document"
// @Failure 400 {object} map[string]string "Malformed artifact"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compaction/reconstruct [post]
func (h *Handler) HandleReconstruct(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	format, err := h.requestFormat(c)
	if err != nil {
		return h.fail(c, l, err)
	}
	if c.Query("format") == "" && strings.HasPrefix(c.Get(fiber.HeaderContentType), codec.FormatCBOR.ContentType()) {
		format = codec.FormatCBOR
	}

	doc, err := h.service.Reconstruct(c.Context(), c.Body(), format)
	if err != nil {
		return h.fail(c, l, err)
	}
	data, err := compactor.EncodeValue(doc)
	if err != nil {
		return h.fail(c, l, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// HandleVerify checks that a document survives compaction.
// @Summary Verify Round Trip
// @Description Compacts the body, decodes the artifact and reconciles reconstructed records against the input.
// @Tags compaction
// @Accept json
// @Produce json
// @Param fidelity query string false "structural, columnar or aggressive"
// @Param code_width query int false "Dictionary code width: 8, 16 or 32"
// @Param format query string false "Codec used for the round trip: json or cbor"
// @Success 200 {object} VerifyResult "Verification result"
// @Failure 400 {object} map[string]string "Invalid input or options"
// @Failure 422 {object} map[string]string "Dictionary exhausted"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /compaction/verify [post]
func (h *Handler) HandleVerify(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	format, err := h.requestFormat(c)
	if err != nil {
		return h.fail(c, l, err)
	}
	res, err := h.service.Verify(c.Context(), Request{
		Input:     c.Body(),
		Fidelity:  c.Query("fidelity"),
		CodeWidth: c.QueryInt("code_width"),
		Format:    format,
	})
	if err != nil {
		return h.fail(c, l, err)
	}
	if !res.Lossless {
		l.Warn("Round trip is not lossless",
			zap.Int("missing", res.Summary.Missing),
			zap.Int("mismatches", res.Summary.Mismatches))
	}
	return c.JSON(res)
}

// HandleListArtifacts lists published artifacts.
// @Summary List Artifacts
// @Tags compaction
// @Produce json
// @Success 200 {object} map[string][]string "Artifact names"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Router /compaction/artifacts [get]
func (h *Handler) HandleListArtifacts(c *fiber.Ctx) error {
	names, err := h.service.ListArtifacts(c.Context())
	if err != nil {
		return h.fail(c, logger.WithRayID(h.logger, c), err)
	}
	return c.JSON(fiber.Map{"artifacts": names})
}

// HandleGetArtifact serves a published artifact.
// @Summary Get Artifact
// @Description Fetches a published artifact, validates it and returns it in the requested encoding.
// @Tags compaction
// @Produce json
// @Produce application/cbor
// @Param name path string true "Artifact name, with or without extension"
// @Param format query string false "Response encoding: json or cbor"
// @Success 200 {object} compactor.Artifact "Artifact"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Router /compaction/artifacts/{name} [get]
func (h *Handler) HandleGetArtifact(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	name := c.Params("name")
	stored := codec.Format("")
	if lower := strings.ToLower(name); strings.HasSuffix(lower, ".json") || strings.HasSuffix(lower, ".cbor") {
		stored = codec.FormatFromPath(name)
	}
	a, err := h.service.Fetch(c.Context(), name, stored)
	if err != nil {
		return h.fail(c, l, err)
	}

	format, err := h.requestFormat(c)
	if err != nil {
		return h.fail(c, l, err)
	}
	if c.Query("format") == "" && stored != "" {
		format = stored
	}
	data, err := codec.Marshal(a, format)
	if err != nil {
		return h.fail(c, l, err)
	}
	c.Set(fiber.HeaderContentType, format.ContentType())
	return c.Send(data)
}

func (h *Handler) requestFormat(c *fiber.Ctx) (codec.Format, error) {
	raw := c.Query("format")
	if raw == "" {
		return h.service.DefaultFormat(), nil
	}
	format, err := codec.ParseFormat(raw)
	if err != nil {
		return "", errors.Join(ErrInvalidInput, err)
	}
	return format, nil
}

// fail maps service errors to status codes and writes {"error": ...}.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error("Compaction request failed", zap.Error(err))
	} else {
		l.Warn("Compaction request rejected", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// StatusFor returns the HTTP status for a service error.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidName),
		errors.Is(err, compactor.ErrInvalidOptions),
		errors.Is(err, compactor.ErrMalformedArtifact),
		errors.Is(err, compactor.ErrUnknownCode):
		return fiber.StatusBadRequest
	case errors.Is(err, compactor.ErrDictionaryExhausted):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrArtifactNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrStorageDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
