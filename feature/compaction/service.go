package compaction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"record-compactor/core/codec"
	"record-compactor/core/compactor"
	"record-compactor/core/reconcile"
	"record-compactor/core/storage"
	"record-compactor/feature/history"

	"github.com/minio/minio-go/v7"
	"github.com/tidwall/jsonc"
	"go.uber.org/zap"
)

var (
	// ErrInvalidInput marks a request body that is not a JSON document.
	ErrInvalidInput = errors.New("invalid input document")
	// ErrInvalidName marks an artifact name that cannot be used as an object key.
	ErrInvalidName = errors.New("invalid artifact name")
	// ErrStorageDisabled is returned by Publish and Fetch without an object store.
	ErrStorageDisabled = errors.New("artifact storage is not configured")
	// ErrArtifactNotFound is returned by Fetch for a missing object.
	ErrArtifactNotFound = errors.New("artifact not found")
)

var artifactName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Request describes one compaction. Zero values fall back to the service
// configuration.
type Request struct {
	// Input is the source document; comments and trailing commas are allowed.
	Input []byte
	// Source labels the run in the history ledger.
	Source    string
	Fidelity  string
	CodeWidth int
	// PublishAs stores the artifact under this name when non-empty.
	PublishAs string
	Format    codec.Format
}

// Result is the outcome of a compaction.
type Result struct {
	Artifact  *compactor.Artifact
	ObjectKey string
	RunID     string
}

// VerifyResult reports whether an input survives compaction unchanged.
type VerifyResult struct {
	Fidelity compactor.FidelityMode `json:"fidelity"`
	Format   codec.Format           `json:"format"`
	Lossless bool                   `json:"lossless"`
	Stats    compactor.Stats        `json:"stats"`
	Summary  reconcile.Summary      `json:"summary"`
	Problems []reconcile.Result     `json:"problems"`
}

// Service runs compactions and moves artifacts in and out of storage.
type Service struct {
	base     compactor.Options
	format   codec.Format
	client   storage.Client
	storeCfg storage.Config
	runs     *history.Repository
	logger   *zap.Logger
}

// NewService creates a compaction service. client and runs may be nil; the
// service then skips publication and history recording.
func NewService(base compactor.Options, format codec.Format, client storage.Client, storeCfg storage.Config, runs *history.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		base:     base,
		format:   format,
		client:   client,
		storeCfg: storeCfg,
		runs:     runs,
		logger:   logger,
	}
}

// DefaultFormat returns the configured artifact format.
func (s *Service) DefaultFormat() codec.Format {
	return s.format
}

// ParseInput parses a JSON or JSONC document.
func ParseInput(data []byte) (compactor.Value, error) {
	doc, err := compactor.ParseValue(jsonc.ToJSON(data))
	if err != nil {
		return compactor.Value{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return doc, nil
}

// Compact parses req.Input, compacts it and optionally publishes and records
// the run. Publication failures fail the call; ledger failures are logged.
func (s *Service) Compact(ctx context.Context, req Request) (*Result, error) {
	doc, err := ParseInput(req.Input)
	if err != nil {
		return nil, err
	}
	c, err := s.compactorFor(req.Fidelity, req.CodeWidth)
	if err != nil {
		return nil, err
	}
	a, err := c.Compact(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to compact: %w", err)
	}

	res := &Result{Artifact: a}
	format := s.formatOr(req.Format)
	if req.PublishAs != "" {
		key, err := s.Publish(ctx, req.PublishAs, a, format)
		if err != nil {
			return nil, err
		}
		res.ObjectKey = key
	}

	if s.runs != nil {
		run := history.NewRun(req.Source, a)
		run.Format = string(format)
		run.ObjectKey = res.ObjectKey
		if err := s.runs.Record(ctx, run); err != nil {
			s.logger.Warn("Failed to record compaction run", zap.Error(err))
		} else {
			res.RunID = run.ID
		}
	}

	s.logger.Info("Compaction completed",
		zap.String("source", req.Source),
		zap.String("fidelity", string(a.Fidelity)),
		zap.Int("groups", len(a.Groups)),
		zap.Int("resources", a.Stats.ResourcesProcessed),
		zap.Float64("ratio", a.Stats.CompressionRatio))
	return res, nil
}

// Reconstruct decodes an encoded artifact and rebuilds the document.
func (s *Service) Reconstruct(ctx context.Context, data []byte, format codec.Format) (compactor.Value, error) {
	a, err := codec.Unmarshal(data, s.formatOr(format))
	if err != nil {
		return compactor.Value{}, err
	}
	return compactor.ReconstructDocument(a)
}

// Verify compacts the input, round-trips the artifact through the codec and
// reconciles the reconstructed records against the original ones.
func (s *Service) Verify(ctx context.Context, req Request) (*VerifyResult, error) {
	doc, err := ParseInput(req.Input)
	if err != nil {
		return nil, err
	}
	c, err := s.compactorFor(req.Fidelity, req.CodeWidth)
	if err != nil {
		return nil, err
	}
	a, err := c.Compact(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to compact: %w", err)
	}

	format := s.formatOr(req.Format)
	data, err := codec.Marshal(a, format)
	if err != nil {
		return nil, err
	}
	decoded, err := codec.Unmarshal(data, format)
	if err != nil {
		return nil, err
	}
	records, err := compactor.Reconstruct(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct: %w", err)
	}

	adapter := reconcile.NewRecordAdapter()
	adapter.TypeField = c.Options().TypeField
	report, err := reconcile.ReconcileAll(ctx, &reconcile.Spec{
		Adapter:       adapter,
		Original:      subresources(doc),
		Reconstructed: records,
	})
	if err != nil {
		return nil, err
	}

	return &VerifyResult{
		Fidelity: a.Fidelity,
		Format:   format,
		Lossless: report.Lossless(),
		Stats:    a.Stats,
		Summary:  report.Summary,
		Problems: report.Problems(),
	}, nil
}

// Publish encodes the artifact and uploads it under the artifact prefix.
// It returns the object key.
func (s *Service) Publish(ctx context.Context, name string, a *compactor.Artifact, format codec.Format) (string, error) {
	if s.client == nil {
		return "", ErrStorageDisabled
	}
	key, format, err := s.objectKey(name, format)
	if err != nil {
		return "", err
	}
	data, err := codec.Marshal(a, format)
	if err != nil {
		return "", err
	}
	_, err = s.client.PutObject(ctx, s.storeCfg.Bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: format.ContentType()})
	if err != nil {
		return "", fmt.Errorf("failed to upload artifact %s: %w", key, err)
	}
	s.logger.Info("Artifact published", zap.String("key", key), zap.Int("size", len(data)))
	return key, nil
}

// Fetch downloads and decodes a published artifact.
func (s *Service) Fetch(ctx context.Context, name string, format codec.Format) (*compactor.Artifact, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	key, format, err := s.objectKey(name, format)
	if err != nil {
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, s.storeCfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, notFoundOr(key, err)
	}
	defer obj.Close()

	a, err := codec.Decode(obj, format)
	if err != nil {
		return nil, notFoundOr(key, err)
	}
	return a, nil
}

// ListArtifacts returns the names of published artifacts.
func (s *Service) ListArtifacts(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	prefix := s.storeCfg.ObjectPrefix()
	keys, err := storage.ListKeys(ctx, s.client, s.storeCfg.Bucket, prefix)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		if name := strings.TrimPrefix(key, prefix); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *Service) compactorFor(fidelity string, width int) (*compactor.Compactor, error) {
	opts := s.base
	if fidelity != "" {
		mode, err := compactor.ParseFidelityMode(fidelity)
		if err != nil {
			return nil, err
		}
		if mode != opts.Fidelity {
			opts.Fidelity = mode
			opts.CodeWidth = 0
		}
	}
	if width < 0 || width > 32 {
		return nil, fmt.Errorf("%w: code width must be 8, 16 or 32, got %d", compactor.ErrInvalidOptions, width)
	}
	if width != 0 {
		opts.CodeWidth = compactor.CodeWidth(width)
	}
	return compactor.New(opts, s.logger)
}

func (s *Service) formatOr(f codec.Format) codec.Format {
	if f == "" {
		return s.format
	}
	return f
}

// objectKey resolves name to a key. A .json or .cbor suffix on name wins
// over format.
func (s *Service) objectKey(name string, format codec.Format) (string, codec.Format, error) {
	if !artifactName.MatchString(name) || strings.Contains(name, "..") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".json") || strings.HasSuffix(lower, ".cbor") {
		return s.storeCfg.ObjectKey(name), codec.FormatFromPath(name), nil
	}
	format = s.formatOr(format)
	return s.storeCfg.ObjectKey(name + format.Extension()), format, nil
}

func notFoundOr(key string, err error) error {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrArtifactNotFound, key)
	}
	return fmt.Errorf("failed to fetch artifact %s: %w", key, err)
}

func subresources(doc compactor.Value) []*compactor.Record {
	root, ok := doc.AsObject()
	if !ok {
		return nil
	}
	v, _ := root.Get(compactor.SubresourcesKey)
	items, _ := v.AsArray()
	var records []*compactor.Record
	for _, item := range items {
		if rec, ok := item.AsObject(); ok {
			records = append(records, rec)
		}
	}
	return records
}
