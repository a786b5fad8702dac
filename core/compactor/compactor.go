package compactor

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// SubresourcesKey is the top-level array holding the input records.
const SubresourcesKey = "subresources"

// Options configures a Compactor.
type Options struct {
	Fidelity FidelityMode
	// CodeWidth of both dictionaries; zero picks the mode default.
	CodeWidth     CodeWidth
	TypeField     string
	TypeTemplate  string
	Abbreviations *AbbreviationTable
}

// DefaultOptions returns full-fidelity columnar options with the default tables.
func DefaultOptions() Options {
	return Options{
		Fidelity:      Columnar,
		TypeField:     DefaultTypeField,
		TypeTemplate:  DefaultTypeTemplate,
		Abbreviations: DefaultAbbreviationTable(),
	}
}

func (o Options) normalize() (Options, error) {
	if o.Fidelity == "" {
		o.Fidelity = Columnar
	}
	if !o.Fidelity.Valid() {
		return o, fmt.Errorf("%w: unknown fidelity mode %q", ErrInvalidOptions, o.Fidelity)
	}
	if o.CodeWidth == 0 {
		o.CodeWidth = o.Fidelity.DefaultCodeWidth()
	}
	if !o.CodeWidth.Valid() {
		return o, fmt.Errorf("%w: code width must be 8, 16 or 32, got %d", ErrInvalidOptions, o.CodeWidth)
	}
	if o.TypeField == "" {
		o.TypeField = DefaultTypeField
	}
	if o.TypeTemplate == "" {
		o.TypeTemplate = DefaultTypeTemplate
	}
	if !strings.Contains(o.TypeTemplate, tagPlaceholder) {
		return o, fmt.Errorf("%w: type template %q has no %s placeholder", ErrInvalidOptions, o.TypeTemplate, tagPlaceholder)
	}
	if o.Abbreviations == nil {
		o.Abbreviations = DefaultAbbreviationTable()
	}
	return o, nil
}

// Compactor turns record batches into artifacts. Each Compact call starts a
// fresh run, so one Compactor may serve concurrent callers.
type Compactor struct {
	opts Options
	log  *zap.Logger
}

// New validates opts. A nil logger disables logging.
func New(opts Options, log *zap.Logger) (*Compactor, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Compactor{opts: opts, log: log}, nil
}

// Options returns the normalized options.
func (c *Compactor) Options() Options { return c.opts }

// Compact encodes the records under doc's "subresources" array. A document
// without that array yields an empty artifact; other top-level keys are not
// carried over and are counted in TopLevelKeysDropped.
func (c *Compactor) Compact(doc Value) (*Artifact, error) {
	original, err := EncodeValue(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to measure input: %w", err)
	}

	r := newRun(c.opts, c.log)
	var records []*Record
	if root, ok := doc.AsObject(); ok {
		for _, key := range root.Keys() {
			if key != SubresourcesKey {
				r.stats.TopLevelKeysDropped++
			}
		}
		if v, ok := root.Get(SubresourcesKey); ok {
			items, isArray := v.AsArray()
			if !isArray {
				c.log.Warn("subresources is not an array", zap.Stringer("kind", v.Kind()))
			}
			for _, item := range items {
				rec, isObject := item.AsObject()
				if !isObject {
					r.stats.ResourcesDropped++
					continue
				}
				records = append(records, rec)
			}
		}
	} else {
		c.log.Warn("input document is not an object", zap.Stringer("kind", doc.Kind()))
	}

	a, err := r.build(records)
	if err != nil {
		return nil, err
	}
	if err := finishStats(a, len(original)); err != nil {
		return nil, err
	}
	c.log.Debug("compaction finished",
		zap.String("fidelity", string(a.Fidelity)),
		zap.Int("groups", len(a.Groups)),
		zap.Int("resources", a.Stats.ResourcesProcessed),
		zap.Int("original_size", a.Stats.OriginalSize),
		zap.Int("compacted_size", a.Stats.CompactedSize))
	return a, nil
}

// CompactRecords compacts records as if wrapped in {"subresources": [...]}.
func (c *Compactor) CompactRecords(records []*Record) (*Artifact, error) {
	items := make([]Value, len(records))
	for i, rec := range records {
		items[i] = Object(rec)
	}
	doc := NewRecord()
	doc.Set(SubresourcesKey, Array(items...))
	return c.Compact(Object(doc))
}

func (r *run) build(records []*Record) (*Artifact, error) {
	groups, dropped := Classify(records, r.opts.TypeField, r.opts.TypeTemplate)
	if dropped > 0 {
		r.log.Debug("dropped records without a type", zap.Int("count", dropped), zap.String("type_field", r.opts.TypeField))
	}
	r.stats.ResourcesDropped += dropped
	r.stats.ResourcesProcessed = len(records) - dropped

	a := &Artifact{
		Version:   FormatVersion,
		Fidelity:  r.opts.Fidelity,
		CodeWidth: r.opts.CodeWidth,
		Groups:    make(Groups, 0, len(groups)),
	}
	if r.opts.TypeField != DefaultTypeField {
		a.Schema.TypeField = r.opts.TypeField
	}
	if r.opts.TypeTemplate != DefaultTypeTemplate {
		a.Schema.TypeTemplate = r.opts.TypeTemplate
	}
	a.Schema.Types = make(TypeSchemas, 0, len(groups))

	for _, g := range groups {
		schema, group, err := r.assembleGroup(g)
		if err != nil {
			return nil, err
		}
		a.Schema.Types = append(a.Schema.Types, schema)
		a.Groups = append(a.Groups, group)
	}

	r.urls.Freeze()
	r.strs.Freeze()
	a.Schema.Order = append([]string{}, r.order...)
	a.Dictionaries = Dictionaries{URLs: r.urls.Entries(), Strings: r.strs.Entries()}
	a.FieldNames = r.abbr.Table()

	r.stats.URLsDeduplicated = r.urls.Len()
	r.stats.StringsDeduplicated = r.strs.Len()
	r.stats.DictionaryHits = r.urls.Hits() + r.strs.Hits()
	r.stats.PropertiesAbbreviated = r.abbr.Abbreviated()
	r.stats.UnreversibleKeys = r.abbr.Unreversible()
	a.Stats = r.stats
	return a, nil
}

func finishStats(a *Artifact, original int) error {
	size, err := a.Size()
	if err != nil {
		return fmt.Errorf("failed to measure artifact: %w", err)
	}
	a.Stats.OriginalSize = original
	a.Stats.CompactedSize = size
	a.Stats.CompressionRatio = Ratio(original, size)
	return nil
}
