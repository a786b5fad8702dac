package reconcile

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// ReconcileAll matches the original and reconstructed records of a spec.
// It indexes both sides concurrently, computes the union of keys, and
// returns a result per key sorted by ID. Records sharing a key are matched
// in order as a multiset: the second occurrence becomes "key#2", and so on.
func ReconcileAll(ctx context.Context, spec *Spec) (*Report, error) {
	if spec == nil || spec.Adapter == nil {
		return nil, errors.New("reconcile: spec has no adapter")
	}

	var originalIndex, reconstructedIndex map[string]*Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		originalIndex, err = buildIndex(gctx, spec.Original, spec.Adapter)
		return err
	})
	g.Go(func() error {
		var err error
		reconstructedIndex, err = buildIndex(gctx, spec.Reconstructed, spec.Adapter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	union := buildUnion(originalIndex, reconstructedIndex)

	report := &Report{Results: make([]Result, 0, len(union))}
	for key := range union {
		report.Results = append(report.Results, buildResult(key, originalIndex, reconstructedIndex, spec.Adapter))
	}

	// Sort results by key for deterministic output
	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].ID < report.Results[j].ID
	})

	report.Summary = summarize(report.Results)
	return report, nil
}

// buildIndex keys every record through the adapter.
func buildIndex(ctx context.Context, records []*Record, adapter Adapter) (map[string]*Record, error) {
	index := make(map[string]*Record, len(records))
	seen := make(map[string]int, len(records))
	for i, rec := range records {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		key := adapter.ExtractKey(rec)
		seen[key]++
		if n := seen[key]; n > 1 {
			key += "#" + strconv.Itoa(n)
		}
		index[key] = rec
	}
	return index, nil
}

// buildUnion creates a union of the keys of both indices.
func buildUnion(original, reconstructed map[string]*Record) map[string]struct{} {
	union := make(map[string]struct{}, len(original))
	for key := range original {
		union[key] = struct{}{}
	}
	for key := range reconstructed {
		union[key] = struct{}{}
	}
	return union
}

// buildResult creates a Result for a single key.
func buildResult(key string, original, reconstructed map[string]*Record, adapter Adapter) Result {
	orig, inOriginal := original[key]
	rec, inReconstructed := reconstructed[key]

	result := Result{
		ID:                   key,
		OriginalPresent:      inOriginal,
		ReconstructedPresent: inReconstructed,
		Mismatch:             []string{},
		Metadata:             adapter.GetMetadata(orig, rec),
	}

	// Compare fields if both present
	if inOriginal && inReconstructed {
		result.Mismatch = adapter.CompareFields(orig, rec)
	}
	return result
}

func summarize(results []Result) Summary {
	s := Summary{TotalItems: len(results)}
	for _, r := range results {
		switch {
		case !r.ReconstructedPresent:
			s.Missing++
		case !r.OriginalPresent:
			s.Extra++
		case len(r.Mismatch) > 0:
			s.Mismatches++
		default:
			s.Matched++
		}
	}
	return s
}
