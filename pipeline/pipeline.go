// Package pipeline runs the filter and assessment flow on one structured
// report: read, trace, filter, extract, synthesize and write.
package pipeline

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/caio-sobreiro/srassess/assessment"
	"github.com/caio-sobreiro/srassess/config"
	"github.com/caio-sobreiro/srassess/sr"
	"github.com/caio-sobreiro/srassess/uid"
)

// Options configure a run.
type Options struct {
	Input            string
	FilteredOutput   string
	AssessmentOutput string
	// Remove lists the finding positions to drop from the anchor
	// container. Empty keeps every finding.
	Remove     []int
	Assessment assessment.Options
	// UIDs generates the identities of both outputs. Nil uses random
	// UUID derived UIDs.
	UIDs uid.Generator
	// Trace receives the content tree trace of the input. Nil logs it at
	// debug level instead.
	Trace io.Writer
}

// Result summarizes a successful run.
type Result struct {
	FilteredSOPInstanceUID   string
	AssessmentSOPInstanceUID string
	OriginalObservations     []string
	FilteredObservations     []string
}

// FromConfig converts validated settings to run options.
func FromConfig(cfg *config.Config) (Options, error) {
	indices, err := cfg.Indices()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Input:            cfg.Input,
		FilteredOutput:   cfg.Filtered,
		AssessmentOutput: cfg.Assessment,
		Remove:           indices,
		Assessment:       cfg.AssessmentOptions(),
	}, nil
}

// Run executes the flow. Both outputs are fully encoded before either is
// written, so a failure in any earlier step leaves no output files.
func Run(ctx context.Context, opts Options) (*Result, error) {
	uids := opts.UIDs
	if uids == nil {
		uids = uid.UUIDGenerator{}
	}

	data, err := readInput(opts.Input)
	if err != nil {
		return nil, err
	}

	// Three independent decodes of the same bytes: edits to one document
	// can never show up in another.
	original, err := sr.Parse(data)
	if err != nil {
		return nil, err
	}
	working, err := sr.Parse(data)
	if err != nil {
		return nil, err
	}
	source, err := sr.Parse(data)
	if err != nil {
		return nil, err
	}

	if original.Content == nil {
		log.Warn().Str("input", opts.Input).Msg("No content sequence found in the structured report")
	} else {
		log.Info().Str("input", opts.Input).Int("top_level_items", len(original.Content)).Msg("Content sequence found in the structured report")
	}
	if err := trace(opts.Trace, original); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filtered, err := sr.RemoveFindings(working, opts.Remove)
	if err != nil {
		return nil, err
	}
	instance, err := uid.Next(uids)
	if err != nil {
		return nil, err
	}
	series, err := uid.Next(uids)
	if err != nil {
		return nil, err
	}
	filtered.Reidentify(instance, series)

	result := &Result{
		FilteredSOPInstanceUID: filtered.SOPInstanceUID(),
		OriginalObservations:   original.ObservationUIDs(),
		FilteredObservations:   filtered.ObservationUIDs(),
	}
	log.Info().
		Strs("original", result.OriginalObservations).
		Strs("filtered", result.FilteredObservations).
		Msg("Observation UIDs")

	synthesizer := assessment.NewSynthesizer(uids, opts.Assessment)
	assessed, err := synthesizer.Synthesize(source, filtered)
	if err != nil {
		return nil, err
	}
	result.AssessmentSOPInstanceUID = assessed.SOPInstanceUID()

	filteredBytes, err := filtered.Bytes()
	if err != nil {
		return nil, err
	}
	assessmentBytes, err := assessed.Bytes()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := WriteFileAtomic(opts.FilteredOutput, filteredBytes); err != nil {
		return nil, err
	}
	if err := WriteFileAtomic(opts.AssessmentOutput, assessmentBytes); err != nil {
		// The outputs are a pair; do not leave a filtered report behind
		// without its assessment.
		if rmErr := os.Remove(opts.FilteredOutput); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", opts.FilteredOutput).Msg("Failed to remove filtered report")
		}
		return nil, err
	}

	log.Info().
		Str("filtered", opts.FilteredOutput).
		Str("assessment", opts.AssessmentOutput).
		Int("removed", len(result.OriginalObservations)-len(result.FilteredObservations)).
		Msg("Wrote filtered and assessment reports")

	return result, nil
}

func trace(w io.Writer, doc *sr.Document) error {
	if w != nil {
		return sr.WriteTrace(w, doc.Content)
	}
	for visit, err := range sr.Walk(doc.Content) {
		if err != nil {
			return err
		}
		event := log.Debug().
			Int("depth", visit.Depth).
			Str("path", visit.Path).
			Str("concept", visit.Item.Meaning()).
			Str("value_type", string(visit.Item.ValueType()))
		if visit.HasValue {
			event = event.Str("value", visit.Value)
		}
		event.Msg("Content item")
	}
	return nil
}
