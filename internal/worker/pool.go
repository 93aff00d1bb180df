// Package worker runs batches of résumé analyses with bounded concurrency.
package worker

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-ats/internal/heuristics"
	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/keywords"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/scoring"
	"github.com/jonathan/resume-ats/internal/types"
)

// Observer receives the outcome of each analysis
type Observer interface {
	ObserveScore(overall int)
	ObserveKeywords(matchPercentage int)
	ObserveBatchJob(err error)
}

// Job is one decoded résumé with an optional normalized job description
type Job struct {
	ID             string
	Resume         *types.ResumeData
	JobDescription string
}

// NewJob validates and decodes a batch item. Items without an id get a generated one.
func NewJob(item types.BatchItem) (Job, error) {
	resume, err := schemas.DecodeResume(item.Resume)
	if err != nil {
		return Job{}, err
	}
	text, err := ingestion.Normalize(item.JobDescription, item.Format)
	if err != nil {
		return Job{}, err
	}
	id := item.ID
	if id == "" {
		id = uuid.New().String()
	}
	return Job{ID: id, Resume: resume, JobDescription: text}, nil
}

// NewJobs converts every item of a batch, reporting the index of the first invalid one
func NewJobs(items []types.BatchItem) ([]Job, error) {
	jobs := make([]Job, len(items))
	for i, item := range items {
		job, err := NewJob(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		jobs[i] = job
	}
	return jobs, nil
}

// Pool scores and matches jobs concurrently
type Pool struct {
	scorer      *scoring.Scorer
	matcher     *keywords.Matcher
	concurrency int
	observer    Observer
}

// Option configures a Pool
type Option func(*Pool)

// WithConcurrency limits the number of jobs analyzed at once
func WithConcurrency(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithObserver reports every analysis to o
func WithObserver(o Observer) Option {
	return func(p *Pool) {
		p.observer = o
	}
}

// NewPool creates a pool using cfg for both scoring and matching. A nil cfg uses defaults.
func NewPool(cfg *heuristics.Config, opts ...Option) *Pool {
	p := &Pool{
		scorer:      scoring.NewScorer(cfg),
		matcher:     keywords.NewMatcher(cfg),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run analyzes all jobs and returns their results in input order. It stops
// scheduling new jobs once ctx is done and returns the context error.
func (p *Pool) Run(ctx context.Context, jobs []Job) ([]types.BatchResult, error) {
	results := make([]types.BatchResult, len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, job := range jobs {
		if err := gCtx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				p.observeJob(err)
				return err
			}
			// Each goroutine owns its own slot, so no lock is needed
			results[i] = p.analyze(job)
			p.observeJob(nil)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pool) analyze(job Job) types.BatchResult {
	result := types.BatchResult{ID: job.ID, Score: p.scorer.Score(job.Resume)}
	if p.observer != nil {
		p.observer.ObserveScore(result.Score.Overall)
	}
	if job.JobDescription != "" {
		result.Keywords = p.matcher.Analyze(job.Resume, job.JobDescription)
		if p.observer != nil {
			p.observer.ObserveKeywords(result.Keywords.MatchPercentage)
		}
	}
	return result
}

func (p *Pool) observeJob(err error) {
	if p.observer != nil {
		p.observer.ObserveBatchJob(err)
	}
}
