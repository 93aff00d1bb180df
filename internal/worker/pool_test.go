package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ats/internal/scoring"
	"github.com/jonathan/resume-ats/internal/types"
)

type recorder struct {
	mu       sync.Mutex
	scores   []int
	keywords []int
	jobs     int
	failed   int
}

func (r *recorder) ObserveScore(overall int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores = append(r.scores, overall)
}

func (r *recorder) ObserveKeywords(matchPercentage int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keywords = append(r.keywords, matchPercentage)
}

func (r *recorder) ObserveBatchJob(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs++
	if err != nil {
		r.failed++
	}
}

func resumeJSON(t *testing.T, r *types.ResumeData) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(r)
	require.NoError(t, err)
	return data
}

func TestNewJob(t *testing.T) {
	job, err := NewJob(types.BatchItem{
		ID:             "alice",
		Resume:         json.RawMessage(`{"skills":["Go"]}`),
		JobDescription: "<p>Golang developer</p>",
		Format:         types.FormatHTML,
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", job.ID)
	assert.Equal(t, []string{"Go"}, job.Resume.Skills)
	assert.Equal(t, "Golang developer", job.JobDescription)
}

func TestNewJob_GeneratesID(t *testing.T) {
	first, err := NewJob(types.BatchItem{Resume: json.RawMessage(`{}`)})
	require.NoError(t, err)
	second, err := NewJob(types.BatchItem{Resume: json.RawMessage(`{}`)})
	require.NoError(t, err)

	assert.Len(t, first.ID, 36)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestNewJob_InvalidResume(t *testing.T) {
	_, err := NewJob(types.BatchItem{Resume: json.RawMessage(`{"skills":"Go"}`)})
	assert.Error(t, err)
}

func TestNewJobs_ReportsIndex(t *testing.T) {
	_, err := NewJobs([]types.BatchItem{
		{Resume: json.RawMessage(`{}`)},
		{Resume: json.RawMessage(`null`)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1")
}

func TestPool_Run_PreservesOrder(t *testing.T) {
	var jobs []Job
	var want []int
	for i := 0; i < 20; i++ {
		r := &types.ResumeData{}
		if i%2 == 0 {
			r.PersonalInfo.Email = "dev@example.com"
		}
		jobs = append(jobs, Job{ID: fmt.Sprintf("job-%d", i), Resume: r})
		want = append(want, scoring.Score(r).Overall)
	}

	rec := &recorder{}
	pool := NewPool(nil, WithConcurrency(4), WithObserver(rec))
	results, err := pool.Run(context.Background(), jobs)
	require.NoError(t, err)

	require.Len(t, results, len(jobs))
	for i, result := range results {
		assert.Equal(t, fmt.Sprintf("job-%d", i), result.ID)
		assert.Equal(t, want[i], result.Score.Overall)
		assert.Nil(t, result.Keywords)
	}
	assert.Equal(t, 20, rec.jobs)
	assert.Zero(t, rec.failed)
	assert.Len(t, rec.scores, 20)
	assert.Empty(t, rec.keywords)
}

func TestPool_Run_WithJobDescription(t *testing.T) {
	resume := &types.ResumeData{Skills: []string{"Golang", "Docker"}}
	job, err := NewJob(types.BatchItem{
		ID:             "dev",
		Resume:         resumeJSON(t, resume),
		JobDescription: "Golang Kubernetes",
	})
	require.NoError(t, err)

	rec := &recorder{}
	results, err := NewPool(nil, WithObserver(rec)).Run(context.Background(), []Job{job})
	require.NoError(t, err)

	require.Len(t, results, 1)
	require.NotNil(t, results[0].Keywords)
	assert.Greater(t, results[0].Keywords.TotalKeywords, 0)
	assert.Greater(t, results[0].Keywords.MatchedKeywords, 0)
	assert.Equal(t, []int{results[0].Keywords.MatchPercentage}, rec.keywords)
}

func TestPool_Run_Empty(t *testing.T) {
	results, err := NewPool(nil).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestPool_Run_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{{ID: "a", Resume: &types.ResumeData{}}, {ID: "b", Resume: &types.ResumeData{}}}
	results, err := NewPool(nil, WithConcurrency(1)).Run(ctx, jobs)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestWithConcurrency_IgnoresNonPositive(t *testing.T) {
	pool := NewPool(nil, WithConcurrency(0))
	assert.Positive(t, pool.concurrency)
}
