package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/postprobe/packages/capture"
	"github.com/abdul-hamid-achik/postprobe/packages/http"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Mode selects how each request is dispatched
type Mode string

const (
	// ModeSync blocks the calling goroutine on every request
	ModeSync Mode = "sync"
	// ModeAsync dispatches on a goroutine and awaits its result channel
	ModeAsync Mode = "async"
)

// ModeFromAsync maps the host's async toggle to a Mode.
func ModeFromAsync(async bool) Mode {
	if async {
		return ModeAsync
	}
	return ModeSync
}

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSync:
		return ModeSync, nil
	case ModeAsync:
		return ModeAsync, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected sync or async)", s)
	}
}

type Runner struct {
	client  *http.Client
	log     *logrus.Logger
	config  *Config
	limiter *rate.Limiter
}

type Config struct {
	Suite SuiteArgs
	// Rate caps dispatches per second. Zero disables pacing.
	Rate float64
}

func NewRunner(client *http.Client, logger *logrus.Logger, cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{Suite: DefaultSuiteArgs()}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	r := &Runner{
		client: client,
		log:    logger,
		config: cfg,
	}
	if cfg.Rate > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), 1)
	}
	return r
}

type RunResult struct {
	RunID    string
	Mode     Mode
	BaseURL  string
	Results  []*RequestResult
	Duration time.Duration
	Latency  Latency
	// Passed counts 2xx responses, Failed everything else
	Passed int
	Failed int
	// Errors counts steps that produced no response at all
	Errors int
}

type RequestResult struct {
	Tag      string
	Request  *http.Request
	Response *http.Response
	Duration time.Duration
	Captures map[string]any
	Error    error
}

// Content is what gets logged for the step: the raw body, or the error text
// when the dispatch failed.
func (r *RequestResult) Content() string {
	if r.Error != nil {
		return r.Error.Error()
	}
	if r.Response == nil {
		return ""
	}
	return r.Response.BodyString()
}

func (r *RequestResult) Passed() bool {
	return r.Error == nil && r.Response != nil && r.Response.IsSuccess()
}

type dispatchFunc func(ctx context.Context, req *http.Request) (*http.Response, error)

// Run executes the suite using the given mode.
func (r *Runner) Run(ctx context.Context, mode Mode) (*RunResult, error) {
	switch mode {
	case ModeSync:
		return r.RunSync(ctx)
	case ModeAsync:
		return r.RunAsync(ctx)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

// RunSync dispatches every step with a blocking call.
func (r *Runner) RunSync(ctx context.Context) (*RunResult, error) {
	return r.runSuite(ctx, ModeSync, r.client.Do)
}

// RunAsync dispatches every step on its own goroutine and waits for the
// result before moving on.
func (r *Runner) RunAsync(ctx context.Context) (*RunResult, error) {
	return r.runSuite(ctx, ModeAsync, r.await)
}

// await blocks on the dispatch's result channel. The dispatch observes ctx
// itself, so a cancelled run still yields exactly one result carrying the
// client's error, the same error a blocking call reports.
func (r *Runner) await(ctx context.Context, req *http.Request) (*http.Response, error) {
	res := <-r.client.DoAsync(ctx, req)
	return res.Response, res.Err
}

func (r *Runner) runSuite(ctx context.Context, mode Mode, dispatch dispatchFunc) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{
		RunID:   uuid.NewString(),
		Mode:    mode,
		BaseURL: r.client.BaseURL(),
	}
	latency := newLatencyRecorder()
	log := r.log.WithFields(logrus.Fields{
		"run_id": result.RunID,
		"mode":   string(mode),
	})

	log.Debugf("running %d steps against %s", len(Suite(r.config.Suite)), result.BaseURL)

	for _, step := range Suite(r.config.Suite) {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			result.Latency = latency.Summary()
			return result, err
		}

		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				result.Duration = time.Since(start)
				result.Latency = latency.Summary()
				return result, err
			}
		}

		reqResult := r.executeStep(ctx, step, dispatch)
		latency.Record(reqResult.Duration)
		r.logStep(log, reqResult)

		result.Results = append(result.Results, reqResult)
		switch {
		case reqResult.Error != nil:
			result.Errors++
			result.Failed++
		case reqResult.Passed():
			result.Passed++
		default:
			result.Failed++
		}
	}

	result.Duration = time.Since(start)
	result.Latency = latency.Summary()
	return result, nil
}

func (r *Runner) executeStep(ctx context.Context, step Step, dispatch dispatchFunc) *RequestResult {
	result := &RequestResult{
		Tag:      step.Tag,
		Request:  step.Build(),
		Captures: make(map[string]any),
	}

	start := time.Now()
	resp, err := dispatch(ctx, result.Request)
	result.Duration = time.Since(start)

	if err != nil {
		result.Error = err
		return result
	}
	result.Response = resp

	for name, value := range capture.ExtractAll(resp, capture.DefaultCaptures) {
		result.Captures[name] = value
	}

	return result
}

func (r *Runner) logStep(log *logrus.Entry, res *RequestResult) {
	if res.Error != nil {
		log.WithField("request", res.Request.String()).
			Errorf("[%s] Response: %s", res.Tag, res.Content())
		return
	}
	log.WithFields(logrus.Fields{
		"request": res.Request.String(),
		"status":  res.Response.StatusCode,
	}).Infof("[%s] Response: %s", res.Tag, res.Content())
}
