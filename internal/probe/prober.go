package probe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rtdbscan/rtdbscan/internal/model"
	"github.com/rtdbscan/rtdbscan/internal/rtdb"
)

// Default prober settings. The CLI overrides these from config; the
// defaults keep the zero-configuration path usable.
const (
	// DefaultTimeout bounds each probe request. Ten seconds is generous
	// for the Firebase REST API while keeping a dead host from stalling
	// the scan for long.
	DefaultTimeout = 10 * time.Second

	// DefaultProbeDelay is the politeness pause between read probes.
	DefaultProbeDelay = 500 * time.Millisecond

	// DefaultCleanupTimeout bounds the best-effort DELETE after a
	// successful write probe. Shorter than the probe timeout because a
	// slow cleanup should not hold up the run.
	DefaultCleanupTimeout = 5 * time.Second

	// DefaultMaxBodySize limits how much of a response body is read.
	// An open database can hold gigabytes; the classification only needs
	// enough bytes to validate the JSON shape of small responses and the
	// report only shows a snippet.
	DefaultMaxBodySize = 1 * 1024 * 1024 // 1MB

	// DefaultUserAgent identifies rtdbscan in HTTP requests. A descriptive
	// User-Agent lets database operators recognize scanner traffic in
	// their logs.
	DefaultUserAgent = "rtdbscan/1.0 (+https://github.com/rtdbscan/rtdbscan)"

	// writePathPrefix prefixes the per-run write probe key. The epoch
	// suffix keeps concurrent runs from colliding on the same path.
	writePathPrefix = "security_test_"

	// snippetLength is the maximum body snippet length kept per result.
	snippetLength = 200
)

// Prober issues the unauthenticated access probes against one target.
// No credentials, tokens, or auth query parameters are ever attached:
// the probes test exactly what an anonymous client can do.
//
// Design decision: We take a pre-built *http.Client rather than creating
// one internally because:
//  1. Tests can inject an httptest client or a mock transport
//  2. Connection pooling stays under the caller's control
//  3. Proxy and TLS configuration belong to the transport layer, not here
type Prober struct {
	// client performs the HTTP requests. Per-probe timeouts are applied
	// via request contexts, not client configuration.
	client *http.Client

	// userAgent is sent with every probe request.
	userAgent string

	// timeout bounds each individual probe request.
	timeout time.Duration

	// delay is the politeness pause inserted between read probes.
	// Zero disables the pause.
	delay time.Duration

	// cleanupTimeout bounds the artifact DELETE after a successful write.
	cleanupTimeout time.Duration

	// maxBodySize limits response body reads.
	maxBodySize int64

	// logger records probe progress and cleanup failures.
	logger *slog.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) {
		p.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header sent with each probe.
func WithUserAgent(ua string) Option {
	return func(p *Prober) {
		p.userAgent = ua
	}
}

// WithProbeDelay sets the pause between read probes. Zero disables it.
func WithProbeDelay(delay time.Duration) Option {
	return func(p *Prober) {
		p.delay = delay
	}
}

// WithCleanupTimeout sets the timeout for the post-write artifact DELETE.
func WithCleanupTimeout(timeout time.Duration) Option {
	return func(p *Prober) {
		p.cleanupTimeout = timeout
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) Option {
	return func(p *Prober) {
		p.maxBodySize = size
	}
}

// WithLogger sets the logger used for probe progress and cleanup warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prober) {
		p.logger = logger
	}
}

// NewProber creates a Prober using the given HTTP client.
// A nil client falls back to a plain http.Client; all timeouts are
// enforced per request regardless.
func NewProber(client *http.Client, opts ...Option) *Prober {
	if client == nil {
		client = &http.Client{}
	}

	p := &Prober{
		client:         client,
		userAgent:      DefaultUserAgent,
		timeout:        DefaultTimeout,
		delay:          DefaultProbeDelay,
		cleanupTimeout: DefaultCleanupTimeout,
		maxBodySize:    DefaultMaxBodySize,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ProbeReadAccess issues the fixed read battery against the target:
// the full-tree root read, the shallow structure read, and a plausible
// arbitrary child path. Probes are independent: one failing does not
// block the others.
//
// The returned error is non-nil only when the context was cancelled;
// partial results collected before the cancellation are still returned.
func (p *Prober) ProbeReadAccess(ctx context.Context, target rtdb.Target) ([]model.ProbeResult, error) {
	probes := []struct {
		label string
		url   string
	}{
		{model.EndpointRoot, target.RootEndpoint()},
		{model.EndpointShallow, target.ShallowEndpoint()},
		{model.EndpointArbitraryPath, target.PathEndpoint("test")},
	}

	results := make([]model.ProbeResult, 0, len(probes))
	for i, pr := range probes {
		if i > 0 && p.delay > 0 {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-time.After(p.delay):
			}
		}

		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		p.logger.Debug("read probe", "endpoint", pr.label, "url", pr.url)
		results = append(results, p.do(ctx, http.MethodGet, pr.label, pr.url, ""))
	}

	return results, nil
}

// ProbeWriteAccess issues the write probe: a PUT of a small tagged JSON
// payload to a path unique to this run. When the write succeeds, the
// created artifact is deleted on a best-effort basis before returning;
// a failed cleanup is recorded on the result but never changes the
// classification.
func (p *Prober) ProbeWriteAccess(ctx context.Context, target rtdb.Target) (model.ProbeResult, error) {
	if err := ctx.Err(); err != nil {
		return model.ProbeResult{Endpoint: model.EndpointWrite, Method: http.MethodPut}, err
	}

	epoch := time.Now().Unix()
	path := fmt.Sprintf("%s%d", writePathPrefix, epoch)
	url := target.PathEndpoint(path)
	payload := fmt.Sprintf(`{"test":"security_check","timestamp":%d}`, epoch)

	p.logger.Debug("write probe", "url", url)
	result := p.do(ctx, http.MethodPut, model.EndpointWrite, url, payload)

	// A successful write left an artifact in the target database.
	// Attempt the release immediately; the verdict is already decided.
	if result.Classification == model.ClassificationAccessible {
		result.CleanupPath = path
		if err := p.deleteArtifact(ctx, url); err != nil {
			result.CleanupFailed = true
			p.logger.Warn("failed to clean up write probe artifact; remove it manually",
				"path", path,
				"error", err,
			)
		} else {
			p.logger.Debug("write probe artifact removed", "path", path)
		}
	}

	return result, ctx.Err()
}

// do performs one bounded HTTP request and classifies the response.
// All transport and decoding failures are absorbed here into the Error
// classification; do never returns an error to its caller.
func (p *Prober) do(ctx context.Context, method, label, probeURL, body string) model.ProbeResult {
	result := model.ProbeResult{
		Endpoint: label,
		URL:      probeURL,
		Method:   method,
	}

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, probeURL, reqBody)
	if err != nil {
		return p.failResult(result, err)
	}

	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return p.failResult(result, err)
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.ContentType = resp.Header.Get("Content-Type")

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBodySize))
	if err != nil {
		return p.failResult(result, err)
	}

	result.BodySize = len(respBody)
	result.BodySnippet = snippet(respBody)
	result.Classification = Classify(method, resp.StatusCode, respBody, nil)
	result.ClassificationText = result.Classification.String()
	result.HasData = result.Classification == model.ClassificationAccessible && HasData(respBody)

	p.logger.Debug("probe result",
		"endpoint", label,
		"status", resp.StatusCode,
		"classification", result.ClassificationText,
	)

	return result
}

// failResult finalizes a result for a probe that produced no usable
// response.
func (p *Prober) failResult(result model.ProbeResult, err error) model.ProbeResult {
	result.Error = err.Error()
	result.Classification = model.ClassificationError
	result.ClassificationText = result.Classification.String()
	p.logger.Debug("probe failed", "endpoint", result.Endpoint, "error", err)
	return result
}

// deleteArtifact removes the write probe artifact. It runs even when the
// scan context was cancelled mid-flight, bounded by its own timeout, so
// an interrupted run still attempts to leave the target clean.
func (p *Prober) deleteArtifact(ctx context.Context, url string) error {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cleanupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cleanupCtx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, p.maxBodySize)) //nolint:errcheck // Drain for connection reuse

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("delete returned status %d", resp.StatusCode)
	}
	return nil
}

// snippet truncates a response body for inclusion in the report.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= snippetLength {
		return s
	}
	return s[:snippetLength-3] + "..."
}
