package datagen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/okian/vitrine/pkg/logger"
)

const defaultVerifyTimeout = 10 * time.Second

// rasterCharts are the charts served as PNG.
var rasterCharts = []string{"scatter", "histogram", "brands", "gender", "season"}

// Check is the outcome of one probe.
type Check struct {
	Name   string
	Status int
	OK     bool
	Detail string
}

// Report collects every probe outcome.
type Report struct {
	Checks   []Check
	Duration time.Duration
}

// Failed returns the failing checks.
func (r *Report) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.OK {
			out = append(out, c)
		}
	}
	return out
}

// Verify probes a running dashboard: the JSON endpoints must answer and
// every raster chart must render or report an empty chart. It returns an
// error wrapping ErrVerify when any check fails.
func Verify(ctx context.Context, cfg VerifyConfig) (*Report, error) {
	start := time.Now()
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultVerifyTimeout
	}
	client := &http.Client{Timeout: timeout}
	base := strings.TrimRight(cfg.BaseURL, "/")
	log := logger.Named("datagen")

	report := &Report{Checks: make([]Check, 2+len(rasterCharts))}
	report.Checks[0] = checkDashboard(ctx, client, base, cfg.ExpectRows)
	report.Checks[1] = checkOptions(ctx, client, base)

	var wg sync.WaitGroup
	for i, name := range rasterCharts {
		wg.Add(1)
		go func(slot int, name string) {
			defer wg.Done()
			report.Checks[slot] = checkChart(ctx, client, base, name)
		}(2+i, name)
	}
	wg.Wait()
	report.Duration = time.Since(start)

	failed := report.Failed()
	for _, c := range report.Checks {
		fields := []logger.Field{logger.String("check", c.Name), logger.Int("status", c.Status), logger.Bool("ok", c.OK)}
		if c.Detail != "" {
			fields = append(fields, logger.String("detail", c.Detail))
		}
		log.Debug(ctx, "verification check", fields...)
	}
	if len(failed) > 0 {
		names := make([]string, len(failed))
		for i, c := range failed {
			names[i] = c.Name
		}
		return report, fmt.Errorf("%w: %s", ErrVerify, strings.Join(names, ", "))
	}
	log.Info(ctx, "dashboard verified", logger.Int("checks", len(report.Checks)), logger.Duration("duration", report.Duration))
	return report, nil
}

func checkDashboard(ctx context.Context, client *http.Client, base string, expectRows int) Check {
	c := Check{Name: "dashboard"}
	var body struct {
		KPIs map[string]string `json:"kpis"`
		Rows struct {
			Base int `json:"base"`
		} `json:"rows"`
	}
	c.Status, c.Detail = getJSON(ctx, client, base+"/api/dashboard", &body)
	if c.Detail != "" {
		return c
	}
	switch {
	case c.Status != http.StatusOK:
		c.Detail = "unexpected status"
	case len(body.KPIs) == 0:
		c.Detail = "no kpis in response"
	case expectRows > 0 && body.Rows.Base != expectRows:
		c.Detail = fmt.Sprintf("base rows %d, want %d", body.Rows.Base, expectRows)
	default:
		c.OK = true
	}
	return c
}

func checkOptions(ctx context.Context, client *http.Client, base string) Check {
	c := Check{Name: "options"}
	var body map[string][]string
	c.Status, c.Detail = getJSON(ctx, client, base+"/api/options", &body)
	if c.Detail != "" {
		return c
	}
	if c.Status != http.StatusOK {
		c.Detail = "unexpected status"
		return c
	}
	c.OK = true
	return c
}

func checkChart(ctx context.Context, client *http.Client, base, name string) Check {
	c := Check{Name: "chart:" + name}
	resp, err := get(ctx, client, base+"/charts/"+name+".png")
	if err != nil {
		c.Detail = err.Error()
		return c
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	c.Status = resp.StatusCode
	switch resp.StatusCode {
	case http.StatusOK:
		if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
			c.Detail = "content type " + ct
			return c
		}
		c.OK = true
	case http.StatusNoContent:
		c.OK = true
		c.Detail = "empty"
	default:
		c.Detail = "unexpected status"
	}
	return c
}

// getJSON fetches url into v. A non-empty detail reports a transport or
// decode failure.
func getJSON(ctx context.Context, client *http.Client, url string, v any) (status int, detail string) {
	resp, err := get(ctx, client, url)
	if err != nil {
		return 0, err.Error()
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, ""
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return resp.StatusCode, "decode: " + err.Error()
	}
	return resp.StatusCode, ""
}

func get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}
