// Package analytics records per-query performance metrics as JSONL on disk
// and computes aggregate insights over them.
package analytics

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// QueryMetrics is one recorded query.
type QueryMetrics struct {
	QueryID          string    `json:"query_id"`
	UserID           string    `json:"user_id"`
	QueryText        string    `json:"query_text"`
	ResponseTimeMs   float64   `json:"response_time_ms"`
	RetrievalTimeMs  float64   `json:"retrieval_time_ms"`
	GenerationTimeMs float64   `json:"generation_time_ms"`
	ContextCount     int       `json:"retrieved_contexts"`
	ContextScores    []float64 `json:"context_relevance_scores,omitempty"`
	ResponseLength   int       `json:"response_length"`
	Timestamp        time.Time `json:"timestamp"`
	Success          bool      `json:"success"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	AttemptTier      string    `json:"attempt_tier,omitempty"`
	UserFeedback     int       `json:"user_feedback,omitempty"`
	ConversationID   string    `json:"conversation_id,omitempty"`
}

// Insights is the aggregate report over a period.
type Insights struct {
	PeriodDays          int      `json:"period_days"`
	TotalQueries        int      `json:"total_queries"`
	UniqueUsers         int      `json:"unique_users"`
	SuccessRatePercent  float64  `json:"success_rate_percent"`
	AvgResponseTimeMs   float64  `json:"avg_response_time_ms"`
	P95ResponseTimeMs   float64  `json:"p95_response_time_ms"`
	AvgContextsPerQuery float64  `json:"avg_contexts_retrieved"`
	AvgContextRelevance float64  `json:"avg_context_relevance"`
	QueriesPerUser      float64  `json:"queries_per_user"`
	TopErrors           []string `json:"top_errors,omitempty"`
}

// UserReport summarizes one user's recent activity.
type UserReport struct {
	UserID             string    `json:"user_id"`
	PeriodDays         int       `json:"period_days"`
	TotalQueries       int       `json:"total_queries"`
	SuccessRatePercent float64   `json:"success_rate_percent"`
	AvgResponseTimeMs  float64   `json:"avg_response_time_ms"`
	LastActive         time.Time `json:"last_active"`
}

// Collector appends query metrics to a JSONL file and serves reports from it.
// Safe for concurrent use.
type Collector struct {
	mu          sync.Mutex
	metricsPath string
	feedback    map[string]int
}

// NewCollector creates a collector writing under dataDir.
func NewCollector(dataDir string) (*Collector, error) {
	dir := filepath.Join(dataDir, "analytics")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("could not create analytics directory: %w", err)
	}
	return &Collector{
		metricsPath: filepath.Join(dir, "query_metrics.jsonl"),
		feedback:    make(map[string]int),
	}, nil
}

// Record appends one metrics row. Recording is best-effort observability;
// callers log failures instead of failing the query.
func (c *Collector) Record(m QueryMetrics) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	line, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("could not marshal metrics: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	f, err := os.OpenFile(c.metricsPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
	if err != nil {
		return fmt.Errorf("could not open metrics file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("could not write metrics: %w", err)
	}
	return nil
}

// RecordFeedback attaches a 1-5 rating to a previously recorded query.
func (c *Collector) RecordFeedback(queryID string, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.feedback[queryID] = rating
	return nil
}

// GetInsights aggregates metrics from the last `days` days.
func (c *Collector) GetInsights(days int) (*Insights, error) {
	metrics, err := c.loadSince(time.Now().UTC().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	out := &Insights{PeriodDays: days, TotalQueries: len(metrics)}
	if len(metrics) == 0 {
		return out, nil
	}

	users := make(map[string]struct{})
	errorCounts := make(map[string]int)
	var responseTimes []float64
	var contextTotal int
	var scoreSum float64
	var scoreCount int
	successes := 0

	for _, m := range metrics {
		users[m.UserID] = struct{}{}
		contextTotal += m.ContextCount
		for _, s := range m.ContextScores {
			scoreSum += s
			scoreCount++
		}
		if m.Success {
			successes++
			responseTimes = append(responseTimes, m.ResponseTimeMs)
		} else if m.ErrorMessage != "" {
			errorCounts[m.ErrorMessage]++
		}
	}

	out.UniqueUsers = len(users)
	out.SuccessRatePercent = 100 * float64(successes) / float64(len(metrics))
	out.AvgResponseTimeMs = mean(responseTimes)
	out.P95ResponseTimeMs = percentile(responseTimes, 0.95)
	out.AvgContextsPerQuery = float64(contextTotal) / float64(len(metrics))
	if scoreCount > 0 {
		out.AvgContextRelevance = scoreSum / float64(scoreCount)
	}
	out.QueriesPerUser = float64(len(metrics)) / float64(len(users))
	out.TopErrors = topErrors(errorCounts, 5)
	return out, nil
}

// GetUserReport aggregates one user's metrics over the last `days` days.
func (c *Collector) GetUserReport(userID string, days int) (*UserReport, error) {
	metrics, err := c.loadSince(time.Now().UTC().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	report := &UserReport{UserID: userID, PeriodDays: days}
	var responseTimes []float64
	successes := 0
	for _, m := range metrics {
		if m.UserID != userID {
			continue
		}
		report.TotalQueries++
		if m.Timestamp.After(report.LastActive) {
			report.LastActive = m.Timestamp
		}
		if m.Success {
			successes++
			responseTimes = append(responseTimes, m.ResponseTimeMs)
		}
	}
	if report.TotalQueries > 0 {
		report.SuccessRatePercent = 100 * float64(successes) / float64(report.TotalQueries)
	}
	report.AvgResponseTimeMs = mean(responseTimes)
	return report, nil
}

func (c *Collector) loadSince(cutoff time.Time) ([]QueryMetrics, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Open(c.metricsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not open metrics file: %w", err)
	}
	defer f.Close()

	var metrics []QueryMetrics
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var m QueryMetrics
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			// Skip corrupt rows rather than failing the whole report.
			continue
		}
		if m.Timestamp.Before(cutoff) {
			continue
		}
		if rating, ok := c.feedback[m.QueryID]; ok {
			m.UserFeedback = rating
		}
		metrics = append(metrics, m)
	}
	return metrics, scanner.Err()
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

func topErrors(counts map[string]int, n int) []string {
	type kv struct {
		msg   string
		count int
	}
	pairs := make([]kv, 0, len(counts))
	for msg, count := range counts {
		pairs = append(pairs, kv{msg, count})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].count > pairs[j].count })
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.msg
	}
	return out
}
