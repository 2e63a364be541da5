package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

type counter struct {
	name  string
	help  string
	value atomic.Uint64
}

func (c *counter) inc() { c.value.Add(1) }

var (
	resumesParsed      = &counter{name: "resumes_parsed_total", help: "Total uploaded resumes parsed"}
	extractionFailures = &counter{name: "resume_extraction_failures_total", help: "Total uploads whose text could not be extracted"}
	analysisStarted    = &counter{name: "analysis_started_total", help: "Total analyses started"}
	analysisCompleted  = &counter{name: "analysis_completed_total", help: "Total analyses completed"}
	analysisFailed     = &counter{name: "analysis_failed_total", help: "Total analyses failed"}
	chatReplies        = &counter{name: "chat_replies_total", help: "Total chat replies"}
	chatFailures       = &counter{name: "chat_failures_total", help: "Total chat replies that failed"}

	// counters is the render order.
	counters = []*counter{
		resumesParsed,
		extractionFailures,
		analysisStarted,
		analysisCompleted,
		analysisFailed,
		chatReplies,
		chatFailures,
	}

	analysisDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncResumesParsed counts an uploaded document that made it through parsing.
func IncResumesParsed() { resumesParsed.inc() }

// IncExtractionFailures counts an upload whose text could not be extracted.
func IncExtractionFailures() { extractionFailures.inc() }

// IncChatReplies counts a successful follow-up reply.
func IncChatReplies() { chatReplies.inc() }

// IncChatFailures counts a follow-up that failed at the model.
func IncChatFailures() { chatFailures.inc() }

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() { analysisStarted.inc() }

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() { analysisCompleted.inc() }

// IncAnalysisFailed increments the failed counter.
func IncAnalysisFailed() { analysisFailed.inc() }

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	for _, c := range counters {
		writeCounter(&buf, c.name, c.help, c.value.Load())
	}
	writeHistogram(&buf, "analysis_duration_ms", "Analysis duration in milliseconds", analysisDuration.Snapshot())
	return buf.String()
}

// histogram keeps cumulative bucket counts: an observation increments every
// bucket whose bound it does not exceed.
type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.counts[i])
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
