package analyses

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"hirelens/internal/llm"
)

// scriptedLLM returns queued replies in order and records every request.
type scriptedLLM struct {
	mu       sync.Mutex
	replies  []scriptedReply
	requests []llm.Request
}

type scriptedReply struct {
	text string
	err  error
}

func (s *scriptedLLM) Chat(ctx context.Context, req llm.Request) (string, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if len(s.replies) == 0 {
		return "", errors.New("unexpected llm call")
	}
	next := s.replies[0]
	s.replies = s.replies[1:]
	return next.text, next.err
}

func reply(text string) scriptedReply { return scriptedReply{text: text} }

func failure(err error) scriptedReply { return scriptedReply{err: err} }

const validAnalysis = `{"strengths":["Strong Go background"],"weaknesses":["No metrics"],"improvement_tips":["Quantify impact"],"suggested_roles":["Backend Developer"],"ats_score":78}`

func newTestService(client llm.Client) *Service {
	svc := NewService(client)
	svc.RetryDelay = time.Millisecond
	return svc
}

func TestAnalyzeRunsSummarizeThenAnalyze(t *testing.T) {
	stub := &scriptedLLM{replies: []scriptedReply{
		reply("  Seasoned backend engineer.  "),
		reply("```json\n" + validAnalysis + "\n```"),
	}}
	svc := newTestService(stub)

	result, err := svc.Analyze(context.Background(), "Jane Doe\nGo engineer")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Summary != "Seasoned backend engineer." {
		t.Fatalf("unexpected summary %q", result.Summary)
	}
	if result.ATSScore != 78 {
		t.Fatalf("expected ats 78, got %d", result.ATSScore)
	}
	if len(result.SuggestedRoles) != 1 || result.SuggestedRoles[0] != "Backend Developer" {
		t.Fatalf("unexpected roles %v", result.SuggestedRoles)
	}

	if len(stub.requests) != 2 {
		t.Fatalf("expected 2 llm calls, got %d", len(stub.requests))
	}
	if stub.requests[0].JSON {
		t.Fatalf("summary step should request prose")
	}
	analyze := stub.requests[1]
	if !analyze.JSON {
		t.Fatalf("analyze step should request JSON")
	}
	if !strings.Contains(analyze.Messages[len(analyze.Messages)-1].Content, "Seasoned backend engineer.") {
		t.Fatalf("analyze prompt should include the summary")
	}
}

func TestAnalyzeEmptyResume(t *testing.T) {
	stub := &scriptedLLM{}
	_, err := newTestService(stub).Analyze(context.Background(), " \n\t ")
	if !errors.Is(err, ErrEmptyResume) {
		t.Fatalf("expected ErrEmptyResume, got %v", err)
	}
	if len(stub.requests) != 0 {
		t.Fatalf("no llm call expected for empty resume")
	}
}

func TestAnalyzeRepairsInvalidJSONOnce(t *testing.T) {
	stub := &scriptedLLM{replies: []scriptedReply{
		reply("summary"),
		reply(`{"strengths": ["a"`),
		reply(validAnalysis),
	}}

	result, err := newTestService(stub).Analyze(context.Background(), "resume")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.ATSScore != 78 {
		t.Fatalf("expected repaired result, got %+v", result)
	}
	if len(stub.requests) != 3 {
		t.Fatalf("expected 3 llm calls, got %d", len(stub.requests))
	}
	if !strings.Contains(stub.requests[2].Messages[0].Content, `{"strengths": ["a"`) {
		t.Fatalf("fix prompt should carry the broken output")
	}
}

func TestAnalyzeSchemaMismatchAfterRepair(t *testing.T) {
	stub := &scriptedLLM{replies: []scriptedReply{
		reply("summary"),
		reply("not json"),
		reply(`{"strengths": "oops", "ats_score": 50}`),
	}}

	_, err := newTestService(stub).Analyze(context.Background(), "resume")
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestAnalyzeMissingScoreTriggersRepair(t *testing.T) {
	stub := &scriptedLLM{replies: []scriptedReply{
		reply("summary"),
		reply(`{"strengths":["a"]}`),
		reply(`{"ats_score": 40}`),
	}}

	result, err := newTestService(stub).Analyze(context.Background(), "resume")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.ATSScore != 40 {
		t.Fatalf("expected 40, got %d", result.ATSScore)
	}
	if result.Strengths == nil || len(result.Strengths) != 0 {
		t.Fatalf("missing lists should decode as empty, got %#v", result.Strengths)
	}
}

func TestAnalyzeClampsScore(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{raw: `{"ats_score": 140}`, want: 100},
		{raw: `{"ats_score": -3}`, want: 0},
		{raw: `{"ats_score": 66.6}`, want: 67},
	}
	for _, tt := range tests {
		stub := &scriptedLLM{replies: []scriptedReply{reply("summary"), reply(tt.raw)}}
		result, err := newTestService(stub).Analyze(context.Background(), "resume")
		if err != nil {
			t.Fatalf("analyze %s: %v", tt.raw, err)
		}
		if result.ATSScore != tt.want {
			t.Fatalf("%s: expected %d, got %d", tt.raw, tt.want, result.ATSScore)
		}
	}
}

func TestAnalyzeRetriesTransientFailure(t *testing.T) {
	stub := &scriptedLLM{replies: []scriptedReply{
		failure(errors.New("openai http status 503")),
		reply("summary"),
		reply(validAnalysis),
	}}

	if _, err := newTestService(stub).Analyze(context.Background(), "resume"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(stub.requests) != 3 {
		t.Fatalf("expected retry, got %d calls", len(stub.requests))
	}
}

func TestAnalyzeDoesNotRetryPermanentFailure(t *testing.T) {
	stub := &scriptedLLM{replies: []scriptedReply{
		failure(errors.New("openai http status 400: bad request (invalid_request_error)")),
	}}

	_, err := newTestService(stub).Analyze(context.Background(), "resume")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(stub.requests) != 1 {
		t.Fatalf("expected single call, got %d", len(stub.requests))
	}
}

func TestAnalyzeNotConfigured(t *testing.T) {
	_, err := newTestService(llm.PlaceholderClient{}).Analyze(context.Background(), "resume")
	if !errors.Is(err, llm.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"a":1}`, want: `{"a":1}`},
		{name: "fenced", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "prose around", in: "Here you go: {\"a\":1} hope it helps", want: `{"a":1}`},
		{name: "no object", in: "nothing", want: "nothing"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSON(tt.in); got != tt.want {
				t.Fatalf("cleanJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestShouldRetryLLM(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{err: context.DeadlineExceeded, want: true},
		{err: errors.New("openai request timeout: Client.Timeout exceeded"), want: true},
		{err: errors.New("read tcp: connection reset by peer"), want: true},
		{err: errors.New("gemini request: googleapi: Error 503: model overloaded"), want: true},
		{err: context.Canceled, want: false},
		{err: llm.ErrNotConfigured, want: false},
		{err: errors.New("openai http status 401: bad key"), want: false},
	}
	for _, tt := range tests {
		if got := shouldRetryLLM(tt.err); got != tt.want {
			t.Fatalf("shouldRetryLLM(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
