// Package ai implements Latch's `ai` host module: prompt-driven text
// generation against a configured HTTP endpoint.
//
// Generalized from the interpreter it evolved from's __oracle_execute hook concept
// (oracles.go): there, a Latch-level function annotated with a prompt gets
// routed through a pluggable executor hook that posts to a model backend
// and returns Str|Null. We keep that shape — a prompt in, a best-effort
// string reply out, failures surfacing as Null rather than a RuntimeError,
// since an unreachable AI backend shouldn't abort an otherwise-working
// automation script — but drop the type-directed schema validation
// (oracles.go's resolveType/isType machinery), since spec.md carries no
// static type system for `ai.*` to validate against.
package ai

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/latch-lang/latch/internal/config"
	"github.com/latch-lang/latch/internal/token"
	"github.com/latch-lang/latch/internal/value"
)

func Module(cfg config.Config) map[string]*value.Builtin {
	m := &moduleState{cfg: cfg, client: &http.Client{Timeout: 60 * time.Second}}
	return map[string]*value.Builtin{
		"ask":       {Name: "ai.ask", Arity: -1, Impl: m.ask},
		"summarize": {Name: "ai.summarize", Arity: -1, Impl: m.summarize},
	}
}

type moduleState struct {
	cfg    config.Config
	client *http.Client
}

// ask implements ai.ask(prompt) -> String|Null. Null means the backend is
// unreachable or misconfigured, not a RuntimeError, mirroring oracles.go's
// "oracle backend not configured" fallback to an annotated null.
func (m *moduleState) ask(args []value.Value) (value.Value, *value.RuntimeError) {
	if len(args) != 1 || args[0].Tag != value.TagString {
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "ai.ask expects a single string argument")
	}
	return m.complete(args[0].AsString()), nil
}

// summarize implements ai.summarize(text) -> String|Null, a thin wrapper
// that frames the prompt as a summarization task.
func (m *moduleState) summarize(args []value.Value) (value.Value, *value.RuntimeError) {
	if len(args) != 1 || args[0].Tag != value.TagString {
		return value.Value{}, value.NewError(value.TypeError, token.Span{}, "ai.summarize expects a single string argument")
	}
	prompt := "Summarize the following text concisely.\n\n" + args[0].AsString()
	return m.complete(prompt), nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (m *moduleState) complete(prompt string) value.Value {
	if m.cfg.AIEndpoint == "" {
		return value.Null
	}

	body, err := json.Marshal(chatRequest{
		Model:    m.cfg.AIModel,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return value.Null
	}

	req, err := http.NewRequest(http.MethodPost, m.cfg.AIEndpoint, bytes.NewReader(body))
	if err != nil {
		return value.Null
	}
	req.Header.Set("Content-Type", "application/json")
	if m.cfg.AIAPIKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.cfg.AIAPIKey)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return value.Null
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode >= 300 {
		return value.Null
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil || len(parsed.Choices) == 0 {
		return value.Null
	}

	return value.Str(unwrapFenced(strings.TrimSpace(parsed.Choices[0].Message.Content)))
}

// unwrapFenced strips a ```...``` code fence if the model wrapped its
// reply in one, matching oracles.go's unwrapFenced behavior.
func unwrapFenced(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return s
	}
	s = s[i+1:]
	if j := strings.LastIndex(s, "```"); j >= 0 {
		s = s[:j]
	}
	return strings.TrimSpace(s)
}
