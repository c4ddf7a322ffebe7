package notify

import (
	"strings"
	"time"

	"github.com/google/cel-go/cel"
)

// Filter wraps a compiled CEL program evaluated against notification records.
// It backs filtered listings and filtered live subscriptions. When disabled
// (empty expression), Match always returns true.
type Filter struct {
	prog    cel.Program
	enabled bool
}

// NewFilter compiles expr into a Filter. An empty expression yields a
// disabled filter that matches everything.
func NewFilter(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Filter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("severity", cel.StringType),
		cel.Variable("title", cel.StringType),
		cel.Variable("message", cel.StringType),
		cel.Variable("read", cel.BoolType),
		cel.Variable("server", cel.StringType),
		cel.Variable("age_ms", cel.IntType),
		// Expose the open metadata map for field filtering
		cel.Variable("metadata", cel.DynType),
		cel.Variable("now_ms", cel.IntType),
	)
	if err != nil {
		return Filter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return Filter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return Filter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return Filter{}, err
	}
	return Filter{prog: prog, enabled: true}, nil
}

// Match evaluates the compiled expression against a record. Evaluation errors
// exclude the record. When disabled, returns true.
func (f Filter) Match(n Notification) bool {
	if !f.enabled {
		return true
	}
	server := ""
	meta := map[string]any{}
	if n.Metadata != nil {
		meta = n.Metadata
		if s, ok := n.Metadata["server"].(string); ok {
			server = s
		}
	}
	now := time.Now()
	out, _, err := f.prog.Eval(map[string]any{
		"severity": string(n.Type),
		"title":    n.Title,
		"message":  n.Message,
		"read":     n.Read,
		"server":   server,
		"age_ms":   now.Sub(n.Timestamp).Milliseconds(),
		"metadata": meta,
		"now_ms":   now.UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
