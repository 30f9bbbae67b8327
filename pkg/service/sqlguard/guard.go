// Package sqlguard rejects free-text SQL that is not a single read-only statement.
package sqlguard

import (
	"errors"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/xwb1989/sqlparser"
)

var forbiddenKeywords = []string{
	"INSERT", "UPDATE", "DELETE", "TRUNCATE", "MERGE", "UPSERT",
	"DROP", "CREATE", "ALTER", "RENAME", "UNDROP",
	"GRANT", "REVOKE",
	"EXECUTE", "EXEC", "CALL",
	"PRAGMA", "ATTACH", "DETACH", "COPY", "PUT", "REMOVE", "UNLOAD",
	"BEGIN", "COMMIT", "ROLLBACK",
	"USE", "SET", "UNSET",
}

var forbiddenPattern = regexp.MustCompile(`\b(` + strings.Join(forbiddenKeywords, "|") + `)\b`)

// Guard checks free-text queries before they reach the warehouse
type Guard struct {
	maxLength int
}

// Option configures Guard
type Option func(*Guard)

// WithMaxLength limits the query length in bytes. 0 disables the limit.
func WithMaxLength(n int) Option {
	return func(g *Guard) {
		g.maxLength = n
	}
}

// New creates a Guard
func New(opts ...Option) *Guard {
	g := &Guard{maxLength: 16 * 1024}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Rejection is the error returned by Check. Its reason is safe to show to the user.
type Rejection struct {
	reason string
	err    error
}

func (r *Rejection) Error() string { return r.err.Error() }
func (r *Rejection) Unwrap() error { return r.err }

// Reason returns the explanation without the wrapped cause
func (r *Rejection) Reason() string { return r.reason }

// Reason extracts the rejection reason of err, or its full text for other errors
func Reason(err error) string {
	var r *Rejection
	if errors.As(err, &r) {
		return r.reason
	}
	return err.Error()
}

// Check returns an error wrapping model.ErrQueryRejected when the query is not allowed
func (g *Guard) Check(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return reject("query is empty")
	}
	if g.maxLength > 0 && len(trimmed) > g.maxLength {
		return reject("query is too long", goerr.V("length", len(trimmed)), goerr.V("max", g.maxLength))
	}

	// Dialects disagree on backslash escapes inside string literals, so the text outside
	// literals must pass under both readings.
	for _, backslash := range []bool{false, true} {
		masked, ok := maskQuoted(trimmed, backslash)
		if !ok {
			return reject("unterminated quoted literal")
		}
		if err := checkStructure(masked); err != nil {
			return err
		}
	}

	// Warehouse dialects often fall outside the parser's grammar, so a parse failure is not
	// a rejection. A statement that does parse must be a query.
	body := strings.TrimSpace(strings.TrimSuffix(trimmed, ";"))
	stmt, err := sqlparser.Parse(body)
	if err == nil {
		switch stmt.(type) {
		case *sqlparser.Select, *sqlparser.Union, *sqlparser.ParenSelect:
		default:
			return reject("statement is not a query", goerr.V("type", sqlparser.String(stmt)))
		}
	}

	return nil
}

// checkStructure runs the keyword rules on query text whose literals are masked
func checkStructure(masked string) error {
	if strings.Contains(masked, "--") || strings.Contains(masked, "/*") || strings.Contains(masked, "*/") {
		return reject("comments are not allowed")
	}

	body := strings.TrimSpace(strings.TrimSuffix(masked, ";"))
	if strings.Contains(body, ";") {
		return reject("multiple statements are not allowed")
	}

	upper := strings.ToUpper(body)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return reject("only SELECT and WITH queries are allowed", goerr.V("type", statementType(upper)))
	}

	if kw := forbiddenPattern.FindString(upper); kw != "" {
		return reject("forbidden keyword "+kw, goerr.V("keyword", kw))
	}
	return nil
}

// maskQuoted replaces the content of '...' literals and "..." identifiers with empty ones.
// Doubled quotes escape a quote in both; with backslash set, a backslash also escapes the
// next byte of a string literal. ok is false when a quote is left open.
func maskQuoted(s string, backslash bool) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))

	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote == 0 {
			b.WriteByte(c)
			if c == '\'' || c == '"' {
				quote = c
			}
			continue
		}

		switch {
		case backslash && quote == '\'' && c == '\\':
			i++
		case c == quote && i+1 < len(s) && s[i+1] == quote:
			i++
		case c == quote:
			b.WriteByte(c)
			quote = 0
		}
	}

	return b.String(), quote == 0
}

func reject(msg string, opts ...goerr.Option) error {
	return &Rejection{
		reason: msg,
		err:    goerr.Wrap(model.ErrQueryRejected, msg, opts...),
	}
}

func statementType(upper string) string {
	fields := strings.Fields(upper)
	if len(fields) == 0 {
		return "UNKNOWN"
	}
	return fields[0]
}
