package pg

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Tracer logs statements through zerolog
// failed statements log at warn, statements slower than Slow log at warn,
// everything else logs at debug only when All is set
type Tracer struct {
	Log  zerolog.Logger
	Slow time.Duration
	All  bool
}

var _ pgx.QueryTracer = (*Tracer)(nil)

type traceKey struct{}

type traced struct {
	sql   string
	nargs int
	at    time.Time
}

// TraceQueryStart stashes the statement on ctx for TraceQueryEnd
func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traced{sql: d.SQL, nargs: len(d.Args), at: time.Now()})
}

// TraceQueryEnd emits one line per statement
func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	s, ok := ctx.Value(traceKey{}).(traced)
	if !ok {
		return
	}
	took := time.Since(s.at)

	var ev *zerolog.Event
	switch {
	case d.Err != nil:
		ev = t.Log.Warn().Err(d.Err)
	case t.Slow > 0 && took >= t.Slow:
		ev = t.Log.Warn().Bool("slow", true)
	case t.All:
		ev = t.Log.Debug()
	default:
		return
	}
	ev.Dur("took", took).
		Str("sql", Compact(s.sql)).
		Int("args", s.nargs).
		Int64("rows", d.CommandTag.RowsAffected()).
		Msg("pg query")
}

// Compact collapses runs of whitespace so multi-line sql fits on one log line
func Compact(sql string) string { return strings.Join(strings.Fields(sql), " ") }
