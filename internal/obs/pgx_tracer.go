package obs

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type dbSpanKey struct{}

// DBTracer implements pgx.QueryTracer, opening a span per statement so
// catalog reads and order inserts show up under the request trace.
type DBTracer struct{}

func (DBTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	op := "query"
	if fields := strings.Fields(data.SQL); len(fields) > 0 {
		op = strings.ToLower(fields[0])
	}
	ctx, span := otel.Tracer("checkout-api/db").Start(ctx, "db."+op)
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.statement", compactSQL(data.SQL)),
	)
	return context.WithValue(ctx, dbSpanKey{}, span)
}

func (DBTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span, ok := ctx.Value(dbSpanKey{}).(trace.Span)
	if !ok {
		return
	}
	if data.Err != nil {
		span.RecordError(data.Err)
	}
	span.End()
}

// compactSQL collapses whitespace and bounds the statement attribute.
func compactSQL(sql string) string {
	flat := strings.Join(strings.Fields(sql), " ")
	if len(flat) > 240 {
		return flat[:240] + "..."
	}
	return flat
}
