package otel

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

const tracerName = "github.com/FranciscoGomes20/pdv-project/internal/adapter/otel"

// TracingSessionRepository wraps a domain.SessionRepository with OpenTelemetry
// tracing. Each method creates a span with semantic attributes and records
// errors.
type TracingSessionRepository struct {
	next   domain.SessionRepository
	tracer trace.Tracer
}

// Compile-time check: TracingSessionRepository implements domain.SessionRepository.
var _ domain.SessionRepository = (*TracingSessionRepository)(nil)

// NewTracingSessionRepository creates a tracing decorator around the given repository.
func NewTracingSessionRepository(next domain.SessionRepository) *TracingSessionRepository {
	return &TracingSessionRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingSessionRepository) Open(ctx context.Context, session domain.Session) error {
	ctx, span := r.tracer.Start(ctx, "SessionRepository.Open",
		trace.WithAttributes(
			attribute.String("session.id", session.ID),
			attribute.String("register.id", session.RegisterID),
			attribute.String("operator.id", session.OperatorID),
		),
	)
	defer span.End()

	err := r.next.Open(ctx, session)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingSessionRepository) GetByID(ctx context.Context, id string) (domain.Session, error) {
	ctx, span := r.tracer.Start(ctx, "SessionRepository.GetByID",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	session, err := r.next.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return session, err
}

func (r *TracingSessionRepository) OpenForRegister(ctx context.Context, registerID string) (domain.Session, error) {
	ctx, span := r.tracer.Start(ctx, "SessionRepository.OpenForRegister",
		trace.WithAttributes(attribute.String("register.id", registerID)),
	)
	defer span.End()

	session, err := r.next.OpenForRegister(ctx, registerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return session, err
}

func (r *TracingSessionRepository) Close(ctx context.Context, sessionID string, closedAt time.Time, closingBalance decimal.Decimal) error {
	ctx, span := r.tracer.Start(ctx, "SessionRepository.Close",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("session.closing_balance", closingBalance.String()),
		),
	)
	defer span.End()

	err := r.next.Close(ctx, sessionID, closedAt, closingBalance)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// TracingSaleRepository wraps a domain.SaleRepository with OpenTelemetry
// tracing.
type TracingSaleRepository struct {
	next   domain.SaleRepository
	tracer trace.Tracer
}

// Compile-time check: TracingSaleRepository implements domain.SaleRepository.
var _ domain.SaleRepository = (*TracingSaleRepository)(nil)

// NewTracingSaleRepository creates a tracing decorator around the given repository.
func NewTracingSaleRepository(next domain.SaleRepository) *TracingSaleRepository {
	return &TracingSaleRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingSaleRepository) CreateSale(ctx context.Context, draft domain.SaleDraft) error {
	ctx, span := r.tracer.Start(ctx, "SaleRepository.CreateSale",
		trace.WithAttributes(
			attribute.String("sale.id", draft.Sale.ID),
			attribute.String("session.id", draft.Sale.SessionID),
			attribute.String("tenant.id", draft.Sale.TenantID),
			attribute.Int("sale.items", len(draft.Items)),
			attribute.String("sale.total", draft.Sale.Total.String()),
		),
	)
	defer span.End()

	err := r.next.CreateSale(ctx, draft)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingSaleRepository) UpdateSale(ctx context.Context, update domain.SaleUpdate) error {
	ctx, span := r.tracer.Start(ctx, "SaleRepository.UpdateSale",
		trace.WithAttributes(
			attribute.String("sale.id", update.SaleID),
			attribute.String("tenant.id", update.TenantID),
			attribute.Bool("sale.items_replaced", update.NewItems != nil),
		),
	)
	defer span.End()

	err := r.next.UpdateSale(ctx, update)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingSaleRepository) GetByID(ctx context.Context, tenantID, id string) (domain.Sale, error) {
	ctx, span := r.tracer.Start(ctx, "SaleRepository.GetByID",
		trace.WithAttributes(
			attribute.String("sale.id", id),
			attribute.String("tenant.id", tenantID),
		),
	)
	defer span.End()

	sale, err := r.next.GetByID(ctx, tenantID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return sale, err
}

func (r *TracingSaleRepository) GetItems(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	ctx, span := r.tracer.Start(ctx, "SaleRepository.GetItems",
		trace.WithAttributes(attribute.String("sale.id", saleID)),
	)
	defer span.End()

	items, err := r.next.GetItems(ctx, saleID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(items)))
	}
	return items, err
}

func (r *TracingSaleRepository) GetItemByID(ctx context.Context, tenantID, id string) (domain.SaleItem, error) {
	ctx, span := r.tracer.Start(ctx, "SaleRepository.GetItemByID",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.String("sale_item.id", id),
		),
	)
	defer span.End()

	item, err := r.next.GetItemByID(ctx, tenantID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return item, err
}

func (r *TracingSaleRepository) GetInvoice(ctx context.Context, saleID string) (domain.Invoice, error) {
	ctx, span := r.tracer.Start(ctx, "SaleRepository.GetInvoice",
		trace.WithAttributes(attribute.String("sale.id", saleID)),
	)
	defer span.End()

	invoice, err := r.next.GetInvoice(ctx, saleID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return invoice, err
}

func (r *TracingSaleRepository) ListReturns(ctx context.Context, saleID string) ([]domain.Return, error) {
	ctx, span := r.tracer.Start(ctx, "SaleRepository.ListReturns",
		trace.WithAttributes(attribute.String("sale.id", saleID)),
	)
	defer span.End()

	returns, err := r.next.ListReturns(ctx, saleID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(returns)))
	}
	return returns, err
}

func (r *TracingSaleRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.Sale, error) {
	ctx, span := r.tracer.Start(ctx, "SaleRepository.ListBySession",
		trace.WithAttributes(attribute.String("session.id", sessionID)),
	)
	defer span.End()

	sales, err := r.next.ListBySession(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(sales)))
	}
	return sales, err
}
