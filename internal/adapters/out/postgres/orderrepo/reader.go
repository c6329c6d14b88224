package orderrepo

import (
	"context"
	"strings"
	"time"

	"github.com/daniel06264831/menuia/internal/adapters/out/postgres/dberr"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormOrderReader serves the read side with hand-written SQL outside any
// unit of work.
type GormOrderReader struct {
	db *gorm.DB
}

func NewGormOrderReader(db *gorm.DB) *GormOrderReader {
	return &GormOrderReader{db: db}
}

func (r *GormOrderReader) ListByShop(ctx context.Context, slug string, from, to time.Time, limit int) ([]*order.Order, error) {
	var (
		where strings.Builder
		args  = []any{slug}
	)
	where.WriteString("shop_slug = ?")
	if !from.IsZero() {
		where.WriteString(" AND created_at >= ?")
		args = append(args, from)
	}
	if !to.IsZero() {
		where.WriteString(" AND created_at < ?")
		args = append(args, to)
	}
	args = append(args, limit)

	return r.scan(ctx, "list shop orders", `
		SELECT *
		FROM orders
		WHERE `+where.String()+`
		ORDER BY created_at DESC
		LIMIT ?
	`, args...)
}

func (r *GormOrderReader) FindActiveByCustomer(ctx context.Context, phone string) ([]*order.Order, error) {
	return r.scan(ctx, "find customer orders", `
		SELECT *
		FROM orders
		WHERE customer_phone = ?
			AND status IN (?, ?)
		ORDER BY created_at DESC
	`, phone, string(order.StatusPending), string(order.StatusDriverAssigned))
}

func (r *GormOrderReader) scan(ctx context.Context, operation, sql string, args ...any) ([]*order.Order, error) {
	rows, err := r.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, dberr.Wrap(operation, err)
	}
	defer rows.Close()

	orders := make([]*order.Order, 0)
	for rows.Next() {
		var dto OrderDTO
		if err = r.db.ScanRows(rows, &dto); err != nil {
			return nil, dberr.Wrap(operation, err)
		}

		o, convErr := ToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, dberr.Wrap(operation, err)
	}

	return orders, nil
}
