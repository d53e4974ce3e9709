package order

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Meta keys preserved on every widget order.
const (
	metaKeyZone      = "_rpc_delivery_zone"
	metaKeySource    = "_rpc_source"
	metaKeyQuantity  = "_rpc_quantity"
	metaKeyVariation = "_rpc_variation_id"
)

// Repo persists orders in Postgres. Each order is written in one
// transaction: the order row, its single line item, and the delivery fee.
type Repo struct {
	Pool *pgxpool.Pool
}

// CreateOrder inserts the order and its child rows atomically.
func (r *Repo) CreateOrder(ctx context.Context, o NewOrder) (Created, error) {
	var created Created
	err := pgx.BeginFunc(ctx, r.Pool, func(tx pgx.Tx) error {
		meta, err := json.Marshal(map[string]any{
			metaKeyZone:      string(o.DeliveryZone),
			metaKeySource:    o.Source,
			metaKeyQuantity:  o.Quantity,
			metaKeyVariation: o.VariationID,
		})
		if err != nil {
			return fmt.Errorf("encode order meta: %w", err)
		}

		const insertOrder = `
			INSERT INTO orders (
				status, payment_method,
				customer_name, customer_phone, customer_address, customer_email,
				delivery_zone, delivery_charge, total, meta
			)
			VALUES ('pending', 'cod', $1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`
		if err := tx.QueryRow(ctx, insertOrder,
			o.Contact.FirstName, o.Contact.Phone, o.Contact.Address, o.Contact.Email,
			string(o.DeliveryZone), o.DeliveryCharge, o.Total, meta,
		).Scan(&created.ID); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		const insertItem = `
			INSERT INTO order_items (order_id, product_id, variation_id, name, quantity, unit_price, subtotal)
			VALUES ($1, $2, NULLIF($3, 0), $4, $5, $6, $7)`
		subtotal := o.UnitPrice * int64(o.Quantity)
		if _, err := tx.Exec(ctx, insertItem,
			created.ID, o.ProductID, o.VariationID, o.ProductName, o.Quantity, o.UnitPrice, subtotal,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}

		const insertFee = `
			INSERT INTO order_fees (order_id, name, amount)
			VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, insertFee, created.ID, DeliveryFeeLabel, o.DeliveryCharge); err != nil {
			return fmt.Errorf("insert delivery fee: %w", err)
		}
		return nil
	})
	if err != nil {
		return Created{}, err
	}
	created.Number = strconv.FormatInt(created.ID, 10)
	return created, nil
}
