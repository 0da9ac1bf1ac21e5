package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ecommerce-backend/order-service/internal/models"
)

// PostgresOrderRepository implements OrderRepository on PostgreSQL
type PostgresOrderRepository struct {
	db *sql.DB
}

// NewPostgresOrderRepository creates a new Postgres-backed repository
func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db: db,
	}
}

// Save persists the order aggregate in a single transaction. The order
// header, every item and both snapshots commit together or not at all.
func (r *PostgresOrderRepository) Save(ctx context.Context, order *models.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	queryOrder := `
		INSERT INTO orders (
			order_id, status, total_amount, created_at
		) VALUES (
			$1, $2, $3, $4
		)
	`

	_, err = tx.ExecContext(ctx, queryOrder,
		order.ID,
		order.Status,
		order.TotalAmount,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving order: %w", err)
	}

	queryItem := `
		INSERT INTO order_items (
			item_id, order_id, product_id, product_name, quantity, unit_price, line_total
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, queryItem,
			item.ID,
			order.ID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("saving order item: %w", err)
		}
	}

	queryCustomer := `
		INSERT INTO order_customers (
			order_id, consumer_id, full_name, first_name, last_name, email, phone_number
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err = tx.ExecContext(ctx, queryCustomer,
		order.ID,
		order.Customer.ConsumerID,
		order.Customer.FullName,
		order.Customer.FirstName,
		order.Customer.LastName,
		order.Customer.Email,
		order.Customer.PhoneNumber,
	)
	if err != nil {
		return fmt.Errorf("saving customer snapshot: %w", err)
	}

	queryShipping := `
		INSERT INTO order_shipping_addresses (
			order_id, country, street_address, region, postal_code, locality
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err = tx.ExecContext(ctx, queryShipping,
		order.ID,
		order.Shipping.Country,
		order.Shipping.StreetAddress,
		order.Shipping.Region,
		order.Shipping.PostalCode,
		order.Shipping.Locality,
	)
	if err != nil {
		return fmt.Errorf("saving shipping snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GetByID loads the full aggregate for one order
func (r *PostgresOrderRepository) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	queryOrder := `
		SELECT o.order_id, o.status, o.total_amount, o.created_at,
		       c.consumer_id, c.full_name, c.first_name, c.last_name, c.email, c.phone_number,
		       s.country, s.street_address, s.region, s.postal_code, s.locality
		FROM orders o
		JOIN order_customers c ON c.order_id = o.order_id
		JOIN order_shipping_addresses s ON s.order_id = o.order_id
		WHERE o.order_id = $1
	`

	order := &models.Order{}
	err := r.db.QueryRowContext(ctx, queryOrder, orderID).Scan(
		&order.ID,
		&order.Status,
		&order.TotalAmount,
		&order.CreatedAt,
		&order.Customer.ConsumerID,
		&order.Customer.FullName,
		&order.Customer.FirstName,
		&order.Customer.LastName,
		&order.Customer.Email,
		&order.Customer.PhoneNumber,
		&order.Shipping.Country,
		&order.Shipping.StreetAddress,
		&order.Shipping.Region,
		&order.Shipping.PostalCode,
		&order.Shipping.Locality,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding order: %w", err)
	}

	items, err := r.loadItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// GetAll loads every persisted order aggregate, newest first
func (r *PostgresOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	query := `
		SELECT o.order_id, o.status, o.total_amount, o.created_at,
		       c.consumer_id, c.full_name, c.first_name, c.last_name, c.email, c.phone_number,
		       s.country, s.street_address, s.region, s.postal_code, s.locality
		FROM orders o
		JOIN order_customers c ON c.order_id = o.order_id
		JOIN order_shipping_addresses s ON s.order_id = o.order_id
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.Status,
			&order.TotalAmount,
			&order.CreatedAt,
			&order.Customer.ConsumerID,
			&order.Customer.FullName,
			&order.Customer.FirstName,
			&order.Customer.LastName,
			&order.Customer.Email,
			&order.Customer.PhoneNumber,
			&order.Shipping.Country,
			&order.Shipping.StreetAddress,
			&order.Shipping.Region,
			&order.Shipping.PostalCode,
			&order.Shipping.Locality,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (r *PostgresOrderRepository) loadItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	query := `
		SELECT item_id, order_id, product_id, product_name, quantity, unit_price, line_total
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("loading items for order %s: %w", orderID, err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
			&item.LineTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}

	return items, nil
}
