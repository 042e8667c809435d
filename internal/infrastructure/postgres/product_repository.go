package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, barcode, price, cost, stock, min_stock, department_id, supplier_id, active, version, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Barcode, &p.Price, &p.Cost, &p.Stock, &p.MinStock,
		&p.DepartmentID, &p.SupplierID, &p.Active, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, barcode, price, cost, stock, min_stock, department_id, supplier_id, active, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Barcode, product.Price, product.Cost,
		product.Stock, product.MinStock, product.DepartmentID, product.SupplierID,
		product.Active, product.Version, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return p, nil
}

// List lista todos los productos, los más recientes primero.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Search busca productos activos por nombre (parcial) o código de barras (exacto).
func (r *ProductRepo) Search(q string, limit int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE active AND (name ILIKE '%' || $1 || '%' OR barcode = $1)
		ORDER BY name
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, q, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update actualiza los datos editables de un producto. No toca Stock ni Cost
// (esos mutan solo vía ApplyStockDelta y UpdatePricing). Si expectedVersion
// no es nil la actualización es condicional y falla con ErrConflict cuando la
// versión en la base ya no coincide.
func (r *ProductRepo) Update(product *entity.Product, expectedVersion *int64) error {
	query := `
		UPDATE products
		SET name = $2, barcode = $3, price = $4, min_stock = $5, department_id = $6,
		    supplier_id = $7, active = $8, version = version + 1, updated_at = now()
		WHERE id = $1`
	args := []any{
		product.ID, product.Name, product.Barcode, product.Price, product.MinStock,
		product.DepartmentID, product.SupplierID, product.Active,
	}
	if expectedVersion != nil {
		query += ` AND version = $9`
		args = append(args, *expectedVersion)
	}
	cmd, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		if expectedVersion != nil {
			// Distinguir fila inexistente de versión desfasada.
			existing, err := r.GetByID(product.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrConflict
			}
		}
		return domain.ErrNotFound
	}
	return nil
}

// GetForUpdate obtiene un producto bloqueando su fila (SELECT ... FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// ApplyStockDelta suma delta (con signo) al stock, incrementa version y
// devuelve el stock resultante. No valida negatividad: esa política la decide
// el caso de uso que lo llama.
func (r *ProductRepo) ApplyStockDelta(id string, delta int64) (int64, error) {
	query := `
		UPDATE products
		SET stock = stock + $2, version = version + 1, updated_at = now()
		WHERE id = $1
		RETURNING stock`
	var newStock int64
	err := r.q.QueryRow(context.Background(), query, id, delta).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("apply stock delta: %w", err)
	}
	return newStock, nil
}

// UpdatePricing actualiza costo y/o precio (nil deja el valor actual).
func (r *ProductRepo) UpdatePricing(id string, cost, price *decimal.Decimal) error {
	query := `
		UPDATE products
		SET cost = COALESCE($2, cost), price = COALESCE($3, price),
		    version = version + 1, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, cost, price)
	if err != nil {
		return fmt.Errorf("update product pricing: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
