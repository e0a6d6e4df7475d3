package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/mkarhu/sauna-booking/internal/model"
)

// ProductStore is the persistence abstraction for the catalog.
type ProductStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Product, error)
	List(ctx context.Context, limit, offset int) ([]model.Product, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	Update(ctx context.Context, id uint64, p model.ProductPatch) error
	Delete(ctx context.Context, id uint64) (bool, error)
}

// ProductService manages the front-desk catalog.
type ProductService struct {
	products ProductStore
}

// NewProductService constructs a ProductService.
func NewProductService(products ProductStore) *ProductService {
	if products == nil {
		panic("nil store passed to NewProductService")
	}
	return &ProductService{products: products}
}

// ProductPage is a paginated list of catalog items.
type ProductPage struct {
	Data       []model.Product `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// Get returns one product.
func (s *ProductService) Get(ctx context.Context, id uint64) (*model.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Msg: "Product not found"}
	}
	if err != nil {
		return nil, storagef("load product", err)
	}
	return p, nil
}

// List returns catalog items with pagination metadata.
func (s *ProductService) List(ctx context.Context, limit, offset int) (*ProductPage, error) {
	total, err := s.products.Count(ctx)
	if err != nil {
		return nil, storagef("count products", err)
	}
	items, err := s.products.List(ctx, limit, offset)
	if err != nil {
		return nil, storagef("list products", err)
	}
	return &ProductPage{Data: items, Pagination: paginate(total, limit, offset)}, nil
}

// Create adds a catalog item.  Name and price are required by the handler;
// price may arrive as a number or a numeric string.
func (s *ProductService) Create(ctx context.Context, data map[string]any) (*model.Product, error) {
	price, ok := priceValue(data["price"])
	if !ok {
		return nil, &ValidationError{Msg: "Price must be a numeric value"}
	}
	draft := &model.Product{
		Name:        stringValue(data["name"]),
		Description: stringValue(data["description"]),
		Price:       price,
	}
	if v, ok := data["stock"]; ok && v != nil {
		if n, ok := intValue(v); ok {
			draft.Stock = n
		}
	}
	if v, ok := data["image_url"]; ok && v != nil {
		if u := stringValue(v); u != "" {
			draft.ImageURL = &u
		}
	}
	stored, err := s.products.Create(ctx, draft)
	if err != nil {
		return nil, storagef("create product", err)
	}
	return stored, nil
}

// Update patches a catalog item.
func (s *ProductService) Update(ctx context.Context, id uint64, data map[string]any) (*model.Product, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	var patch model.ProductPatch
	if v, ok := data["name"]; ok && v != nil {
		name := stringValue(v)
		patch.Name = &name
	}
	if v, ok := data["description"]; ok && v != nil {
		desc := stringValue(v)
		patch.Description = &desc
	}
	if v, ok := data["price"]; ok && v != nil {
		price, ok := priceValue(v)
		if !ok {
			return nil, &ValidationError{Msg: "Price must be a numeric value"}
		}
		patch.Price = &price
	}
	if v, ok := data["stock"]; ok && v != nil {
		n, ok := intValue(v)
		if !ok {
			return nil, &ValidationError{Msg: "Stock must be a numeric value"}
		}
		patch.Stock = &n
	}
	if v, ok := data["image_url"]; ok && v != nil {
		u := stringValue(v)
		patch.ImageURL = &u
	}
	if err := s.products.Update(ctx, id, patch); err != nil {
		return nil, storagef("update product", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a catalog item.
func (s *ProductService) Delete(ctx context.Context, id uint64) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return storagef("delete product", err)
	}
	if !deleted {
		return &NotFoundError{Msg: "Product not found"}
	}
	return nil
}

// priceValue coerces a price into a float, accepting numeric strings.
func priceValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}
