package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"ecommerce-services/internal/domain"
)

const productResource = "product"

type ProductService struct {
	repo domain.ProductRepository
	log  *zap.Logger
	now  Clock
}

func NewProductService(repo domain.ProductRepository, l *zap.Logger) *ProductService {
	return &ProductService{repo: repo, log: l.Named("product-service"), now: SystemClock}
}

func (s *ProductService) WithClock(c Clock) *ProductService {
	s.now = c
	return s
}

func (s *ProductService) storeErr(op string, err error, fields ...zap.Field) error {
	s.log.Error(op+" failed", append(fields, zap.Error(err))...)
	return domain.Internal(op+" failed", err)
}

func checkProductRequest(req *ProductRequest) error {
	switch {
	case req.Price == nil:
		return domain.Invalid("Price is required")
	case !req.Price.IsPositive():
		return domain.Invalid("Price must be greater than 0")
	case req.Stock == nil:
		return domain.Invalid("Stock is required")
	case *req.Stock < 0:
		return domain.Invalid("Stock cannot be negative")
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, req ProductRequest) (out ProductResponse, err error) {
	defer func() { observe(productResource, "create", err) }()
	s.log.Info("creating product", zap.String("sku", req.SKU))

	if err := checkProductRequest(&req); err != nil {
		return out, err
	}
	taken, err := s.repo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return out, s.storeErr("check sku", err, zap.String("sku", req.SKU))
	}
	if taken {
		return out, duplicateSKU(req.SKU)
	}

	now := s.now()
	p := domain.Product{CreatedAt: now, UpdatedAt: now}
	applyProductRequest(&p, &req)
	if err := s.repo.Save(ctx, &p); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return out, duplicateSKU(req.SKU)
		}
		return out, s.storeErr("save product", err, zap.String("sku", req.SKU))
	}
	s.log.Info("product created", zap.String("id", p.ID))
	return toProductResponse(&p), nil
}

func (s *ProductService) Get(ctx context.Context, id string) (out ProductResponse, err error) {
	defer func() { observe(productResource, "get", err) }()
	s.log.Debug("fetching product", zap.String("id", id))

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return out, s.storeErr("find product", err, zap.String("id", id))
	}
	if p == nil {
		return out, productNotFound(id)
	}
	return toProductResponse(p), nil
}

func (s *ProductService) GetBySKU(ctx context.Context, sku string) (out ProductResponse, err error) {
	defer func() { observe(productResource, "get_by_sku", err) }()
	s.log.Debug("fetching product by sku", zap.String("sku", sku))

	p, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return out, s.storeErr("find product", err, zap.String("sku", sku))
	}
	if p == nil {
		return out, domain.NotFound("Product not found with SKU: " + sku)
	}
	return toProductResponse(p), nil
}

func (s *ProductService) List(ctx context.Context) (out []ProductResponse, err error) {
	defer func() { observe(productResource, "list", err) }()

	ps, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.storeErr("list products", err)
	}
	return toProductResponses(ps), nil
}

// ListByCategory 精确匹配，区分大小写
func (s *ProductService) ListByCategory(ctx context.Context, category string) (out []ProductResponse, err error) {
	defer func() { observe(productResource, "list_by_category", err) }()
	s.log.Debug("fetching products by category", zap.String("category", category))

	ps, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, s.storeErr("list products", err, zap.String("category", category))
	}
	return toProductResponses(ps), nil
}

// SearchByName 不区分大小写的子串匹配；空串返回全部
func (s *ProductService) SearchByName(ctx context.Context, q string) (out []ProductResponse, err error) {
	defer func() { observe(productResource, "search", err) }()
	s.log.Debug("searching products", zap.String("query", q))

	ps, err := s.repo.FindByNameContaining(ctx, q)
	if err != nil {
		return nil, s.storeErr("search products", err, zap.String("query", q))
	}
	return toProductResponses(ps), nil
}

func (s *ProductService) Update(ctx context.Context, id string, req ProductRequest) (out ProductResponse, err error) {
	defer func() { observe(productResource, "update", err) }()
	s.log.Info("updating product", zap.String("id", id))

	if err := checkProductRequest(&req); err != nil {
		return out, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return out, s.storeErr("find product", err, zap.String("id", id))
	}
	if p == nil {
		return out, productNotFound(id)
	}
	if p.SKU != req.SKU {
		taken, err := s.repo.ExistsBySKU(ctx, req.SKU)
		if err != nil {
			return out, s.storeErr("check sku", err, zap.String("sku", req.SKU))
		}
		if taken {
			return out, duplicateSKU(req.SKU)
		}
	}

	applyProductRequest(p, &req)
	p.UpdatedAt = touch(s.now, p.CreatedAt, p.UpdatedAt)
	if err := s.repo.Save(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return out, duplicateSKU(req.SKU)
		}
		return out, s.storeErr("save product", err, zap.String("id", id))
	}
	s.log.Info("product updated", zap.String("id", id))
	return toProductResponse(p), nil
}

func (s *ProductService) Delete(ctx context.Context, id string) (err error) {
	defer func() { observe(productResource, "delete", err) }()
	s.log.Info("deleting product", zap.String("id", id))

	ok, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return s.storeErr("check product", err, zap.String("id", id))
	}
	if !ok {
		return productNotFound(id)
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.storeErr("delete product", err, zap.String("id", id))
	}
	s.log.Info("product deleted", zap.String("id", id))
	return nil
}

// UpdateStock quantity >= 0 由 HTTP 层校验；这里再兜一次
func (s *ProductService) UpdateStock(ctx context.Context, id string, quantity int) (err error) {
	defer func() { observe(productResource, "update_stock", err) }()
	s.log.Info("updating stock", zap.String("id", id), zap.Int("quantity", quantity))

	if quantity < 0 {
		return domain.Invalid("Quantity cannot be negative")
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.storeErr("find product", err, zap.String("id", id))
	}
	if p == nil {
		return productNotFound(id)
	}
	p.Stock = quantity
	p.UpdatedAt = touch(s.now, p.CreatedAt, p.UpdatedAt)
	if err := s.repo.Save(ctx, p); err != nil {
		return s.storeErr("save product", err, zap.String("id", id))
	}
	return nil
}

func productNotFound(id string) error { return domain.NotFound("Product not found with ID: " + id) }

func duplicateSKU(sku string) error {
	return domain.Duplicate("Product with SKU already exists: " + sku)
}
