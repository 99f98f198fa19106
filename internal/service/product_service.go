package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"shopadmin/internal/auth"
	"shopadmin/internal/domain"
	"shopadmin/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrImageNotFound covers both a missing product and a product without an image.
	ErrImageNotFound = fmt.Errorf("image %w", repository.ErrNotFound)
)

// Policy decides which operations need an admin on top of the ones that always do.
type Policy struct {
	// GuardMutations requires an admin for every write and for the edit form.
	GuardMutations bool
}

func (p Policy) authorizeMutation(ctx context.Context) error {
	if !p.GuardMutations {
		return nil
	}
	_, err := auth.RequireAdmin(ctx)
	return err
}

// ProductInput is a parsed add-product request.
type ProductInput struct {
	domain.ProductFields
	// Image is nil when no file was uploaded.
	Image *domain.ProductImage
}

// ProductService encapsulates the admin operations on products.
type ProductService struct {
	repo   repository.ProductRepository
	policy Policy
}

func NewProductService(repo repository.ProductRepository, policy Policy) *ProductService {
	return &ProductService{repo: repo, policy: policy}
}

// AuthorizeNewProductForm is the check behind the add-product page.
func (s *ProductService) AuthorizeNewProductForm(ctx context.Context) error {
	_, err := auth.RequireAdmin(ctx)
	return err
}

// AuthorizeMutation reports whether the caller may change products under the
// current policy. Handlers call it before parsing a request body.
func (s *ProductService) AuthorizeMutation(ctx context.Context) error {
	return s.policy.authorizeMutation(ctx)
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := s.policy.authorizeMutation(ctx); err != nil {
		return nil, err
	}
	fields, err := validateFields(in.ProductFields)
	if err != nil {
		return nil, err
	}
	if in.Image != nil && (len(in.Image.Data) == 0 || in.Image.ContentType == "") {
		return nil, ErrInvalidInput
	}

	p := domain.Product{Image: in.Image}
	fields.Apply(&p)
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

// Image returns the stored image of a product. It is not guarded: storefront
// pages embed these URLs.
func (s *ProductService) Image(ctx context.Context, id string) (*domain.ProductImage, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	if !p.HasImage() || p.Image.ContentType == "" {
		return nil, ErrImageNotFound
	}
	return p.Image, nil
}

// ForEdit loads the product shown in the edit form.
func (s *ProductService) ForEdit(ctx context.Context, id string) (*domain.Product, error) {
	if err := s.policy.authorizeMutation(ctx); err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr("get product", id, err)
	}
	return p, nil
}

// Update replaces every editable field; the image is left untouched.
func (s *ProductService) Update(ctx context.Context, id string, f domain.ProductFields) (*domain.Product, error) {
	if err := s.policy.authorizeMutation(ctx); err != nil {
		return nil, err
	}
	fields, err := validateFields(f)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, wrapRepoErr("update product", id, err)
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.policy.authorizeMutation(ctx); err != nil {
		return err
	}
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return wrapRepoErr("delete product", id, err)
	}
	return nil
}

func validateFields(f domain.ProductFields) (domain.ProductFields, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Category = strings.TrimSpace(f.Category)
	if f.Name == "" || f.Stock < 0 {
		return f, ErrInvalidInput
	}
	if f.Price < 0 || math.IsNaN(f.Price) || math.IsInf(f.Price, 0) {
		return f, ErrInvalidInput
	}
	return f, nil
}

// wrapRepoErr keeps ErrNotFound visible to errors.Is while adding context.
func wrapRepoErr(op, id string, err error) error {
	return fmt.Errorf("%s %s: %w", op, id, err)
}
