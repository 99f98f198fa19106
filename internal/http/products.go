package httpapi

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"shopadmin/internal/domain"
	"shopadmin/internal/service"
)

// productForm is the body of the add and edit product forms.
type productForm struct {
	Name        string  `form:"name" binding:"required"`
	Price       float64 `form:"price" binding:"gte=0"`
	Description string  `form:"description"`
	Category    string  `form:"category"`
	Stock       int64   `form:"stock" binding:"gte=0"`
}

func (f productForm) fields() domain.ProductFields {
	return domain.ProductFields{
		Name:        f.Name,
		Price:       f.Price,
		Description: f.Description,
		Category:    f.Category,
		Stock:       f.Stock,
	}
}

const (
	msgInvalidProduct  = "Invalid product data."
	msgProductNotFound = "Product not found."
	msgFileTooLarge    = "File too large."
)

// @Summary Add-product form
// @Tags products
// @Produce html
// @Success 200 {string} string "HTML page"
// @Failure 403 {string} string
// @Router /addproduct [get]
func (s *Server) addProductPage(c *gin.Context) {
	if err := s.products.AuthorizeNewProductForm(c.Request.Context()); err != nil {
		fail(c, "admin.product.new", err, replies{internal: "An error occurred."})
		return
	}
	c.HTML(http.StatusOK, viewAddProduct, gin.H{})
}

// @Summary Add product
// @Description Multipart form; the image file is optional.
// @Tags products
// @Accept mpfd
// @Param name formData string true "Name"
// @Param price formData number true "Price"
// @Param description formData string false "Description"
// @Param category formData string false "Category"
// @Param stock formData integer true "Stock"
// @Param image formData file false "Product image"
// @Success 302 "Redirect to /admindashboard"
// @Failure 400 {string} string
// @Failure 403 {string} string
// @Failure 413 {string} string
// @Failure 500 {string} string
// @Router /products [post]
func (s *Server) addProduct(c *gin.Context) {
	r := replies{invalid: msgInvalidProduct, internal: "An error occurred while adding the product."}
	ctx := c.Request.Context()
	if err := s.products.AuthorizeMutation(ctx); err != nil {
		fail(c, "admin.product.add", err, r)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUploadBytes)
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		if isTooLarge(err) {
			c.String(http.StatusRequestEntityTooLarge, msgFileTooLarge)
			return
		}
		c.String(http.StatusBadRequest, msgInvalidProduct)
		return
	}
	img, err := readImage(c, "image")
	if err != nil {
		if isTooLarge(err) {
			c.String(http.StatusRequestEntityTooLarge, msgFileTooLarge)
			return
		}
		fail(c, "admin.product.add", err, r)
		return
	}

	if _, err := s.products.Create(ctx, service.ProductInput{ProductFields: form.fields(), Image: img}); err != nil {
		fail(c, "admin.product.add", err, r)
		return
	}
	c.Redirect(http.StatusFound, "/admindashboard")
}

// @Summary Product image
// @Tags products
// @Produce image/png,image/jpeg,image/gif,image/webp
// @Param id path string true "Product ID"
// @Success 200 {file} binary
// @Failure 404 {string} string
// @Failure 500 {string} string
// @Router /products/{id}/image [get]
func (s *Server) productImage(c *gin.Context) {
	img, err := s.products.Image(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "admin.product.image", err, replies{
			notFound: "Image not found.",
			internal: "An error occurred while fetching the image.",
		})
		return
	}
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

// @Summary Edit-product form
// @Tags products
// @Produce html
// @Param id path string true "Product ID"
// @Success 200 {string} string "HTML page"
// @Failure 403 {string} string
// @Failure 404 {string} string
// @Failure 500 {string} string
// @Router /products/{id}/edit [get]
func (s *Server) editProductPage(c *gin.Context) {
	p, err := s.products.ForEdit(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "admin.product.edit", err, replies{
			notFound: msgProductNotFound,
			internal: "An error occurred while fetching the product.",
		})
		return
	}
	c.HTML(http.StatusOK, viewEditProduct, gin.H{"product": p})
}

// @Summary Update product
// @Description Replaces every editable field. The image is kept.
// @Tags products
// @Accept x-www-form-urlencoded
// @Param id path string true "Product ID"
// @Param name formData string true "Name"
// @Param price formData number true "Price"
// @Param description formData string false "Description"
// @Param category formData string false "Category"
// @Param stock formData integer true "Stock"
// @Success 302 "Redirect to /admindashboard"
// @Failure 400 {string} string
// @Failure 403 {string} string
// @Failure 404 {string} string
// @Failure 500 {string} string
// @Router /products/{id} [post]
func (s *Server) updateProduct(c *gin.Context) {
	r := replies{
		invalid:  msgInvalidProduct,
		notFound: msgProductNotFound,
		internal: "An error occurred while updating the product.",
	}
	ctx := c.Request.Context()
	if err := s.products.AuthorizeMutation(ctx); err != nil {
		fail(c, "admin.product.update", err, r)
		return
	}
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, msgInvalidProduct)
		return
	}
	if _, err := s.products.Update(ctx, c.Param("id"), form.fields()); err != nil {
		fail(c, "admin.product.update", err, r)
		return
	}
	c.Redirect(http.StatusFound, "/admindashboard")
}

// @Summary Delete product
// @Description Also reachable as POST /products/{id}/delete for HTML forms.
// @Tags products
// @Param id path string true "Product ID"
// @Success 302 "Redirect to /admindashboard"
// @Failure 403 {string} string
// @Failure 404 {string} string
// @Failure 500 {string} string
// @Router /products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, "admin.product.delete", err, replies{
			notFound: msgProductNotFound,
			internal: "An error occurred while deleting the product.",
		})
		return
	}
	c.Redirect(http.StatusFound, "/admindashboard")
}

// readImage returns the uploaded file in field, or nil when none was sent.
// The content type comes from the part header and is sniffed when the client
// left it generic.
func readImage(c *gin.Context, field string) (*domain.ProductImage, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if fh.Size == 0 {
		return nil, nil
	}
	data, err := readAll(fh)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(data).String()
	}
	return &domain.ProductImage{Data: data, ContentType: contentType}, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
