package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"kasirhub/internal/common"
	"kasirhub/internal/models"
	"kasirhub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const productImageBucket = "product-images"

// ProductHandlers handles the product catalog. Create and update accept
// multipart forms so a product image can ride along.
type ProductHandlers struct {
	productSvc services.ProductService
	storageSvc services.StorageService
}

func NewProductHandlers(productSvc services.ProductService, storageSvc services.StorageService) *ProductHandlers {
	return &ProductHandlers{productSvc: productSvc, storageSvc: storageSvc}
}

// actorBranch returns the caller's branch pin, nil for owner-level users.
func actorBranch(c echo.Context) *uuid.UUID {
	if branchID, ok := common.GetBranchIDFromContext(c.Request().Context()); ok {
		return &branchID
	}
	return nil
}

// uploadProductImage stores the optional product_image form file and
// returns its object key.
func (h *ProductHandlers) uploadProductImage(c echo.Context, partnerID uuid.UUID) (*string, error) {
	header, err := c.FormFile("product_image")
	if err != nil {
		return nil, nil // no image attached
	}

	contentType, err := validateImageFile(header)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	file, err := header.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to open uploaded file")
	}
	defer file.Close()

	objectKey := fmt.Sprintf("%s/%s-%s", partnerID, uuid.NewString(), header.Filename)
	ctx := c.Request().Context()
	if err := h.storageSvc.UploadImage(ctx, productImageBucket, objectKey, contentType, file, header.Size); err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}
	return &objectKey, nil
}

// CreateProduct handles POST /products (multipart form)
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	name := c.FormValue("name")
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return common.SendValidationError(c, "price", "price must be a number")
	}
	if err := common.ValidatePositiveFloat(price, "price", 1e9); err != nil {
		return common.SendValidationError(c, "price", err.Error())
	}

	product := &models.Product{
		PartnerID: partnerID,
		BranchID:  actorBranch(c),
		Name:      name,
		SKU:       c.FormValue("sku"),
		Price:     price,
		IsActive:  true,
	}

	if categoryParam := c.FormValue("category_id"); categoryParam != "" {
		categoryID, err := common.ValidateUUID(categoryParam, "category_id")
		if err != nil {
			return common.SendValidationError(c, "category_id", err.Error())
		}
		product.CategoryID = &categoryID
	}

	imageKey, err := h.uploadProductImage(c, partnerID)
	if err != nil {
		return err
	}
	product.ImageKey = imageKey

	if err := h.productSvc.Create(ctx, actorBranch(c), product); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
		"product": product,
	})
}

// ListProducts handles GET /products. Branch admins see general items
// plus their own local ones; owners see everything.
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	limit, offset := listParams(c)
	products, err := h.productSvc.List(ctx, partnerID, actorBranch(c), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	type productView struct {
		*models.Product
		Scope    string `json:"scope"`
		ImageURL string `json:"image_url,omitempty"`
	}
	views := make([]productView, 0, len(products))
	for _, p := range products {
		view := productView{Product: p, Scope: p.Scope()}
		if p.ImageKey != nil {
			if url, err := h.storageSvc.GetPresignedURL(productImageBucket, *p.ImageKey, time.Hour); err == nil {
				view.ImageURL = url
			}
		}
		views = append(views, view)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": views,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetProductByID handles GET /products/:id
func (h *ProductHandlers) GetProductByID(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.productSvc.GetByID(ctx, partnerID, productID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	return c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /products/:id (multipart form)
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	existing, err := h.productSvc.GetByID(ctx, partnerID, productID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}

	name := c.FormValue("name")
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return common.SendValidationError(c, "price", "price must be a number")
	}
	if err := common.ValidatePositiveFloat(price, "price", 1e9); err != nil {
		return common.SendValidationError(c, "price", err.Error())
	}

	existing.Name = name
	existing.SKU = c.FormValue("sku")
	existing.Price = price
	if activeParam := c.FormValue("is_active"); activeParam != "" {
		existing.IsActive = activeParam == "true"
	}

	if categoryParam := c.FormValue("category_id"); categoryParam != "" {
		categoryID, err := common.ValidateUUID(categoryParam, "category_id")
		if err != nil {
			return common.SendValidationError(c, "category_id", err.Error())
		}
		existing.CategoryID = &categoryID
	}

	imageKey, err := h.uploadProductImage(c, partnerID)
	if err != nil {
		return err
	}
	if imageKey != nil {
		if existing.ImageKey != nil {
			h.storageSvc.DeleteImage(ctx, productImageBucket, *existing.ImageKey)
		}
		existing.ImageKey = imageKey
	}

	if err := h.productSvc.Update(ctx, actorBranch(c), existing); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
		"product": existing,
	})
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.productSvc.Delete(ctx, actorBranch(c), partnerID, productID); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product deleted",
	})
}
