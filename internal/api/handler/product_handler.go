package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storelink/catalog-api/internal/core/ports"
)

// ProductHandler handles the catalog routes.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List returns all products matching the query filters, newest first.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category  query     string   false  "Case-insensitive category substring"
// @Param        name      query     string   false  "Case-insensitive name substring"
// @Param        inStock   query     boolean  false  "Exact stock flag"
// @Param        minPrice  query     number   false  "Inclusive lower price bound"
// @Param        maxPrice  query     number   false  "Inclusive upper price bound"
// @Success      200       {object}  listProductsResponse
// @Failure      400       {object}  map[string]any
// @Failure      500       {object}  map[string]any
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	filter, err := parseListFilter(c)
	if err != nil {
		return err
	}

	products, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listProductsResponse{
		Success: true,
		Count:   len(products),
		Data:    products,
	})
}

// Get returns a single product by id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productResponse{Success: true, Data: product})
}

// Create adds a product to the catalog.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		Name:        req.Name,
		Price:       *req.Price,
		Description: req.Description,
		Category:    req.Category,
		InStock:     req.InStock,
	}, actorName(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, productResponse{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// Update merges the supplied fields onto an existing product.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toPatch(), actorName(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, productResponse{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// Delete removes a product and returns the prior record. Admin only.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	product, err := h.service.Delete(c.Request().Context(), c.Param("id"), actorName(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, productResponse{
		Success: true,
		Message: "Product deleted successfully",
		Data:    product,
	})
}

// parseListFilter reads the supported query parameters. Absence of a key
// means no constraint; an unparsable value is a field-level validation
// failure, reported with the same shape as body violations.
func parseListFilter(c echo.Context) (ports.ListProductsFilter, error) {
	filter := ports.ListProductsFilter{
		Category: c.QueryParam("category"),
		Name:     c.QueryParam("name"),
	}

	var fields []FieldError
	if raw := c.QueryParam("inStock"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			fields = append(fields, FieldError{Field: "inStock", Message: "inStock must be a boolean", Value: raw})
		} else {
			filter.InStock = &v
		}
	}
	if raw := c.QueryParam("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fields = append(fields, FieldError{Field: "minPrice", Message: "minPrice must be a number", Value: raw})
		} else {
			filter.MinPrice = &v
		}
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fields = append(fields, FieldError{Field: "maxPrice", Message: "maxPrice must be a number", Value: raw})
		} else {
			filter.MaxPrice = &v
		}
	}

	if len(fields) > 0 {
		return ports.ListProductsFilter{}, &ValidationError{Fields: fields}
	}
	return filter, nil
}
