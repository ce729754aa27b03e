package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkrishnan-dev/quickbasket/internal/service"
	"github.com/mkrishnan-dev/quickbasket/internal/util"
)

type CatalogHandler struct {
	Svc *service.CatalogService
}

func (h *CatalogHandler) Home(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	result, err := h.Svc.Storefront(c.Request().Context(), page, size)
	if err != nil {
		return httpError(err)
	}
	cats, err := h.Svc.Categories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"products":   result.Products,
		"total":      result.Total,
		"categories": cats,
	})
}

func (h *CatalogHandler) Categories(c echo.Context) error {
	cats, err := h.Svc.Categories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHandler) CategoryProducts(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	cat, result, err := h.Svc.CategoryProducts(c.Request().Context(), c.Param("slug"), page, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"category": cat,
		"products": result.Products,
		"total":    result.Total,
	})
}
