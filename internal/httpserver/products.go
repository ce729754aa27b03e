package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tealeg/xlsx"

	"github.com/mkrishnan-dev/quickbasket/internal/repo"
	"github.com/mkrishnan-dev/quickbasket/internal/service"
	"github.com/mkrishnan-dev/quickbasket/internal/util"
)

type VendorProductHandler struct {
	Svc     *service.CatalogService
	Vendors *service.VendorService
}

func (h *VendorProductHandler) List(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}
	vendor, err := h.Vendors.RequireApproved(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	filter := repo.VendorProductFilter{
		CategoryID:   uint(util.ParseIntDefault(c.QueryParam("category"), 0)),
		Availability: c.QueryParam("availability"),
	}
	products, err := h.Svc.VendorProducts(c.Request().Context(), vendor.ID, filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *VendorProductHandler) Create(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}
	vendor, err := h.Vendors.RequireApproved(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	var in service.ProductInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.AddProduct(c.Request().Context(), vendor.ID, in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *VendorProductHandler) Update(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}
	vendor, err := h.Vendors.RequireApproved(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	var in service.ProductInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.EditProduct(c.Request().Context(), vendor.ID, c.Param("slug"), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *VendorProductHandler) Delete(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}
	vendor, err := h.Vendors.RequireApproved(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	if err := h.Svc.DeleteProduct(c.Request().Context(), vendor.ID, c.Param("slug")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *VendorProductHandler) Toggle(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}
	vendor, err := h.Vendors.RequireApproved(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	product, err := h.Svc.ToggleAvailability(c.Request().Context(), vendor.ID, c.Param("slug"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

// ExportXLSX renders the vendor's full inventory as a spreadsheet download.
func (h *VendorProductHandler) ExportXLSX(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}
	vendor, err := h.Vendors.RequireApproved(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	products, err := h.Svc.VendorProducts(c.Request().Context(), vendor.ID, repo.VendorProductFilter{})
	if err != nil {
		return httpError(err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	headerRow := sheet.AddRow()
	for _, head := range []string{"ID", "Name", "Slug", "Category", "Price", "DiscountPrice", "Quantity", "Unit", "Available", "Active", "CreatedAt"} {
		headerRow.AddCell().SetValue(head)
	}
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(int(p.ID))
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Slug)
		row.AddCell().SetValue(int(p.CategoryID))
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.DiscountPrice)
		row.AddCell().SetValue(p.Quantity)
		row.AddCell().SetValue(p.Unit)
		row.AddCell().SetValue(p.IsAvailable)
		row.AddCell().SetValue(p.IsActive)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04"))
	}

	filename := fmt.Sprintf("products_%s_%s.xlsx", vendor.Slug, time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return file.Write(c.Response())
}
