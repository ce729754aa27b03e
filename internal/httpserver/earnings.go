package httpserver

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tealeg/xlsx"

	"github.com/mkrishnan-dev/quickbasket/internal/service"
	"github.com/mkrishnan-dev/quickbasket/internal/util"
)

type EarningsHandler struct {
	Svc     *service.EarningsService
	Vendors *service.VendorService
}

func earningsFilter(c echo.Context) service.EarningsFilter {
	return service.EarningsFilter{
		DateFrom:   c.QueryParam("date_from"),
		DateTo:     c.QueryParam("date_to"),
		ProductID:  uint(util.ParseIntDefault(c.QueryParam("product"), 0)),
		CategoryID: uint(util.ParseIntDefault(c.QueryParam("category"), 0)),
	}
}

func (h *EarningsHandler) Report(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}
	vendor, err := h.Vendors.RequireApproved(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	report, err := h.Svc.Report(c.Request().Context(), vendor.ID, earningsFilter(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *EarningsHandler) ExportCSV(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}
	vendor, err := h.Vendors.RequireApproved(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	rows, err := h.Svc.ExportRows(c.Request().Context(), vendor.ID, earningsFilter(c))
	if err != nil {
		return httpError(err)
	}

	filename := fmt.Sprintf("sales_report_%s_%s.csv", vendor.Slug, time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"Order ID", "Order Number", "Product", "Quantity", "Unit Price", "Total", "Delivered At"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.OrderID), 10),
			row.OrderNumber,
			row.ProductName,
			strconv.FormatUint(uint64(row.Quantity), 10),
			strconv.FormatInt(row.UnitPrice, 10),
			strconv.FormatInt(row.LineTotal, 10),
			row.DeliveredAt.Format("2006-01-02 15:04"),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (h *EarningsHandler) ExportXLSX(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}
	vendor, err := h.Vendors.RequireApproved(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	rows, err := h.Svc.ExportRows(c.Request().Context(), vendor.ID, earningsFilter(c))
	if err != nil {
		return httpError(err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Earnings")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	headerRow := sheet.AddRow()
	for _, head := range []string{"Order ID", "Order Number", "Product", "Category", "Quantity", "Unit Price", "Total", "Delivered At"} {
		headerRow.AddCell().SetValue(head)
	}
	for _, row := range rows {
		r := sheet.AddRow()
		r.AddCell().SetValue(int(row.OrderID))
		r.AddCell().SetValue(row.OrderNumber)
		r.AddCell().SetValue(row.ProductName)
		r.AddCell().SetValue(row.CategoryName)
		r.AddCell().SetValue(int(row.Quantity))
		r.AddCell().SetValue(row.UnitPrice)
		r.AddCell().SetValue(row.LineTotal)
		r.AddCell().SetValue(row.DeliveredAt.Format("2006-01-02 15:04"))
	}

	filename := fmt.Sprintf("sales_report_%s_%s.xlsx", vendor.Slug, time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return file.Write(c.Response())
}
