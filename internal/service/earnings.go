package service

import (
	"context"

	"github.com/mkrishnan-dev/quickbasket/internal/repo"
)

type EarningsService struct {
	Orders *repo.OrderRepo
}

type EarningsFilter struct {
	DateFrom   string // YYYY-MM-DD
	DateTo     string
	ProductID  uint
	CategoryID uint
}

type EarningsReport struct {
	Rows              []repo.EarningsRow   `json:"rows"`
	TotalRevenue      int64                `json:"total_revenue"`
	TotalOrders       int                  `json:"total_orders"`
	TotalItemsSold    int64                `json:"total_items_sold"`
	RevenueByProduct  []repo.RevenueBucket `json:"revenue_by_product"`
	RevenueByCategory []repo.RevenueBucket `json:"revenue_by_category"`
}

func (f EarningsFilter) toRepo() (repo.EarningsFilter, error) {
	var out repo.EarningsFilter
	var err error
	if out.DateFrom, err = parseDay(f.DateFrom); err != nil {
		return out, err
	}
	if out.DateTo, err = parseDay(f.DateTo); err != nil {
		return out, err
	}
	out.ProductID = f.ProductID
	out.CategoryID = f.CategoryID
	return out, nil
}

// Report aggregates delivered order items of exactly this vendor: revenue is
// Σ quantity × unit price over the filtered row set, nothing else.
func (s *EarningsService) Report(ctx context.Context, vendorID uint, f EarningsFilter) (*EarningsReport, error) {
	rf, err := f.toRepo()
	if err != nil {
		return nil, err
	}

	rows, err := s.Orders.EarningsRows(ctx, vendorID, rf)
	if err != nil {
		return nil, err
	}

	report := &EarningsReport{Rows: rows, TotalOrders: len(rows)}
	for _, row := range rows {
		report.TotalRevenue += row.LineTotal
		report.TotalItemsSold += int64(row.Quantity)
	}

	if report.RevenueByProduct, err = s.Orders.RevenueByProduct(ctx, vendorID, rf); err != nil {
		return nil, err
	}
	if report.RevenueByCategory, err = s.Orders.RevenueByCategory(ctx, vendorID, rf); err != nil {
		return nil, err
	}
	return report, nil
}

// ExportRows returns the same row set the report renders; export formats add
// no business logic on top.
func (s *EarningsService) ExportRows(ctx context.Context, vendorID uint, f EarningsFilter) ([]repo.EarningsRow, error) {
	rf, err := f.toRepo()
	if err != nil {
		return nil, err
	}
	return s.Orders.EarningsRows(ctx, vendorID, rf)
}
