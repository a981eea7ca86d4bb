package service

import (
	"cmp"
	"context"
	"io"
	"slices"

	"Foodgram/dao"
	"Foodgram/pkg/errs"
	"Foodgram/pkg/report"
	"Foodgram/types"
)

var _ IShoppingService = (*ShoppingService)(nil)

type IShoppingService interface {
	// Aggregate 汇总购物车：按 (名称, 单位) 分组求和，按名称字节序升序，同名按单位
	Aggregate(ctx context.Context, userID uint64) ([]types.ShoppingItem, error)
	// Download 渲染清单，返回 Content-Type 与文件名
	Download(ctx context.Context, userID uint64, format string, w io.Writer) (contentType, filename string, err error)
}

type ShoppingService struct {
	ShoppingCartDAO *dao.ShoppingCartDAO
}

func (s *ShoppingService) Aggregate(ctx context.Context, userID uint64) ([]types.ShoppingItem, error) {
	rows, err := s.ShoppingCartDAO.SumIngredients(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]types.ShoppingItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, types.ShoppingItem{
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			TotalAmount:     row.TotalAmount,
		})
	}
	slices.SortStableFunc(items, func(a, b types.ShoppingItem) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.MeasurementUnit, b.MeasurementUnit)
	})
	return items, nil
}

func (s *ShoppingService) Download(ctx context.Context, userID uint64, format string, w io.Writer) (string, string, error) {
	if format != "" && format != report.FormatText && format != report.FormatPDF {
		return "", "", errs.Validation("format", "unsupported format %q", format)
	}

	items, err := s.Aggregate(ctx, userID)
	if err != nil {
		return "", "", err
	}
	lines := make([]report.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, report.Line{
			Name:   item.Name,
			Unit:   item.MeasurementUnit,
			Amount: item.TotalAmount,
		})
	}
	return report.Render(w, format, lines)
}
