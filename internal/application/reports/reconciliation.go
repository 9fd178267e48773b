// Package reports contiene los reportes de conciliación de inventario:
// cómputos de solo lectura que comparan cantidades contadas contra el stock
// teórico del libro, contra otro conteo, o contra el catálogo completo.
package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/application/dto"
	"github.com/Chirlanio/inmystock/internal/domain"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

// ReconciliationUseCase motor de reportes de conciliación. No muta nada.
type ReconciliationUseCase struct {
	countRepo   repository.StockCountRepository
	productRepo repository.ProductRepository
	levelRepo   repository.InventoryLevelRepository
}

// NewReconciliationUseCase construye el caso de uso.
func NewReconciliationUseCase(
	countRepo repository.StockCountRepository,
	productRepo repository.ProductRepository,
	levelRepo repository.InventoryLevelRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{countRepo: countRepo, productRepo: productRepo, levelRepo: levelRepo}
}

// StockVsCountFilter filtros del reporte stock vs. conteo.
type StockVsCountFilter struct {
	CountID           string
	AreaID            *string
	From              *time.Time
	To                *time.Time
	OnlyDiscrepancies bool
}

// StockVsCount compara los ítems de conteos completados contra el stock
// teórico del agregado: por área cuando el filtro la indica, total de áreas
// en caso contrario. difference = contado - teórico.
func (uc *ReconciliationUseCase) StockVsCount(ctx context.Context, companyID string, f StockVsCountFilter) ([]dto.StockVsCountRow, error) {
	items, err := uc.countRepo.ListItemsForReport(ctx, companyID, repository.CountItemFilter{
		CountID: f.CountID,
		AreaID:  f.AreaID,
		From:    f.From,
		To:      f.To,
	})
	if err != nil {
		return nil, err
	}

	rows := make([]dto.StockVsCountRow, 0, len(items))
	for _, item := range items {
		theoretical, err := uc.levelRepo.GetByProductCode(ctx, companyID, item.ProductCode, f.AreaID)
		if err != nil {
			return nil, err
		}
		diff := item.QuantityCounted.Sub(theoretical)
		row := dto.StockVsCountRow{
			ProductCode:    item.ProductCode,
			ProductName:    item.ProductName,
			Counted:        item.QuantityCounted,
			Theoretical:    theoretical,
			Difference:     diff,
			PercentageDiff: percentageDiff(diff, theoretical, item.QuantityCounted),
			HasDiscrepancy: !diff.IsZero(),
		}
		if f.OnlyDiscrepancies && !row.HasDiscrepancy {
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ProductCode < rows[j].ProductCode })
	return rows, nil
}

// CountVsCount cruza dos conteos por product_code con un full outer join:
// los códigos presentes en un solo lado valen 0 en el otro. count1 es la
// línea base, así difference = qty2 - qty1; comparar (B,A) niega las
// diferencias e intercambia los buckets de exclusivos.
func (uc *ReconciliationUseCase) CountVsCount(ctx context.Context, companyID, count1ID, count2ID string, onlyDiscrepancies bool) (*dto.CountVsCountResult, error) {
	count1, err := uc.mustGetCount(ctx, companyID, count1ID)
	if err != nil {
		return nil, err
	}
	count2, err := uc.mustGetCount(ctx, companyID, count2ID)
	if err != nil {
		return nil, err
	}

	items1, err := uc.countRepo.ListItems(ctx, count1.ID)
	if err != nil {
		return nil, err
	}
	items2, err := uc.countRepo.ListItems(ctx, count2.ID)
	if err != nil {
		return nil, err
	}

	byCode1 := indexByCode(items1)
	byCode2 := indexByCode(items2)

	codes := make([]string, 0, len(byCode1)+len(byCode2))
	seen := make(map[string]bool)
	for _, it := range items1 {
		if !seen[it.ProductCode] {
			seen[it.ProductCode] = true
			codes = append(codes, it.ProductCode)
		}
	}
	for _, it := range items2 {
		if !seen[it.ProductCode] {
			seen[it.ProductCode] = true
			codes = append(codes, it.ProductCode)
		}
	}
	sort.Strings(codes)

	result := &dto.CountVsCountResult{}
	for _, code := range codes {
		it1, in1 := byCode1[code]
		it2, in2 := byCode2[code]

		qty1, qty2 := decimal.Zero, decimal.Zero
		name := ""
		if in1 {
			qty1 = it1.QuantityCounted
			name = it1.ProductName
		}
		if in2 {
			qty2 = it2.QuantityCounted
			if name == "" {
				name = it2.ProductName
			}
		}
		if !in1 {
			result.OnlyInCount2 = append(result.OnlyInCount2, code)
		}
		if !in2 {
			result.OnlyInCount1 = append(result.OnlyInCount1, code)
		}

		diff := qty2.Sub(qty1)
		row := dto.CountVsCountRow{
			ProductCode:    code,
			ProductName:    name,
			Qty1:           qty1,
			Qty2:           qty2,
			Difference:     diff,
			PercentageDiff: percentageDiff(diff, qty1, qty2),
			OnlyInCount1:   !in2,
			OnlyInCount2:   !in1,
			HasDiscrepancy: !diff.IsZero(),
		}
		if onlyDiscrepancies && !row.HasDiscrepancy {
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// MissingProducts devuelve los productos activos del catálogo cuyos códigos
// jamás aparecen en los ítems del conteo (diferencia de conjuntos por código,
// no por id).
func (uc *ReconciliationUseCase) MissingProducts(ctx context.Context, companyID, countID string) ([]dto.MissingProductRow, error) {
	if _, err := uc.mustGetCount(ctx, companyID, countID); err != nil {
		return nil, err
	}
	items, err := uc.countRepo.ListItems(ctx, countID)
	if err != nil {
		return nil, err
	}
	counted := make(map[string]bool, len(items))
	for _, it := range items {
		counted[it.ProductCode] = true
	}

	products, err := uc.productRepo.ListActive(ctx, companyID)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.MissingProductRow, 0)
	for _, p := range products {
		if counted[p.Code] {
			continue
		}
		rows = append(rows, dto.MissingProductRow{
			ProductID: p.ID,
			Code:      p.Code,
			Barcode:   p.Barcode,
			Name:      p.Name,
			Unit:      p.Unit,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	return rows, nil
}

func (uc *ReconciliationUseCase) mustGetCount(ctx context.Context, companyID, countID string) (*entity.StockCount, error) {
	count, err := uc.countRepo.GetByID(ctx, companyID, countID)
	if err != nil {
		return nil, err
	}
	if count == nil {
		return nil, domain.ErrNotFound
	}
	return count, nil
}

func indexByCode(items []*entity.StockCountItem) map[string]*entity.StockCountItem {
	m := make(map[string]*entity.StockCountItem, len(items))
	for _, it := range items {
		m[it.ProductCode] = it
	}
	return m
}

var hundred = decimal.NewFromInt(100)

// percentageDiff: teórico > 0 -> diff/teórico*100; si no, 100 si hubo conteo, 0 si no.
func percentageDiff(diff, theoretical, counted decimal.Decimal) decimal.Decimal {
	if theoretical.GreaterThan(decimal.Zero) {
		return diff.Div(theoretical).Mul(hundred)
	}
	if counted.GreaterThan(decimal.Zero) {
		return hundred
	}
	return decimal.Zero
}
