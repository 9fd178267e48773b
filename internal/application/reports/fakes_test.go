package reports_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/domain/entity"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

// Dobles de solo lectura: los reportes no mutan nada, así que los fakes solo
// implementan de verdad las consultas que los reportes usan.

type fakeCountRepo struct {
	counts map[string]*entity.StockCount
	items  map[string][]*entity.StockCountItem // por ID de conteo
}

func newFakeCountRepo(counts ...*entity.StockCount) *fakeCountRepo {
	r := &fakeCountRepo{
		counts: make(map[string]*entity.StockCount),
		items:  make(map[string][]*entity.StockCountItem),
	}
	for _, c := range counts {
		r.counts[c.ID] = c
	}
	return r
}

func (r *fakeCountRepo) addItem(countID, code, name string, qty int64) {
	r.items[countID] = append(r.items[countID], &entity.StockCountItem{
		StockCountID:    countID,
		ProductCode:     code,
		ProductName:     name,
		QuantityCounted: decimal.NewFromInt(qty),
	})
}

func (r *fakeCountRepo) GetByID(_ context.Context, companyID, id string) (*entity.StockCount, error) {
	c, ok := r.counts[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCountRepo) ListItems(_ context.Context, countID string) ([]*entity.StockCountItem, error) {
	return r.items[countID], nil
}

func (r *fakeCountRepo) ListItemsForReport(_ context.Context, companyID string, f repository.CountItemFilter) ([]*entity.StockCountItem, error) {
	var out []*entity.StockCountItem
	for countID, items := range r.items {
		count := r.counts[countID]
		if count == nil || count.CompanyID != companyID || count.Status != entity.CountStatusCompleted {
			continue
		}
		if f.CountID != "" && countID != f.CountID {
			continue
		}
		out = append(out, items...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductCode < out[j].ProductCode })
	return out, nil
}

func (r *fakeCountRepo) Create(context.Context, *entity.StockCount) error { return nil }
func (r *fakeCountRepo) Update(context.Context, *entity.StockCount) error { return nil }
func (r *fakeCountRepo) GetByNumber(context.Context, string, *string, int) (*entity.StockCount, error) {
	return nil, nil
}
func (r *fakeCountRepo) ListByAudit(context.Context, string) ([]*entity.StockCount, error) {
	return nil, nil
}
func (r *fakeCountRepo) Delete(context.Context, string, string) error    { return nil }
func (r *fakeCountRepo) CountItems(context.Context, string) (int, error) { return 0, nil }
func (r *fakeCountRepo) ReplaceItems(context.Context, string, []*entity.StockCountItem) error {
	return nil
}
func (r *fakeCountRepo) GetItemForUpdate(context.Context, string, string) (*entity.StockCountItem, error) {
	return nil, nil
}
func (r *fakeCountRepo) CreateItem(context.Context, *entity.StockCountItem) error { return nil }
func (r *fakeCountRepo) AddItemQuantity(context.Context, string, decimal.Decimal, time.Time) error {
	return nil
}

type fakeProductRepo struct {
	products []*entity.Product
}

func (r *fakeProductRepo) ListActive(_ context.Context, companyID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Create(context.Context, *entity.Product) error { return nil }
func (r *fakeProductRepo) Update(context.Context, *entity.Product) error { return nil }
func (r *fakeProductRepo) GetByID(context.Context, string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) GetByCode(context.Context, string, string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) GetByBarcode(context.Context, string, string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) ListByCompany(context.Context, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

// fakeLevelRepo responde el stock teórico por código: clave "code" para el
// total entre áreas, "code|area" para una área puntual.
type fakeLevelRepo struct {
	byCode map[string]decimal.Decimal
}

func (r *fakeLevelRepo) GetByProductCode(_ context.Context, _, productCode string, areaID *string) (decimal.Decimal, error) {
	key := productCode
	if areaID != nil {
		key = productCode + "|" + *areaID
	}
	return r.byCode[key], nil
}

func (r *fakeLevelRepo) Get(context.Context, string, string, *string) (*entity.InventoryLevel, error) {
	return nil, nil
}
func (r *fakeLevelRepo) GetForUpdate(context.Context, string, string, *string) (*entity.InventoryLevel, error) {
	return nil, nil
}
func (r *fakeLevelRepo) Upsert(context.Context, *entity.InventoryLevel) error { return nil }
func (r *fakeLevelRepo) AddDelta(context.Context, string, string, *string, decimal.Decimal, time.Time) error {
	return nil
}
func (r *fakeLevelRepo) Rebuild(context.Context, string, string, *string, decimal.Decimal, *time.Time) error {
	return nil
}
func (r *fakeLevelRepo) ListByProduct(context.Context, string, string) ([]*entity.InventoryLevel, error) {
	return nil, nil
}
func (r *fakeLevelRepo) ListByArea(context.Context, string, *string, int, int) ([]*entity.InventoryLevel, error) {
	return nil, nil
}
func (r *fakeLevelRepo) TotalByProduct(context.Context, string, string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
