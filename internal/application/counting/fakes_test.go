package counting_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	appcounting "github.com/Chirlanio/inmystock/internal/application/counting"
	"github.com/Chirlanio/inmystock/internal/domain"
	"github.com/Chirlanio/inmystock/internal/domain/entity"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
	"github.com/Chirlanio/inmystock/pkg/logger"
)

// Dobles en memoria para los casos de uso de conteo. Replican la semántica de
// las implementaciones de postgres: unicidad de count_number por (auditoría,
// área) y acumulación sobre ítems existentes.

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func areaKey(areaID *string) string {
	if areaID == nil {
		return "∅"
	}
	return *areaID
}

// ── auditorías ───────────────────────────────────────────────────────────────

type fakeAuditRepo struct {
	audits map[string]*entity.StockAudit
}

func newFakeAuditRepo(audits ...*entity.StockAudit) *fakeAuditRepo {
	r := &fakeAuditRepo{audits: make(map[string]*entity.StockAudit)}
	for _, a := range audits {
		r.audits[a.ID] = a
	}
	return r
}

func (r *fakeAuditRepo) Create(_ context.Context, a *entity.StockAudit) error {
	cp := *a
	r.audits[a.ID] = &cp
	return nil
}

func (r *fakeAuditRepo) Update(_ context.Context, a *entity.StockAudit) error {
	cp := *a
	r.audits[a.ID] = &cp
	return nil
}

func (r *fakeAuditRepo) GetByID(_ context.Context, companyID, id string) (*entity.StockAudit, error) {
	a, ok := r.audits[id]
	if !ok || a.CompanyID != companyID {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAuditRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.StockAudit, error) {
	var out []*entity.StockAudit
	for _, a := range r.audits {
		if a.CompanyID == companyID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) Delete(_ context.Context, companyID, id string) error {
	if a, ok := r.audits[id]; ok && a.CompanyID == companyID {
		delete(r.audits, id)
	}
	return nil
}

// ── conteos e ítems ──────────────────────────────────────────────────────────

type fakeCountRepo struct {
	counts map[string]*entity.StockCount
	items  map[string]*entity.StockCountItem // por ID de ítem
}

func newFakeCountRepo(counts ...*entity.StockCount) *fakeCountRepo {
	r := &fakeCountRepo{
		counts: make(map[string]*entity.StockCount),
		items:  make(map[string]*entity.StockCountItem),
	}
	for _, c := range counts {
		r.counts[c.ID] = c
	}
	return r
}

func (r *fakeCountRepo) Create(_ context.Context, c *entity.StockCount) error {
	cp := *c
	r.counts[c.ID] = &cp
	return nil
}

func (r *fakeCountRepo) Update(_ context.Context, c *entity.StockCount) error {
	cp := *c
	r.counts[c.ID] = &cp
	return nil
}

func (r *fakeCountRepo) GetByID(_ context.Context, companyID, id string) (*entity.StockCount, error) {
	c, ok := r.counts[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCountRepo) GetByNumber(_ context.Context, auditID string, areaID *string, countNumber int) (*entity.StockCount, error) {
	for _, c := range r.counts {
		if c.AuditID == auditID && areaKey(c.AreaID) == areaKey(areaID) && c.CountNumber == countNumber {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCountRepo) ListByAudit(_ context.Context, auditID string) ([]*entity.StockCount, error) {
	var out []*entity.StockCount
	for _, c := range r.counts {
		if c.AuditID == auditID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CountNumber < out[j].CountNumber })
	return out, nil
}

func (r *fakeCountRepo) Delete(_ context.Context, companyID, id string) error {
	if c, ok := r.counts[id]; ok && c.CompanyID == companyID {
		delete(r.counts, id)
	}
	return nil
}

func (r *fakeCountRepo) ListItems(_ context.Context, countID string) ([]*entity.StockCountItem, error) {
	var out []*entity.StockCountItem
	for _, it := range r.items {
		if it.StockCountID == countID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductCode < out[j].ProductCode })
	return out, nil
}

func (r *fakeCountRepo) CountItems(_ context.Context, countID string) (int, error) {
	n := 0
	for _, it := range r.items {
		if it.StockCountID == countID {
			n++
		}
	}
	return n, nil
}

func (r *fakeCountRepo) ReplaceItems(_ context.Context, countID string, items []*entity.StockCountItem) error {
	for id, it := range r.items {
		if it.StockCountID == countID {
			delete(r.items, id)
		}
	}
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		// El índice único (stock_count_id, product_code) rechaza la fila
		// repetida; las anteriores ya quedaron escritas, como en la BD antes
		// del rollback.
		if seen[it.ProductCode] {
			return domain.ErrDuplicate
		}
		seen[it.ProductCode] = true
		cp := *it
		r.items[it.ID] = &cp
	}
	return nil
}

func (r *fakeCountRepo) GetItemForUpdate(_ context.Context, countID, productCode string) (*entity.StockCountItem, error) {
	for _, it := range r.items {
		if it.StockCountID == countID && it.ProductCode == productCode {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCountRepo) CreateItem(_ context.Context, item *entity.StockCountItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeCountRepo) AddItemQuantity(_ context.Context, itemID string, qty decimal.Decimal, now time.Time) error {
	it := r.items[itemID]
	it.QuantityCounted = it.QuantityCounted.Add(qty)
	it.UpdatedAt = now
	return nil
}

func (r *fakeCountRepo) ListItemsForReport(_ context.Context, companyID string, f repository.CountItemFilter) ([]*entity.StockCountItem, error) {
	var out []*entity.StockCountItem
	for _, it := range r.items {
		count := r.counts[it.StockCountID]
		if count == nil || count.CompanyID != companyID || count.Status != entity.CountStatusCompleted {
			continue
		}
		if f.CountID != "" && count.ID != f.CountID {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductCode < out[j].ProductCode })
	return out, nil
}

// ── importaciones ────────────────────────────────────────────────────────────

type fakeImportRepo struct {
	imports map[string]*entity.StockCountImport
}

func newFakeImportRepo() *fakeImportRepo {
	return &fakeImportRepo{imports: make(map[string]*entity.StockCountImport)}
}

func (r *fakeImportRepo) Create(_ context.Context, imp *entity.StockCountImport) error {
	cp := *imp
	r.imports[imp.ID] = &cp
	return nil
}

func (r *fakeImportRepo) Update(_ context.Context, imp *entity.StockCountImport) error {
	cp := *imp
	r.imports[imp.ID] = &cp
	return nil
}

func (r *fakeImportRepo) GetByID(_ context.Context, companyID, id string) (*entity.StockCountImport, error) {
	imp, ok := r.imports[id]
	if !ok || imp.CompanyID != companyID {
		return nil, nil
	}
	cp := *imp
	return &cp, nil
}

func (r *fakeImportRepo) ListByCount(_ context.Context, countID string) ([]*entity.StockCountImport, error) {
	var out []*entity.StockCountImport
	for _, imp := range r.imports {
		if imp.StockCountID == countID {
			cp := *imp
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── catálogo de productos (solo lo que usa la importación) ───────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByCode(_ context.Context, companyID, code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByBarcode(_ context.Context, companyID, barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
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

// ── tx y almacenamiento ──────────────────────────────────────────────────────

type fakeImportTxRunner struct {
	countRepo   *fakeCountRepo
	importRepo  *fakeImportRepo
	productRepo *fakeProductRepo
}

func (t *fakeImportTxRunner) RunImport(ctx context.Context, fn func(
	countRepo repository.StockCountRepository,
	importRepo repository.StockCountImportRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(t.countRepo, t.importRepo, t.productRepo)
}

// fakeItemsTxRunner simula la transacción del reemplazo de ítems: toma una
// instantánea antes de ejecutar y la restaura si fn falla, igual que el
// rollback de la BD.
type fakeItemsTxRunner struct {
	countRepo *fakeCountRepo
}

func (t *fakeItemsTxRunner) RunItems(_ context.Context, fn func(
	countRepo repository.StockCountRepository,
) error) error {
	snapshot := make(map[string]*entity.StockCountItem, len(t.countRepo.items))
	for id, it := range t.countRepo.items {
		cp := *it
		snapshot[id] = &cp
	}
	if err := fn(t.countRepo); err != nil {
		t.countRepo.items = snapshot
		return err
	}
	return nil
}

type fakeFileStore struct {
	saved []string
}

func (s *fakeFileStore) Save(_ context.Context, companyID, fileName string, _ []byte) (string, error) {
	path := "imports/" + companyID + "/" + fileName
	s.saved = append(s.saved, path)
	return path, nil
}

var _ appcounting.ImportTxRunner = (*fakeImportTxRunner)(nil)
var _ appcounting.ItemsTxRunner = (*fakeItemsTxRunner)(nil)
var _ appcounting.FileStore = (*fakeFileStore)(nil)
