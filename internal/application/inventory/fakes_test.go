package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Chirlanio/inmystock/internal/domain/entity"
	dominv "github.com/Chirlanio/inmystock/internal/domain/inventory"
	"github.com/Chirlanio/inmystock/internal/domain/repository"
)

// Dobles en memoria de los repositorios, con la misma semántica que las
// implementaciones de postgres: borrado lógico, contador por (empresa, día)
// y agregados por (empresa, producto, área).

func areaKey(areaID *string) string {
	if areaID == nil {
		return "∅"
	}
	return *areaID
}

// ── movimientos ──────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	movements map[string]*entity.Movement
	counters  map[string]int
}

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{
		movements: make(map[string]*entity.Movement),
		counters:  make(map[string]int),
	}
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	cp := *m
	r.movements[m.ID] = &cp
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, companyID, id string) (*entity.Movement, error) {
	m, ok := r.movements[id]
	if !ok || m.CompanyID != companyID || m.DeletedAt != nil {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMovementRepo) GetPairedLeg(_ context.Context, companyID string, m *entity.Movement) (*entity.Movement, error) {
	if m.Type == entity.MovementTypeTransferIn {
		pair, ok := r.movements[m.ReferenceID]
		if !ok || pair.CompanyID != companyID {
			return nil, nil
		}
		cp := *pair
		return &cp, nil
	}
	for _, other := range r.movements {
		if other.CompanyID == companyID &&
			other.Type == entity.MovementTypeTransferIn &&
			other.ReferenceType == entity.ReferenceTypeMovement &&
			other.ReferenceID == m.ID {
			cp := *other
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(_ context.Context, companyID string, _ repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.CompanyID == companyID && m.DeletedAt == nil {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *fakeMovementRepo) SoftDelete(_ context.Context, companyID, id string, now time.Time) error {
	m, ok := r.movements[id]
	if !ok || m.CompanyID != companyID {
		return nil
	}
	m.DeletedAt = &now
	return nil
}

func (r *fakeMovementRepo) NextSequence(_ context.Context, companyID string, day time.Time) (int, error) {
	key := companyID + "|" + day.Format("2006-01-02")
	r.counters[key]++
	return r.counters[key], nil
}

func (r *fakeMovementRepo) SignedSum(_ context.Context, companyID, productID string, areaID *string) (decimal.Decimal, *time.Time, error) {
	sum := decimal.Zero
	var lastAt *time.Time
	for _, m := range r.movements {
		if m.CompanyID != companyID || m.ProductID != productID || m.DeletedAt != nil {
			continue
		}
		target := dominv.TargetArea(m)
		if areaKey(target) != areaKey(areaID) {
			continue
		}
		contrib := dominv.Contribution(m, areaID)
		sum = sum.Add(contrib)
		if lastAt == nil || m.MovementDate.After(*lastAt) {
			at := m.MovementDate
			lastAt = &at
		}
	}
	return sum, lastAt, nil
}

// ── niveles ──────────────────────────────────────────────────────────────────

type fakeLevelRepo struct {
	levels map[string]*entity.InventoryLevel
}

func newFakeLevelRepo() *fakeLevelRepo {
	return &fakeLevelRepo{levels: make(map[string]*entity.InventoryLevel)}
}

func (r *fakeLevelRepo) key(companyID, productID string, areaID *string) string {
	return companyID + "|" + productID + "|" + areaKey(areaID)
}

func (r *fakeLevelRepo) Get(_ context.Context, companyID, productID string, areaID *string) (*entity.InventoryLevel, error) {
	l, ok := r.levels[r.key(companyID, productID, areaID)]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLevelRepo) GetForUpdate(_ context.Context, companyID, productID string, areaID *string) (*entity.InventoryLevel, error) {
	if l, ok := r.levels[r.key(companyID, productID, areaID)]; ok {
		cp := *l
		return &cp, nil
	}
	return &entity.InventoryLevel{
		CompanyID: companyID,
		ProductID: productID,
		AreaID:    areaID,
	}, nil
}

func (r *fakeLevelRepo) Upsert(_ context.Context, level *entity.InventoryLevel) error {
	cp := *level
	r.levels[r.key(level.CompanyID, level.ProductID, level.AreaID)] = &cp
	return nil
}

func (r *fakeLevelRepo) AddDelta(_ context.Context, companyID, productID string, areaID *string, delta decimal.Decimal, at time.Time) error {
	key := r.key(companyID, productID, areaID)
	l, ok := r.levels[key]
	if !ok {
		l = &entity.InventoryLevel{CompanyID: companyID, ProductID: productID, AreaID: areaID}
		r.levels[key] = l
	}
	l.Quantity = l.Quantity.Add(delta)
	l.LastMovementAt = &at
	l.Recalculate()
	return nil
}

func (r *fakeLevelRepo) Rebuild(_ context.Context, companyID, productID string, areaID *string, quantity decimal.Decimal, lastMovementAt *time.Time) error {
	key := r.key(companyID, productID, areaID)
	l, ok := r.levels[key]
	if !ok {
		l = &entity.InventoryLevel{CompanyID: companyID, ProductID: productID, AreaID: areaID}
		r.levels[key] = l
	}
	l.Quantity = quantity
	l.LastMovementAt = lastMovementAt
	l.Recalculate()
	return nil
}

func (r *fakeLevelRepo) ListByProduct(_ context.Context, companyID, productID string) ([]*entity.InventoryLevel, error) {
	var out []*entity.InventoryLevel
	for _, l := range r.levels {
		if l.CompanyID == companyID && l.ProductID == productID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeLevelRepo) ListByArea(_ context.Context, companyID string, areaID *string, _, _ int) ([]*entity.InventoryLevel, error) {
	var out []*entity.InventoryLevel
	for _, l := range r.levels {
		if l.CompanyID == companyID && areaKey(l.AreaID) == areaKey(areaID) {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeLevelRepo) TotalByProduct(_ context.Context, companyID, productID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range r.levels {
		if l.CompanyID == companyID && l.ProductID == productID {
			total = total.Add(l.Quantity)
		}
	}
	return total, nil
}

func (r *fakeLevelRepo) GetByProductCode(_ context.Context, _, _ string, _ *string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// ── catálogos ────────────────────────────────────────────────────────────────

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

type fakeAreaRepo struct {
	areas map[string]*entity.Area
}

func newFakeAreaRepo(areas ...*entity.Area) *fakeAreaRepo {
	r := &fakeAreaRepo{areas: make(map[string]*entity.Area)}
	for _, a := range areas {
		r.areas[a.ID] = a
	}
	return r
}

func (r *fakeAreaRepo) Create(_ context.Context, a *entity.Area) error {
	r.areas[a.ID] = a
	return nil
}

func (r *fakeAreaRepo) GetByID(_ context.Context, id string) (*entity.Area, error) {
	return r.areas[id], nil
}

func (r *fakeAreaRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Area, error) {
	var out []*entity.Area
	for _, a := range r.areas {
		if a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func movementFilter() repository.MovementFilter { return repository.MovementFilter{} }

// ── tx ───────────────────────────────────────────────────────────────────────

// fakeTxRunner ejecuta la función directamente sobre los dobles; sin BD no hay
// transacción que abrir, pero el contrato (mismos repos dentro del bloque) se
// conserva.
type fakeTxRunner struct {
	movRepo   *fakeMovementRepo
	levelRepo *fakeLevelRepo
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	levelRepo repository.InventoryLevelRepository,
) error) error {
	return fn(t.movRepo, t.levelRepo)
}
