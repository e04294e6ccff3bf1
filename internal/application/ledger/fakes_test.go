package ledger_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: mismo contrato que los adaptadores de PostgreSQL, incluida
// la semántica transaccional del TxRunner (commit visible, error descarta todo).
// ──────────────────────────────────────────────────────────────────────────────

func stockKey(userID, productID, locationID string) string {
	return userID + "|" + productID + "|" + locationID
}

// fakeState estado compartido entre repos fake; las structs se guardan por valor
// para que clonar sea una copia profunda barata.
type fakeState struct {
	stocks    map[string]entity.Stock
	movements []entity.InventoryMovement
	locations map[string]entity.Location
	products  map[string]entity.Product
	nextID    int
}

func newFakeState() *fakeState {
	return &fakeState{
		stocks:    make(map[string]entity.Stock),
		locations: make(map[string]entity.Location),
		products:  make(map[string]entity.Product),
	}
}

func (s *fakeState) genID() string {
	s.nextID++
	return fmt.Sprintf("id-%03d", s.nextID)
}

func (s *fakeState) clone() *fakeState {
	c := &fakeState{
		stocks:    make(map[string]entity.Stock, len(s.stocks)),
		movements: append([]entity.InventoryMovement(nil), s.movements...),
		locations: s.locations,
		products:  s.products,
		nextID:    s.nextID,
	}
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	return c
}

// seed helpers

func (s *fakeState) addLocation(id, code string, active, allowNegative bool) {
	s.locations[id] = entity.Location{
		ID: id, UserID: testUserID, Code: code, Name: "Ubicación " + code,
		IsActive: active, AllowNegativeStock: allowNegative,
	}
}

func (s *fakeState) addProduct(id, sku string) {
	s.products[id] = entity.Product{
		ID: id, UserID: testUserID, SKU: sku, Name: "Producto " + sku,
	}
}

func (s *fakeState) setStock(productID, locationID string, quantity, reserved int64) {
	key := stockKey(testUserID, productID, locationID)
	s.stocks[key] = entity.Stock{
		ID: s.genID(), UserID: testUserID,
		ProductID: productID, LocationID: locationID,
		Quantity: quantity, ReservedQuantity: reserved,
	}
}

func (s *fakeState) getStock(productID, locationID string) (entity.Stock, bool) {
	st, ok := s.stocks[stockKey(testUserID, productID, locationID)]
	return st, ok
}

// ── fakeStockRepo ─────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	state *fakeState
}

var _ repository.StockRepository = (*fakeStockRepo)(nil)

func (r *fakeStockRepo) Get(userID, productID, locationID string) (*entity.Stock, error) {
	if s, ok := r.state.stocks[stockKey(userID, productID, locationID)]; ok {
		cp := s
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeStockRepo) GetForUpdate(userID, productID, locationID string) (*entity.Stock, error) {
	return r.Get(userID, productID, locationID)
}

func (r *fakeStockRepo) EnsureRow(userID, productID, locationID string) error {
	key := stockKey(userID, productID, locationID)
	if _, ok := r.state.stocks[key]; !ok {
		r.state.stocks[key] = entity.Stock{
			ID: r.state.genID(), UserID: userID,
			ProductID: productID, LocationID: locationID,
		}
	}
	return nil
}

func (r *fakeStockRepo) Upsert(stock *entity.Stock) error {
	if stock.ID == "" {
		stock.ID = r.state.genID()
	}
	r.state.stocks[stockKey(stock.UserID, stock.ProductID, stock.LocationID)] = *stock
	return nil
}

func (r *fakeStockRepo) withDetails(s entity.Stock) *entity.StockWithDetails {
	d := &entity.StockWithDetails{Stock: s}
	if p, ok := r.state.products[s.ProductID]; ok {
		d.ProductSKU = p.SKU
		d.ProductName = p.Name
	}
	if l, ok := r.state.locations[s.LocationID]; ok {
		d.LocationCode = l.Code
		d.LocationName = l.Name
	}
	return d
}

func (r *fakeStockRepo) ListWithDetails(userID string, filters repository.StockFilters) ([]*entity.StockWithDetails, int, error) {
	var all []*entity.StockWithDetails
	for _, s := range r.state.stocks {
		if s.UserID != userID {
			continue
		}
		if filters.ProductID != "" && s.ProductID != filters.ProductID {
			continue
		}
		if filters.LocationID != "" && s.LocationID != filters.LocationID {
			continue
		}
		all = append(all, r.withDetails(s))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].ProductName != all[j].ProductName {
			return all[i].ProductName < all[j].ProductName
		}
		return all[i].LocationName < all[j].LocationName
	})
	total := len(all)
	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * filters.PageSize
		if start > total {
			start = total
		}
		end := start + filters.PageSize
		if end > total {
			end = total
		}
		all = all[start:end]
	}
	return all, total, nil
}

func (r *fakeStockRepo) ListByProduct(userID, productID string) ([]*entity.StockWithDetails, error) {
	rows, _, err := r.ListWithDetails(userID, repository.StockFilters{ProductID: productID})
	return rows, err
}

func (r *fakeStockRepo) CountByLocation(userID, locationID string) (int, error) {
	count := 0
	for _, s := range r.state.stocks {
		if s.UserID == userID && s.LocationID == locationID {
			count++
		}
	}
	return count, nil
}

func (r *fakeStockRepo) CountPositiveByLocation(userID, locationID string) (int, error) {
	count := 0
	for _, s := range r.state.stocks {
		if s.UserID == userID && s.LocationID == locationID && s.Quantity > 0 {
			count++
		}
	}
	return count, nil
}

// ── fakeMovementRepo ──────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	state *fakeState
	// failCreate inyecta un fallo en el asiento del journal para probar que la
	// transacción descarta también el cambio de stock.
	failCreate error
}

var _ repository.InventoryMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	if m.ID == "" {
		m.ID = r.state.genID()
	}
	r.state.movements = append(r.state.movements, *m)
	return nil
}

func (r *fakeMovementRepo) GetByID(userID, id string) (*entity.InventoryMovement, error) {
	for _, m := range r.state.movements {
		if m.UserID == userID && m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeMovementRepo) List(userID string, filters repository.MovementFilters) ([]*entity.MovementWithDetails, int, error) {
	var all []*entity.MovementWithDetails
	for _, m := range r.state.movements {
		if m.UserID != userID {
			continue
		}
		if filters.ProductID != "" && m.ProductID != filters.ProductID {
			continue
		}
		if filters.LocationID != "" &&
			m.LocationID != filters.LocationID &&
			m.FromLocationID != filters.LocationID &&
			m.ToLocationID != filters.LocationID {
			continue
		}
		if filters.MovementType != "" && m.MovementType != filters.MovementType {
			continue
		}
		if filters.FromDate != nil && m.CreatedAt.Before(*filters.FromDate) {
			continue
		}
		if filters.ToDate != nil && m.CreatedAt.After(*filters.ToDate) {
			continue
		}
		all = append(all, &entity.MovementWithDetails{InventoryMovement: m})
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	total := len(all)
	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * filters.PageSize
		if start > total {
			start = total
		}
		end := start + filters.PageSize
		if end > total {
			end = total
		}
		all = all[start:end]
	}
	return all, total, nil
}

// ── fakeLocationRepo / fakeProductRepo ────────────────────────────────────────

type fakeLocationRepo struct {
	state *fakeState
}

var _ repository.LocationRepository = (*fakeLocationRepo)(nil)

func (r *fakeLocationRepo) Create(location *entity.Location) error {
	for _, l := range r.state.locations {
		if l.UserID == location.UserID && l.Code == location.Code {
			return domain.ErrDuplicate
		}
	}
	r.state.locations[location.ID] = *location
	return nil
}

func (r *fakeLocationRepo) GetByID(userID, id string) (*entity.Location, error) {
	if l, ok := r.state.locations[id]; ok && l.UserID == userID {
		cp := l
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeLocationRepo) GetByCode(userID, code string) (*entity.Location, error) {
	for _, l := range r.state.locations {
		if l.UserID == userID && l.Code == code {
			cp := l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLocationRepo) Update(location *entity.Location) error {
	if _, ok := r.state.locations[location.ID]; !ok {
		return domain.ErrNotFound
	}
	r.state.locations[location.ID] = *location
	return nil
}

func (r *fakeLocationRepo) List(userID string, filters repository.LocationFilters) ([]*entity.Location, int, error) {
	var all []*entity.Location
	for _, l := range r.state.locations {
		if l.UserID != userID {
			continue
		}
		if filters.IsActive != nil && l.IsActive != *filters.IsActive {
			continue
		}
		cp := l
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, len(all), nil
}

type fakeProductRepo struct {
	state *fakeState
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(product *entity.Product) error {
	r.state.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) GetByID(userID, id string) (*entity.Product, error) {
	if p, ok := r.state.products[id]; ok && p.UserID == userID {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySKU(userID, sku string) (*entity.Product, error) {
	for _, p := range r.state.products {
		if p.UserID == userID && strings.EqualFold(p.SKU, sku) {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(product *entity.Product) error {
	if _, ok := r.state.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	r.state.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) List(userID string, limit, offset int) ([]*entity.Product, error) {
	var all []*entity.Product
	for _, p := range r.state.products {
		if p.UserID == userID {
			cp := p
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	if offset > len(all) {
		offset = len(all)
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// ── fakeTxRunner ──────────────────────────────────────────────────────────────

// fakeTxRunner reproduce la semántica del runner real: fn trabaja sobre una copia
// y solo en caso de éxito la copia reemplaza al estado base (commit). Un error de
// fn descarta todo (rollback). El mutex serializa las transacciones, igual que lo
// hacen los bloqueos de fila en PostgreSQL.
type fakeTxRunner struct {
	mu    sync.Mutex
	state *fakeState

	// conflictsLeft fuerza los próximos N Run a fallar con ErrTxConflict,
	// para probar el reintento con backoff.
	conflictsLeft int
	// failMovement inyecta un fallo en el asiento del journal dentro de la tx.
	failMovement error
	// runs cuenta los intentos de transacción.
	runs int
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs++
	if r.conflictsLeft > 0 {
		r.conflictsLeft--
		return fmt.Errorf("%w: simulado", domain.ErrTxConflict)
	}

	txState := r.state.clone()
	err := fn(&fakeStockRepo{state: txState}, &fakeMovementRepo{state: txState, failCreate: r.failMovement})
	if err != nil {
		return err
	}
	r.state.stocks = txState.stocks
	r.state.movements = txState.movements
	r.state.nextID = txState.nextID
	return nil
}
