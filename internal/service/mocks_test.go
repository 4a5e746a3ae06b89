package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmeier/smartfridge/internal/apperror"
	"github.com/jmeier/smartfridge/internal/model"
	"github.com/jmeier/smartfridge/internal/repository"
)

// In-memory fakes for the repository interfaces. They keep just enough
// state to test service policy — validation, cross-checks, error mapping —
// without a database. The err fields let a test force a storage failure.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
	err    error // when set, every method fails with it
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperror.Conflict("email", fmt.Sprintf("email %s already exists", user.Email))
		}
	}
	m.nextID++
	user.ID = m.nextID
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NotFoundNamed("user", email)
}

func (m *mockUserRepo) UpdateByUsername(_ context.Context, username, email, passwordHash string) error {
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			u.Email = email
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return apperror.NotFoundNamed("user", username)
}

func (m *mockUserRepo) DeleteByUsername(_ context.Context, username string) error {
	if m.err != nil {
		return m.err
	}
	for id, u := range m.users {
		if u.Username == username {
			delete(m.users, id)
			return nil
		}
	}
	return apperror.NotFoundNamed("user", username)
}

type mockFridgeRepo struct {
	fridges map[int64]*model.Fridge
	order   []int64
	nextID  int64
	err     error
}

func newMockFridgeRepo() *mockFridgeRepo {
	return &mockFridgeRepo{fridges: make(map[int64]*model.Fridge)}
}

var _ repository.FridgeRepository = (*mockFridgeRepo)(nil)

func (m *mockFridgeRepo) add(userID int64, title string) *model.Fridge {
	m.nextID++
	f := &model.Fridge{ID: m.nextID, UserID: userID, Title: title}
	m.fridges[f.ID] = f
	m.order = append(m.order, f.ID)
	return f
}

func (m *mockFridgeRepo) Create(_ context.Context, fridge *model.Fridge) error {
	if m.err != nil {
		return m.err
	}
	created := m.add(fridge.UserID, fridge.Title)
	fridge.ID = created.ID
	return nil
}

func (m *mockFridgeRepo) GetByID(_ context.Context, id int64) (*model.Fridge, error) {
	if m.err != nil {
		return nil, m.err
	}
	f, ok := m.fridges[id]
	if !ok {
		return nil, apperror.NotFound("fridge", id)
	}
	cp := *f
	return &cp, nil
}

func (m *mockFridgeRepo) ListByUser(_ context.Context, userID int64, opts repository.ListOptions) ([]model.Fridge, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Fridge, 0)
	for _, id := range m.order {
		f := m.fridges[id]
		if f != nil && f.UserID == userID {
			out = append(out, *f)
		}
	}
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []model.Fridge{}, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *mockFridgeRepo) CountByUser(_ context.Context, userID int64) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := 0
	for _, f := range m.fridges {
		if f.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *mockFridgeRepo) Rename(_ context.Context, id int64, title string) error {
	if m.err != nil {
		return m.err
	}
	f, ok := m.fridges[id]
	if !ok {
		return apperror.NotFound("fridge", id)
	}
	f.Title = title
	return nil
}

func (m *mockFridgeRepo) Delete(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.fridges[id]; !ok {
		return apperror.NotFound("fridge", id)
	}
	delete(m.fridges, id)
	return nil
}

type mockProductRepo struct {
	products map[int64]*model.Product
	order    []int64
	nextID   int64
	err      error
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[int64]*model.Product)}
}

var _ repository.ProductRepository = (*mockProductRepo)(nil)

func (m *mockProductRepo) add(userID int64, name, unit string) *model.Product {
	m.nextID++
	p := &model.Product{ID: m.nextID, UserID: userID, Name: name, Unit: unit}
	m.products[p.ID] = p
	m.order = append(m.order, p.ID)
	return p
}

func (m *mockProductRepo) Create(_ context.Context, product *model.Product) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	product.ID = m.nextID
	cp := *product
	m.products[product.ID] = &cp
	m.order = append(m.order, product.ID)
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id int64) (*model.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, apperror.NotFound("product", id)
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) ListByUser(_ context.Context, userID int64, opts repository.ListOptions) ([]model.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Product, 0)
	for _, id := range m.order {
		p := m.products[id]
		if p != nil && p.UserID == userID {
			out = append(out, *p)
		}
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *mockProductRepo) CountByUser(_ context.Context, userID int64) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := 0
	for _, p := range m.products {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *mockProductRepo) Update(_ context.Context, product *model.Product) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.products[product.ID]; !ok {
		return apperror.NotFound("product", product.ID)
	}
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.products[id]; !ok {
		return apperror.NotFound("product", id)
	}
	delete(m.products, id)
	return nil
}

type mockStockRepo struct {
	entries map[int64]*model.StockEntry
	order   []int64
	nextID  int64
	// products lets ContentsOfFridge fake the join.
	products *mockProductRepo
	err      error
}

func newMockStockRepo(products *mockProductRepo) *mockStockRepo {
	return &mockStockRepo{
		entries:  make(map[int64]*model.StockEntry),
		products: products,
	}
}

var _ repository.StockRepository = (*mockStockRepo)(nil)

func (m *mockStockRepo) Create(_ context.Context, entry *model.StockEntry) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	entry.ID = m.nextID
	cp := *entry
	m.entries[entry.ID] = &cp
	m.order = append(m.order, entry.ID)
	return nil
}

func (m *mockStockRepo) GetByID(_ context.Context, id int64) (*model.StockEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.entries[id]
	if !ok {
		return nil, apperror.NotFound("stock entry", id)
	}
	cp := *e
	return &cp, nil
}

func (m *mockStockRepo) Update(_ context.Context, entry *model.StockEntry) error {
	if m.err != nil {
		return m.err
	}
	e, ok := m.entries[entry.ID]
	if !ok {
		return apperror.NotFound("stock entry", entry.ID)
	}
	e.Quantity = entry.Quantity
	e.ExpiresOn = entry.ExpiresOn
	e.StockedOn = entry.StockedOn
	return nil
}

func (m *mockStockRepo) DeleteByID(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.entries[id]; !ok {
		return apperror.NotFound("stock entry", id)
	}
	delete(m.entries, id)
	return nil
}

func (m *mockStockRepo) DeleteByProductAndFridge(_ context.Context, productID, fridgeID int64) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var removed int64
	for id, e := range m.entries {
		if e.ProductID == productID && e.FridgeID == fridgeID {
			delete(m.entries, id)
			removed++
		}
	}
	return removed, nil
}

func (m *mockStockRepo) ContentsOfFridge(ctx context.Context, fridgeID int64) ([]model.FridgeItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	items := make([]model.FridgeItem, 0)
	for _, id := range m.order {
		e, ok := m.entries[id]
		if !ok || e.FridgeID != fridgeID {
			continue
		}
		p, err := m.products.GetByID(ctx, e.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, model.FridgeItem{
			EntryID:   e.ID,
			ProductID: p.ID,
			Name:      p.Name,
			Category:  p.Category,
			Unit:      p.Unit,
			ImageURL:  p.ImageURL,
			Quantity:  e.Quantity,
			ExpiresOn: e.ExpiresOn,
			StockedOn: e.StockedOn,
		})
	}
	return items, nil
}
