package repository

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"shopadmin/internal/domain"
)

func TestMemoryStore_ProductCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p := domain.Product{Name: "A", Price: 10, Stock: 5, Category: "tools"}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("no id")
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("get: %v", err)
	}

	updated, err := store.Update(ctx, p.ID, domain.ProductFields{Name: "A+", Price: 12, Stock: 3})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "A+" || updated.Price != 12 || updated.Category != "" {
		t.Fatalf("update did not replace fields: %+v", updated)
	}

	deleted, err := store.Delete(ctx, p.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != p.ID {
		t.Fatalf("deleted wrong product %q", deleted.ID)
	}
	if _, err := store.GetByID(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := store.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected not found, got %v", err)
	}
}

func TestMemoryStore_UnknownIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Update(ctx, "missing", domain.ProductFields{Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update: expected not found, got %v", err)
	}
	if _, err := NewMemoryOrders(store).UpdateStatus(ctx, "missing", domain.OrderStatusAccepted); !errors.Is(err, ErrNotFound) {
		t.Fatalf("order status: expected not found, got %v", err)
	}
}

func TestMemoryStore_ImageIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte{1, 2, 3}
	p := domain.Product{Name: "A", Image: &domain.ProductImage{Data: data, ContentType: "image/png"}}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}
	data[0] = 9

	got, _ := store.GetByID(ctx, p.ID)
	if !bytes.Equal(got.Image.Data, []byte{1, 2, 3}) {
		t.Fatalf("stored bytes changed with caller buffer: %v", got.Image.Data)
	}

	list, _ := store.List(ctx)
	if len(list) != 1 || list[0].Image == nil {
		t.Fatalf("list lost image marker")
	}
	if list[0].Image.Data != nil || list[0].Image.ContentType != "image/png" {
		t.Fatalf("list should carry content type only: %+v", list[0].Image)
	}
}

func TestMemoryOrders_ListExpandsUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	users := NewMemoryUsers(store)
	orders := NewMemoryOrders(store)

	u := domain.User{Email: "jane@example.com", Name: "Jane", Role: "customer", PasswordHash: "secret"}
	if err := users.Create(ctx, &u); err != nil {
		t.Fatal(err)
	}
	o := domain.Order{UserID: u.ID, Items: []domain.OrderItem{{ProductID: "p1", Quantity: 2}}}
	if err := orders.Create(ctx, &o); err != nil {
		t.Fatal(err)
	}
	if o.Status != domain.OrderStatusPending {
		t.Fatalf("new orders start pending, got %q", o.Status)
	}

	list, _ := orders.List(ctx, OrderListOptions{})
	if list[0].User != nil {
		t.Fatalf("user expanded without being asked")
	}

	list, _ = orders.List(ctx, OrderListOptions{ExpandUser: true, UserFields: []string{UserFieldEmail}})
	if got := list[0].User; got == nil || got.Email != u.Email || got.Name != "" || got.ID != u.ID {
		t.Fatalf("email-only expansion wrong: %+v", got)
	}

	list, _ = orders.List(ctx, OrderListOptions{ExpandUser: true})
	if got := list[0].User; got.Name != "Jane" || got.Role != "customer" || got.PasswordHash != "" {
		t.Fatalf("full expansion wrong: %+v", got)
	}
}

func TestMemoryOrders_UpdateStatusAnyTransition(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryOrders(NewMemoryStore())

	o := domain.Order{UserID: "u1", Status: domain.OrderStatusDelivered}
	if err := orders.Create(ctx, &o); err != nil {
		t.Fatal(err)
	}
	got, err := orders.UpdateStatus(ctx, o.ID, domain.OrderStatusPending)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got.Status != domain.OrderStatusPending || got.UpdatedAt.Before(got.CreatedAt) {
		t.Fatalf("unexpected order %+v", got)
	}
}

func TestMemoryOrders_ItemsIsolation(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryOrders(NewMemoryStore())

	o := domain.Order{UserID: "u1", Items: []domain.OrderItem{{ProductID: "p1", Name: "Lamp", Quantity: 1}}}
	if err := orders.Create(ctx, &o); err != nil {
		t.Fatal(err)
	}

	got, err := orders.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	got.Items[0].Quantity = 99
	list, err := orders.List(ctx, OrderListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	list[0].Items[0].Name = "changed"
	updated, err := orders.UpdateStatus(ctx, o.ID, domain.OrderStatusAccepted)
	if err != nil {
		t.Fatal(err)
	}
	updated.Items[0].ProductID = "other"

	stored, err := orders.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := domain.OrderItem{ProductID: "p1", Name: "Lamp", Quantity: 1}
	if stored.Items[0] != want {
		t.Fatalf("stored items changed through a returned order: %+v", stored.Items[0])
	}
}

func TestMemoryUsers_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryUsers(NewMemoryStore())

	if err := users.Create(ctx, &domain.User{Email: "a@example.com"}); err != nil {
		t.Fatal(err)
	}
	if err := users.Create(ctx, &domain.User{Email: "A@example.com"}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
	u, err := users.GetByEmail(ctx, "A@EXAMPLE.com")
	if err != nil || u.Email != "a@example.com" {
		t.Fatalf("lookup by email: %v", err)
	}
}
