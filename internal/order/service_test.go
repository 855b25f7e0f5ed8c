package order

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/numanubhani/grillhut/internal/cart"
	"github.com/numanubhani/grillhut/internal/models"
	"github.com/numanubhani/grillhut/internal/storage"
)

func newTestService(t *testing.T) (*Service, *cart.Service, *storage.Store) {
	t.Helper()
	store, err := storage.Open(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store, zerolog.Nop()), cart.New(store, zerolog.Nop()), store
}

func testCustomer() models.CustomerInfo {
	return models.CustomerInfo{Name: "Asad", Phone: "0300-1234567", Address: "12 Mall Road, Lahore"}
}

func burger() models.MenuItem {
	return models.MenuItem{ID: "1", Name: "Classic Burger", Price: decimal.NewFromInt(299), Category: "Burgers"}
}

func TestPlaceFromCartEndToEnd(t *testing.T) {
	orders, carts, _ := newTestService(t)

	if err := carts.Add(burger()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := carts.Add(burger()); err != nil {
		t.Fatalf("add: %v", err)
	}

	id, err := orders.PlaceFromCart(testCustomer(), models.PaymentCash, "")
	if err != nil {
		t.Fatalf("place from cart: %v", err)
	}

	o, found, err := orders.Find(id)
	if err != nil || !found {
		t.Fatalf("find placed order: found=%v err=%v", found, err)
	}
	if o.Status != models.StatusReceived {
		t.Fatalf("expected status received, got %s", o.Status)
	}
	if !o.Total.Equal(decimal.NewFromInt(598)) {
		t.Fatalf("expected total 598, got %s", o.Total)
	}
	if len(o.Items) != 1 || o.Items[0].Quantity != 2 {
		t.Fatalf("unexpected order items: %+v", o.Items)
	}

	// The cart must be empty after a full-cart checkout.
	left, _ := carts.Items()
	if len(left) != 0 {
		t.Fatalf("expected cart cleared, got %+v", left)
	}
}

func TestPlaceSingleBypassesCart(t *testing.T) {
	orders, carts, _ := newTestService(t)

	if err := carts.Add(burger()); err != nil {
		t.Fatalf("add: %v", err)
	}

	id, err := orders.PlaceSingle(burger(), testCustomer(), models.PaymentCash, "")
	if err != nil {
		t.Fatalf("place single: %v", err)
	}
	o, found, _ := orders.Find(id)
	if !found || len(o.Items) != 1 || o.Items[0].Quantity != 1 {
		t.Fatalf("unexpected express order: found=%v %+v", found, o.Items)
	}
	if !o.Total.Equal(decimal.NewFromInt(299)) {
		t.Fatalf("expected total 299, got %s", o.Total)
	}

	// Express checkout must leave the cart untouched.
	left, _ := carts.Items()
	if len(left) != 1 {
		t.Fatalf("expected cart untouched, got %+v", left)
	}
}

func TestOrderSnapshotIsolation(t *testing.T) {
	orders, carts, _ := newTestService(t)

	if err := carts.Add(burger()); err != nil {
		t.Fatalf("add: %v", err)
	}
	id, err := orders.PlaceFromCart(testCustomer(), models.PaymentCash, "")
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	// Mutate the cart after checkout; the placed order must not move.
	if err := carts.Add(burger()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := carts.UpdateQuantity("1", 9); err != nil {
		t.Fatalf("update quantity: %v", err)
	}

	o, _, _ := orders.Find(id)
	if len(o.Items) != 1 || o.Items[0].Quantity != 1 {
		t.Fatalf("order items changed after cart mutation: %+v", o.Items)
	}
	if !o.Total.Equal(decimal.NewFromInt(299)) {
		t.Fatalf("order total changed after cart mutation: %s", o.Total)
	}
}

func TestPlaceValidation(t *testing.T) {
	tests := []struct {
		name       string
		info       models.CustomerInfo
		method     models.PaymentMethod
		screenshot string
		wantErr    error
	}{
		{"missing name", models.CustomerInfo{Phone: "1", Address: "a"}, models.PaymentCash, "", nil},
		{"missing phone", models.CustomerInfo{Name: "n", Address: "a"}, models.PaymentCash, "", nil},
		{"missing address", models.CustomerInfo{Name: "n", Phone: "1"}, models.PaymentCash, "", nil},
		{"online without screenshot", testCustomer(), models.PaymentOnline, "", ErrScreenshotRequired},
		{"unknown method", testCustomer(), models.PaymentMethod("card"), "", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			orders, _, store := newTestService(t)
			_, err := orders.PlaceSingle(burger(), tc.info, tc.method, tc.screenshot)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			// A rejected order must not have touched the store.
			placed, _ := store.Orders()
			if len(placed) != 0 {
				t.Fatalf("rejected order was persisted: %+v", placed)
			}
		})
	}
}

func TestPlaceEmptyCartRejected(t *testing.T) {
	orders, _, _ := newTestService(t)
	if _, err := orders.PlaceFromCart(testCustomer(), models.PaymentCash, ""); !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestOnlinePaymentKeepsScreenshot(t *testing.T) {
	orders, _, _ := newTestService(t)
	id, err := orders.PlaceSingle(burger(), testCustomer(), models.PaymentOnline, "data:image/png;base64,iVBOR")
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	o, _, _ := orders.Find(id)
	if o.PaymentScreenshot == "" {
		t.Fatal("expected screenshot to be captured")
	}
}

func TestOrderIDsUniqueUnderSameTimestamp(t *testing.T) {
	orders, _, _ := newTestService(t)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	orders.now = func() time.Time { return fixed }

	first, err := orders.PlaceSingle(burger(), testCustomer(), models.PaymentCash, "")
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	second, err := orders.PlaceSingle(burger(), testCustomer(), models.PaymentCash, "")
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if first == second {
		t.Fatalf("expected unique ids, both were %s", first)
	}
	if first != "1748779200000" {
		t.Fatalf("expected timestamp-derived id, got %s", first)
	}
}

func TestUpdateStatus(t *testing.T) {
	orders, _, _ := newTestService(t)
	id, err := orders.PlaceSingle(burger(), testCustomer(), models.PaymentCash, "")
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if err := orders.UpdateStatus(id, models.StatusCooking); err != nil {
		t.Fatalf("update status: %v", err)
	}
	// Idempotent: same status twice leaves the same state.
	if err := orders.UpdateStatus(id, models.StatusCooking); err != nil {
		t.Fatalf("repeat update status: %v", err)
	}
	o, _, _ := orders.Find(id)
	if o.Status != models.StatusCooking {
		t.Fatalf("expected cooking, got %s", o.Status)
	}

	// Backward transition is allowed on purpose.
	if err := orders.UpdateStatus(id, models.StatusReceived); err != nil {
		t.Fatalf("backward update: %v", err)
	}
	o, _, _ = orders.Find(id)
	if o.Status != models.StatusReceived {
		t.Fatalf("expected received, got %s", o.Status)
	}

	if err := orders.UpdateStatus(id, models.OrderStatus("burnt")); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if err := orders.UpdateStatus("nope", models.StatusCooking); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindMissingOrder(t *testing.T) {
	orders, _, _ := newTestService(t)
	if _, found, err := orders.Find("does-not-exist"); err != nil || found {
		t.Fatalf("expected explicit not-found, found=%v err=%v", found, err)
	}
}

func TestStats(t *testing.T) {
	orders, _, _ := newTestService(t)
	a, _ := orders.PlaceSingle(burger(), testCustomer(), models.PaymentCash, "")
	if _, err := orders.PlaceSingle(burger(), testCustomer(), models.PaymentCash, ""); err != nil {
		t.Fatalf("place: %v", err)
	}
	if err := orders.UpdateStatus(a, models.StatusDelivered); err != nil {
		t.Fatalf("update status: %v", err)
	}

	st, err := orders.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 2 || st.Delivered != 1 || st.Pending != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if !st.Revenue.Equal(decimal.NewFromInt(598)) {
		t.Fatalf("expected revenue 598, got %s", st.Revenue)
	}
}
