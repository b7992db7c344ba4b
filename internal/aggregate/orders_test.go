package aggregate

import (
	"testing"

	"sellerdesk/internal/models"
)

func filterFixture() []models.Order {
	return []models.Order{
		{OrderID: 1, OrderStatus: models.OrderReceived, PaymentStatus: models.PaymentPending, TotalAmount: 30, CreatedAt: "2026-08-01T00:00:00Z"},
		{OrderID: 2, OrderStatus: models.OrderDelivered, PaymentStatus: models.PaymentCompleted, TotalAmount: 10, CreatedAt: "2026-08-03T00:00:00Z"},
		{OrderID: 3, OrderStatus: models.OrderReceived, PaymentStatus: models.PaymentRequested, TotalAmount: 20, CreatedAt: "2026-08-02T00:00:00Z"},
	}
}

func TestFilterExactStatus(t *testing.T) {
	got := FilterSort(filterFixture(), models.OrderReceived, "", SortNewest)
	if len(got) != 2 {
		t.Fatalf("got %d orders, want 2", len(got))
	}
	for _, o := range got {
		if o.OrderStatus != models.OrderReceived {
			t.Errorf("order %d has status %q", o.OrderID, o.OrderStatus)
		}
	}
}

func TestFilterAllIsUnfiltered(t *testing.T) {
	orders := filterFixture()
	for _, filter := range []string{"All", ""} {
		got := FilterSort(orders, filter, filter, SortNewest)
		if len(got) != len(orders) {
			t.Errorf("filter %q dropped orders: %d of %d", filter, len(got), len(orders))
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	orders := filterFixture()
	FilterSort(orders, "All", "All", SortHighest)
	if orders[0].OrderID != 1 || orders[1].OrderID != 2 || orders[2].OrderID != 3 {
		t.Error("input slice was reordered")
	}
}

func TestSortHighestReversesLowest(t *testing.T) {
	orders := filterFixture() // distinct totals
	high := FilterSort(orders, "", "", SortHighest)
	low := FilterSort(orders, "", "", SortLowest)
	for i := range high {
		if high[i].OrderID != low[len(low)-1-i].OrderID {
			t.Fatalf("highest %v is not the reverse of lowest %v", ids(high), ids(low))
		}
	}
}

func TestSortNewestOldest(t *testing.T) {
	newest := FilterSort(filterFixture(), "", "", SortNewest)
	if ids(newest) != [3]int{2, 3, 1} {
		t.Errorf("newest = %v, want [2 3 1]", ids(newest))
	}
	oldest := FilterSort(filterFixture(), "", "", SortOldest)
	if ids(oldest) != [3]int{1, 3, 2} {
		t.Errorf("oldest = %v, want [1 3 2]", ids(oldest))
	}
}

func TestPaymentFilterCombines(t *testing.T) {
	got := FilterSort(filterFixture(), models.OrderReceived, models.PaymentRequested, SortNewest)
	if len(got) != 1 || got[0].OrderID != 3 {
		t.Errorf("combined filter = %v, want just order 3", got)
	}
}

func ids(orders []models.Order) [3]int {
	var out [3]int
	for i, o := range orders {
		if i < 3 {
			out[i] = o.OrderID
		}
	}
	return out
}
