package realtime

import (
	"encoding/json"
	"testing"
)

func TestDecodeOrdersArrayForm(t *testing.T) {
	raw := json.RawMessage(`[
		{"order_id":1,"buyer_phone":"911","total_amount":100},
		null,
		{"order_id":2,"buyer_phone":"922","total_amount":50}
	]`)
	orders := decodeOrders(raw)
	if len(orders) != 2 {
		t.Fatalf("got %d orders, want 2 (null dropped)", len(orders))
	}
	if orders[0].OrderID != 1 || orders[1].OrderID != 2 {
		t.Errorf("order ids = %d, %d", orders[0].OrderID, orders[1].OrderID)
	}
}

func TestDecodeOrdersObjectForm(t *testing.T) {
	raw := json.RawMessage(`{
		"0": {"order_id":1,"total_amount":100},
		"2": {"order_id":3,"total_amount":30},
		"1": null
	}`)
	orders := decodeOrders(raw)
	if len(orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(orders))
	}
	if orders[0].OrderID != 1 || orders[1].OrderID != 3 {
		t.Errorf("object form should preserve key order, got ids %d, %d", orders[0].OrderID, orders[1].OrderID)
	}
}

func TestDecodeOrdersObjectFormNumericKeyOrder(t *testing.T) {
	raw := json.RawMessage(`{
		"10": {"order_id":11},
		"2":  {"order_id":3},
		"0":  {"order_id":1},
		"1":  {"order_id":2}
	}`)
	orders := decodeOrders(raw)
	if len(orders) != 4 {
		t.Fatalf("got %d orders, want 4", len(orders))
	}
	want := []int{1, 2, 3, 11}
	for i, id := range want {
		if orders[i].OrderID != id {
			t.Fatalf("index %d: order id = %d, want %d (keys must sort numerically)", i, orders[i].OrderID, id)
		}
	}
}

func TestDecodeOrdersGarbage(t *testing.T) {
	if orders := decodeOrders(json.RawMessage(`"nope"`)); orders != nil {
		t.Errorf("garbage should decode to nil, got %v", orders)
	}
	if orders := decodeOrders(nil); orders != nil {
		t.Errorf("empty input should decode to nil, got %v", orders)
	}
}

func TestDecodeBuyers(t *testing.T) {
	raw := json.RawMessage(`{
		"91_99": {"name":"Asha"},
		"92_00": {"phone":"92#00","name":"Ravi"},
		"drop":  null
	}`)
	buyers := decodeBuyers(raw)
	if len(buyers) != 2 {
		t.Fatalf("got %d buyers, want 2", len(buyers))
	}
	if buyers["91_99"].Name != "Asha" {
		t.Errorf("key-phone fallback failed: %+v", buyers)
	}
	if buyers["92#00"].Name != "Ravi" {
		t.Errorf("explicit phone field should win: %+v", buyers)
	}
}

func TestDecodeConversationSortsByTimestamp(t *testing.T) {
	raw := json.RawMessage(`[
		{"role":"assistant","text":"second","timestamp":200},
		{"role":"buyer","text":"first","timestamp":100}
	]`)
	msgs := decodeConversation(raw)
	if len(msgs) != 2 || msgs[0].Text != "first" || msgs[1].Text != "second" {
		t.Errorf("conversation not timestamp-ascending: %+v", msgs)
	}
}
