// Package workflow holds the order-processing block catalog and the editor
// operations behind the automation screen. The editor guarantees list shape
// only; whether a saved sequence is a sensible state machine is the
// backend's concern and nothing here validates transitions.
package workflow

// Block ids as the backend stores them.
const (
	OrderCreated        = "order_created"
	OrderAccepted       = "order_accepted"
	OrderPrepared       = "order_prepared"
	OrderOutForDelivery = "order_out_for_delivery"
	OrderDelivered      = "order_delivered"
	CancellationAllowed = "cancellation_allowed"
	RequestPayment      = "request_payment"
	PauseUntilPayment   = "pause_until_payment"
)

type BlockInfo struct {
	ID          string
	Label       string
	Description string
}

// Catalog is the fixed set of available blocks, in display order.
func Catalog() []BlockInfo {
	return []BlockInfo{
		{OrderCreated, "Order Created by Customer", "Customer places a new order"},
		{OrderAccepted, "Order Accepted by You", "You confirm the order"},
		{OrderPrepared, "Order Prepared for Dispatch", "Order is ready to ship"},
		{OrderOutForDelivery, "Order Out for Delivery", "Order is in transit"},
		{OrderDelivered, "Order Successfully Delivered", "Order completed successfully"},
		{CancellationAllowed, "Cancellation Allowed Until This Step", "Last step where cancellation is possible"},
		{RequestPayment, "Request Customer Payment", "Send payment request to customer"},
		{PauseUntilPayment, "Pause Workflow Until Payment Received", "Wait for payment confirmation"},
	}
}

// Lookup returns catalog info for an id. Unknown ids come back with the raw
// id as label so sequences saved by a newer backend still render.
func Lookup(id string) BlockInfo {
	for _, b := range Catalog() {
		if b.ID == id {
			return b
		}
	}
	return BlockInfo{ID: id, Label: id}
}

// DefaultSequence is the workflow a seller starts from.
func DefaultSequence() []string {
	return []string{
		OrderCreated,
		OrderAccepted,
		RequestPayment,
		PauseUntilPayment,
		OrderPrepared,
		OrderOutForDelivery,
		OrderDelivered,
	}
}

// Editor is the ordered block list under edit. Operations mirror the screen
// gestures; persistence is an explicit save of Blocks() elsewhere.
type Editor struct {
	blocks []string
}

func NewEditor(blocks []string) *Editor {
	e := &Editor{blocks: make([]string, len(blocks))}
	copy(e.blocks, blocks)
	return e
}

// Blocks returns a copy of the current sequence.
func (e *Editor) Blocks() []string {
	out := make([]string, len(e.blocks))
	copy(out, e.blocks)
	return out
}

// Add appends id if absent. The false return is a user-visible warning, not
// an error; the sequence is unchanged.
func (e *Editor) Add(id string) bool {
	for _, b := range e.blocks {
		if b == id {
			return false
		}
	}
	e.blocks = append(e.blocks, id)
	return true
}

// Remove splices out the element at i. Out-of-range indexes are ignored.
func (e *Editor) Remove(i int) bool {
	if i < 0 || i >= len(e.blocks) {
		return false
	}
	e.blocks = append(e.blocks[:i], e.blocks[i+1:]...)
	return true
}

// Move takes the element at from and reinserts it at to, shifting the
// elements in between. The multiset of blocks is unchanged.
func (e *Editor) Move(from, to int) bool {
	n := len(e.blocks)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}
	block := e.blocks[from]
	rest := append(e.blocks[:from], e.blocks[from+1:]...)
	e.blocks = append(rest[:to], append([]string{block}, rest[to:]...)...)
	return true
}

// Reset restores the default sequence.
func (e *Editor) Reset() {
	e.blocks = DefaultSequence()
}
