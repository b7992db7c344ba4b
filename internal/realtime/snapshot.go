package realtime

import (
	"encoding/json"
	"sort"
	"strconv"

	"sellerdesk/internal/models"
)

// The database serializes dense arrays as JSON arrays and sparse ones as
// objects keyed by index. Snapshot decoding accepts both and drops null
// entries, since a deleted child leaves a hole in the array form.

func decodeList[T any](raw json.RawMessage) []T {
	if len(raw) == 0 {
		return nil
	}

	var arr []*T
	if err := json.Unmarshal(raw, &arr); err == nil {
		out := make([]T, 0, len(arr))
		for _, v := range arr {
			if v != nil {
				out = append(out, *v)
			}
		}
		return out
	}

	var obj map[string]*T
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		if obj[k] != nil {
			keys = append(keys, k)
		}
	}
	// Object keys are array indices, so "10" must come after "2".
	// Non-numeric keys sort lexically after the numeric ones.
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.ParseInt(keys[i], 10, 64)
		b, berr := strconv.ParseInt(keys[j], 10, 64)
		switch {
		case aerr == nil && berr == nil:
			return a < b
		case aerr == nil:
			return true
		case berr == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, *obj[k])
	}
	return out
}

func decodeOrders(raw json.RawMessage) []models.Order {
	return decodeList[models.Order](raw)
}

func decodeProducts(raw json.RawMessage) []models.Product {
	return decodeList[models.Product](raw)
}

func decodeCustomers(raw json.RawMessage) []string {
	return decodeList[string](raw)
}

// decodeBuyers maps sanitized phone keys to registry entries. The entry's
// own phone field wins over the key, which has been through SafeKey.
func decodeBuyers(raw json.RawMessage) map[string]models.Buyer {
	if len(raw) == 0 {
		return nil
	}
	var obj map[string]*models.Buyer
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	out := make(map[string]models.Buyer, len(obj))
	for key, b := range obj {
		if b == nil {
			continue
		}
		phone := b.Phone
		if phone == "" {
			phone = key
		}
		buyer := *b
		buyer.Phone = phone
		out[phone] = buyer
	}
	return out
}

// decodeConversation orders messages by timestamp ascending.
func decodeConversation(raw json.RawMessage) []models.ConversationMessage {
	msgs := decodeList[models.ConversationMessage](raw)
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp < msgs[j].Timestamp
	})
	return msgs
}
