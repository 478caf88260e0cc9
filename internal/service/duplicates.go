package service

import (
	"strings"

	"github.com/google/uuid"
)

// OrderRef is the slice of an order that duplicate detection looks at.
type OrderRef struct {
	ID            uuid.UUID
	OrderNumber   string
	ReceiptNumber string
}

// DuplicateFlags marks which identifying numbers of an order repeat.
type DuplicateFlags struct {
	HasDuplicateOrderNumber bool
	HasDuplicateReceipt     bool
}

// DetectDuplicates flags every order whose trimmed, non-empty order number or
// receipt number occurs more than once in the input. Orders with no
// duplicated number are absent from the result. Two passes, O(n).
func DetectDuplicates(orders []OrderRef) map[uuid.UUID]DuplicateFlags {
	orderNums := make(map[string]int, len(orders))
	receiptNums := make(map[string]int, len(orders))

	for _, o := range orders {
		if n := strings.TrimSpace(o.OrderNumber); n != "" {
			orderNums[n]++
		}
		if n := strings.TrimSpace(o.ReceiptNumber); n != "" {
			receiptNums[n]++
		}
	}

	flags := make(map[uuid.UUID]DuplicateFlags)
	for _, o := range orders {
		var f DuplicateFlags
		if n := strings.TrimSpace(o.OrderNumber); n != "" && orderNums[n] > 1 {
			f.HasDuplicateOrderNumber = true
		}
		if n := strings.TrimSpace(o.ReceiptNumber); n != "" && receiptNums[n] > 1 {
			f.HasDuplicateReceipt = true
		}
		if f.HasDuplicateOrderNumber || f.HasDuplicateReceipt {
			flags[o.ID] = f
		}
	}
	return flags
}
