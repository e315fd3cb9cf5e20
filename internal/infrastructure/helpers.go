package infrastructure

import (
	"fmt"
	"time"
)

const ReceiptContentType = "application/json"

// ReceiptObjectKey раскладывает чеки по дню продажи: receipts/2024/06/01/sale-501-<id>.json.
func ReceiptObjectKey(saleID int64, soldAt time.Time, id string) string {
	return fmt.Sprintf("receipts/%s/sale-%d-%s.json", soldAt.UTC().Format("2006/01/02"), saleID, id)
}
