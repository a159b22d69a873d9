package codec

import (
	"strings"

	"go-catat-jualan/internal/model"
)

// txShape tags the two historical layouts of the Transactions sheet.
type txShape int

const (
	shapeInvalid txShape = iota
	// id,userId,type,productId,quantity,amount,combined,timestamp,date
	shapeLegacy
	// id,userId,type,productId,quantity,amount,category,subCategory,description,
	// timestamp,date[,orderId[,paymentMethod[,productName]]]
	shapeCurrent
)

func shapeOf(row []string) txShape {
	switch {
	case len(row) >= 11:
		return shapeCurrent
	case len(row) >= 9:
		return shapeLegacy
	}
	return shapeInvalid
}

func TransactionFromRow(row []string) *model.Transaction {
	if blankID(row) {
		return nil
	}
	switch shapeOf(row) {
	case shapeLegacy:
		return decodeLegacyTx(row)
	case shapeCurrent:
		return decodeCurrentTx(row)
	}
	return nil
}

func decodeTxHead(row []string) *model.Transaction {
	return &model.Transaction{
		ID:        trimmed(row, 0),
		UserID:    trimmed(row, 1),
		Type:      model.NormalizeTxType(trimmed(row, 2)),
		ProductID: trimmed(row, 3),
		Quantity:  parseOptInt(cell(row, 4)),
		Amount:    parseInt(cell(row, 5)),
	}
}

func decodeLegacyTx(row []string) *model.Transaction {
	tx := decodeTxHead(row)
	tx.Category, tx.SubCategory, tx.Description = model.SplitDescription(cell(row, 6))
	tx.Timestamp = parseInt(cell(row, 7))
	tx.Date = trimmed(row, 8)
	return tx
}

func decodeCurrentTx(row []string) *model.Transaction {
	tx := decodeTxHead(row)
	tx.Category = trimmed(row, 6)
	tx.SubCategory = trimmed(row, 7)
	tx.Description = trimmed(row, 8)
	tx.Timestamp = parseInt(cell(row, 9))
	tx.Date = trimmed(row, 10)
	tx.OrderID = trimmed(row, 11)
	tx.PaymentMethod = model.NormalizePaymentMethod(cell(row, 12))
	tx.ProductName = trimmed(row, 13)
	return tx
}

// TransactionToRow always writes the current layout. A description that still
// carries the combined "category — sub — description" form is split when the
// separate columns are empty.
func TransactionToRow(t *model.Transaction) []string {
	category, subCategory, description := t.Category, t.SubCategory, t.Description
	if category == "" && subCategory == "" && strings.Contains(description, model.DescriptionSeparator) {
		category, subCategory, description = model.SplitDescription(description)
	}
	return []string{
		t.ID,
		t.UserID,
		string(model.NormalizeTxType(string(t.Type))),
		t.ProductID,
		formatOptInt(t.Quantity),
		formatInt(t.Amount),
		category,
		subCategory,
		description,
		formatInt(t.Timestamp),
		t.Date,
		t.OrderID,
		model.NormalizePaymentMethod(t.PaymentMethod),
		t.ProductName,
	}
}
