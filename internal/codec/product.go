package codec

import "go-catat-jualan/internal/model"

func ProductFromRow(row []string) *model.Product {
	if len(row) < 7 || blankID(row) {
		return nil
	}
	stock := parseOptInt(cell(row, 5))
	if stock != nil && *stock < 0 {
		*stock = 0
	}
	return &model.Product{
		ID:                trimmed(row, 0),
		UserID:            trimmed(row, 1),
		Name:              cell(row, 2),
		Emoji:             cell(row, 3),
		Price:             parseInt(cell(row, 4)),
		Stock:             stock,
		LowStockThreshold: parseInt(cell(row, 6)),
	}
}

func ProductToRow(p *model.Product) []string {
	return []string{
		p.ID,
		p.UserID,
		p.Name,
		p.Emoji,
		formatInt(p.Price),
		formatOptInt(p.Stock),
		formatInt(p.LowStockThreshold),
	}
}

func OperationalCostFromRow(row []string) *model.OperationalCost {
	if len(row) < 8 || blankID(row) {
		return nil
	}
	return &model.OperationalCost{
		ID:          trimmed(row, 0),
		UserID:      trimmed(row, 1),
		Category:    cell(row, 2),
		Amount:      parseInt(cell(row, 3)),
		Period:      cell(row, 4),
		Type:        model.NormalizeCostType(cell(row, 5)),
		Description: cell(row, 6),
		CreatedAt:   cell(row, 7),
	}
}

func OperationalCostToRow(c *model.OperationalCost) []string {
	return []string{
		c.ID,
		c.UserID,
		c.Category,
		formatInt(c.Amount),
		c.Period,
		model.NormalizeCostType(c.Type),
		c.Description,
		c.CreatedAt,
	}
}

func OrderFromRow(row []string) *model.Order {
	if len(row) < 10 || blankID(row) {
		return nil
	}
	return &model.Order{
		ID:            trimmed(row, 0),
		UserID:        trimmed(row, 1),
		CustomerName:  cell(row, 2),
		ProductID:     trimmed(row, 3),
		ProductName:   cell(row, 4),
		Quantity:      parseInt(cell(row, 5)),
		ScheduledAt:   cell(row, 6),
		Collected:     model.NormalizeCollected(cell(row, 7)),
		Paid:          model.NormalizePaid(cell(row, 8)),
		CreatedAt:     cell(row, 9),
		PaymentMethod: model.NormalizePaymentMethod(cell(row, 10)),
	}
}

func OrderToRow(o *model.Order) []string {
	return []string{
		o.ID,
		o.UserID,
		o.CustomerName,
		o.ProductID,
		o.ProductName,
		formatInt(o.Quantity),
		o.ScheduledAt,
		model.NormalizeCollected(o.Collected),
		model.NormalizePaid(o.Paid),
		o.CreatedAt,
		model.NormalizePaymentMethod(o.PaymentMethod),
	}
}
