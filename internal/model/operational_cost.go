package model

const (
	CostRecurring = "recurring"
	CostOneTime   = "one-time"
)

// OperationalCost is a seller's overhead entry (rent, utilities, ...).
type OperationalCost struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Category    string `json:"category"`
	Amount      int64  `json:"amount"`
	Period      string `json:"period"`
	Type        string `json:"type"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

// NormalizeCostType defaults anything unknown to recurring.
func NormalizeCostType(raw string) string {
	if raw == CostOneTime {
		return CostOneTime
	}
	return CostRecurring
}
