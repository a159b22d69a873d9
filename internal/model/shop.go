package model

// Shop is the one-per-seller shop profile.
type Shop struct {
	ID        *string `json:"id"`
	UserID    string  `json:"userId"`
	Name      string  `json:"name"`
	CreatedAt *string `json:"createdAt"`
}

// EmptyShop is returned when a seller hasn't named their shop yet.
func EmptyShop(userID string) Shop {
	return Shop{UserID: userID}
}
