package codec

import (
	"strings"

	"go-catat-jualan/internal/model"
)

func UserFromRow(row []string) *model.User {
	if len(row) < 6 || blankID(row) {
		return nil
	}
	return &model.User{
		ID:           trimmed(row, 0),
		Username:     trimmed(row, 1),
		FullName:     trimmed(row, 2),
		Email:        strings.ToLower(trimmed(row, 3)),
		PasswordHash: cell(row, 4),
		CreatedAt:    cell(row, 5),
		Role:         model.NormalizeRole(cell(row, 6)),
	}
}

func UserToRow(u *model.User) []string {
	return []string{
		u.ID,
		u.Username,
		u.FullName,
		u.Email,
		u.PasswordHash,
		u.CreatedAt,
		model.NormalizeRole(u.Role),
	}
}

func ShopFromRow(row []string) *model.Shop {
	if len(row) < 4 || blankID(row) {
		return nil
	}
	id := trimmed(row, 0)
	createdAt := cell(row, 3)
	return &model.Shop{
		ID:        &id,
		UserID:    trimmed(row, 1),
		Name:      cell(row, 2),
		CreatedAt: &createdAt,
	}
}

func ShopToRow(s *model.Shop) []string {
	var id, createdAt string
	if s.ID != nil {
		id = *s.ID
	}
	if s.CreatedAt != nil {
		createdAt = *s.CreatedAt
	}
	return []string{id, s.UserID, s.Name, createdAt}
}
