package model

import "strings"

// Role codes stored in the Users sheet.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// NormalizeRole maps anything that isn't "admin" to the seller role.
func NormalizeRole(raw string) string {
	if strings.ToLower(strings.TrimSpace(raw)) == RoleAdmin {
		return RoleAdmin
	}
	return RoleSeller
}
