package auth

import "vacancy_backend/internal/models"

// RoleSet - множество разрешенных ролей для маршрута
type RoleSet map[models.Role]struct{}

func NewRoleSet(roles ...models.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (s RoleSet) Allows(role models.Role) bool {
	_, ok := s[role]
	return ok
}

// IsAdmin проверяет является ли роль администраторской
func IsAdmin(role models.Role) bool {
	return role == models.RoleAdmin
}

// CanActFor - admin может действовать от имени любого аккаунта
func CanActFor(actorID string, role models.Role, targetID string) bool {
	return targetID == "" || targetID == actorID || IsAdmin(role)
}
