package auth

import (
	"slices"

	"expense_tracker/internal/model"
)

// Причины отказа, которые уходят клиенту
const (
	CauseAuthorized      = "Authorized"
	CauseUnauthorized    = "Unauthorized"
	CauseMissingInfo     = "Token is missing information"
	CauseMismatchedUsers = "Mismatched users"
	CauseLoginAgain      = "Perform login again"
	CauseAnotherUser     = "You cannot request info about another user"
	CauseNotAdmin        = "You need to be admin to perform this action"
	CauseNotInGroup      = "You cannot request info about a group you don't belong to"
)

// RefreshedMessage - уведомление для клиента о выпуске нового access токена
const RefreshedMessage = "Access token has been refreshed. Remember to copy the new one in the headers of subsequent calls"

// Requirement - что маршрут требует от идентичности вызывающего.
// Реализации: Simple, User, Admin, Group
type Requirement interface {
	evaluate(id model.Identity) (ok bool, cause string)
}

// Simple - достаточно согласованной пары токенов
type Simple struct{}

// User - пара должна принадлежать именно этому пользователю
type User struct {
	Username string
}

// Admin - роль должна быть Admin
type Admin struct{}

// Group - email должен входить в список участников группы
type Group struct {
	Emails []string
}

func (Simple) evaluate(model.Identity) (bool, string) {
	return true, CauseAuthorized
}

func (r User) evaluate(id model.Identity) (bool, string) {
	if id.Username != r.Username {
		return false, CauseAnotherUser
	}
	return true, CauseAuthorized
}

func (Admin) evaluate(id model.Identity) (bool, string) {
	if id.Role != model.RoleAdmin {
		return false, CauseNotAdmin
	}
	return true, CauseAuthorized
}

func (r Group) evaluate(id model.Identity) (bool, string) {
	if !slices.Contains(r.Emails, id.Email) {
		return false, CauseNotInGroup
	}
	return true, CauseAuthorized
}
