package auth

import "expense_tracker/internal/model"

// Tokens - пара токенов из cookies запроса
type Tokens struct {
	Access  string
	Refresh string
}

// Facade - обёртки над Verifier под типовые проверки маршрутов
type Facade struct {
	verifier *Verifier
}

func NewFacade(verifier *Verifier) *Facade {
	return &Facade{verifier: verifier}
}

// RequireAuth - любая согласованная пара токенов
func (f *Facade) RequireAuth(t Tokens) Result {
	return f.verifier.Verify(t.Access, t.Refresh, Simple{})
}

// RequireUser - пара должна принадлежать username.
// Пустой username означает текущего пользователя из refresh токена
func (f *Facade) RequireUser(t Tokens, username string) Result {
	if username == "" {
		username = f.caller(t).Username
	}
	return f.verifier.Verify(t.Access, t.Refresh, User{Username: username})
}

func (f *Facade) RequireAdmin(t Tokens) Result {
	return f.verifier.Verify(t.Access, t.Refresh, Admin{})
}

// RequireGroup - email вызывающего должен входить в emails
func (f *Facade) RequireGroup(t Tokens, emails []string) Result {
	return f.verifier.Verify(t.Access, t.Refresh, Group{Emails: emails})
}

// RequireUserOrAdmin проверяет оба требования. Второе значение - прошла ли именно проверка администратора.
// При отказе возвращается результат проверки пользователя
func (f *Facade) RequireUserOrAdmin(t Tokens, username string) (Result, bool) {
	user := f.RequireUser(t, username)
	admin := f.RequireAdmin(t)
	if admin.Authorized {
		return admin, true
	}
	return user, false
}

// RequireGroupOrAdmin - то же для маршрутов группы
func (f *Facade) RequireGroupOrAdmin(t Tokens, emails []string) (Result, bool) {
	group := f.RequireGroup(t, emails)
	admin := f.RequireAdmin(t)
	if admin.Authorized {
		return admin, true
	}
	return group, false
}

// caller - идентичность из refresh токена; пустая, если токен не проходит проверку
func (f *Facade) caller(t Tokens) model.Identity {
	claims, err := f.verifier.codec.Verify(t.Refresh)
	if err != nil {
		return model.Identity{}
	}
	return identityOf(claims)
}
