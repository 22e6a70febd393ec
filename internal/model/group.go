package model

type Member struct {
	Email  string
	UserID int
}

type Group struct {
	Name    string
	Members []Member
}

// Emails возвращает адреса участников группы в порядке вступления
func (g *Group) Emails() []string {
	emails := make([]string, len(g.Members))
	for i, m := range g.Members {
		emails[i] = m.Email
	}
	return emails
}

// GroupChange - результат создания группы или изменения её состава
type GroupChange struct {
	Group *Group
	// AlreadyInGroup - адреса, уже состоящие в какой-либо группе
	AlreadyInGroup []string
	// NotInGroup - адреса, которых нет в этой группе (при удалении)
	NotInGroup []string
	// MembersNotFound - адреса, для которых нет пользователя
	MembersNotFound []string
}
