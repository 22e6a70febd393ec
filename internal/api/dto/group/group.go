package group

type CreateRequest struct {
	Name         string   `json:"name"`
	MemberEmails []string `json:"memberEmails"`
}

type EmailsRequest struct {
	Emails []string `json:"emails"`
}

type DeleteRequest struct {
	Name string `json:"name"`
}

type MemberResponse struct {
	Email  string `json:"email"`
	UserID int    `json:"user"`
}

type GroupResponse struct {
	Name    string           `json:"name"`
	Members []MemberResponse `json:"members"`
}

// AddResponse - ответ на создание группы и добавление участников
type AddResponse struct {
	Group           GroupResponse `json:"group"`
	AlreadyInGroup  []string      `json:"alreadyInGroup"`
	MembersNotFound []string      `json:"membersNotFound"`
}

type RemoveResponse struct {
	Group           GroupResponse `json:"group"`
	NotInGroup      []string      `json:"notInGroup"`
	MembersNotFound []string      `json:"membersNotFound"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
