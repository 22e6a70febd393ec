package converter

import (
	"expense_tracker/internal/api/dto/group"
	"expense_tracker/internal/model"
)

func ToGroupResponse(g *model.Group) group.GroupResponse {
	members := make([]group.MemberResponse, len(g.Members))
	for i, m := range g.Members {
		members[i] = group.MemberResponse{
			Email:  m.Email,
			UserID: m.UserID,
		}
	}
	return group.GroupResponse{
		Name:    g.Name,
		Members: members,
	}
}

func ToGroupResponses(groups []model.Group) []group.GroupResponse {
	result := make([]group.GroupResponse, len(groups))
	for i := range groups {
		result[i] = ToGroupResponse(&groups[i])
	}
	return result
}

func ToAddResponse(c *model.GroupChange) group.AddResponse {
	return group.AddResponse{
		Group:           ToGroupResponse(c.Group),
		AlreadyInGroup:  orEmpty(c.AlreadyInGroup),
		MembersNotFound: orEmpty(c.MembersNotFound),
	}
}

func ToRemoveResponse(c *model.GroupChange) group.RemoveResponse {
	return group.RemoveResponse{
		Group:           ToGroupResponse(c.Group),
		NotInGroup:      orEmpty(c.NotInGroup),
		MembersNotFound: orEmpty(c.MembersNotFound),
	}
}

// orEmpty - в JSON список всегда массив, а не null
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
