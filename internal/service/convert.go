package service

import (
	"github.com/mmynk/secretsanta/internal/models"
	"github.com/mmynk/secretsanta/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		Id:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

// toAPIGroup converts a group as seen by callerID.
func toAPIGroup(g *models.Group, callerID string) *api.Group {
	return &api.Group{
		Id:          g.ID,
		Name:        g.Name,
		AdminId:     g.AdminID,
		CreatedAt:   g.CreatedAt,
		LastDrawnAt: g.LastDrawnAt,
		DrawCount:   g.DrawCount,
		IsAdmin:     g.IsAdmin(callerID),
	}
}

func toAPIGroups(groups []*models.Group, callerID string) []*api.Group {
	out := make([]*api.Group, len(groups))
	for i, g := range groups {
		out[i] = toAPIGroup(g, callerID)
	}
	return out
}

func toAPIMember(m *models.Member) *api.Member {
	return &api.Member{
		Id:         m.ID,
		GroupId:    m.GroupID,
		UserId:     m.UserID,
		Name:       m.Name,
		HasAccount: m.HasAccount(),
	}
}

func toAPIJoinRequest(r *models.JoinRequest) *api.JoinRequest {
	return &api.JoinRequest{
		Id:        r.ID,
		GroupId:   r.GroupID,
		GroupName: r.GroupName,
		UserId:    r.UserID,
		UserName:  r.UserName,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}
