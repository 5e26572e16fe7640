package project

import (
	"credvault/internal/domain/rbac"
)

type Kind string

const (
	KindPersonal Kind = "personal"
	KindTeam     Kind = "team"
)

type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

func (p *Project) IsPersonal() bool {
	return p.Kind == KindPersonal
}

// Relation is a membership edge: a user belongs to a project with a role.
type Relation struct {
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	Role      rbac.Role `json:"role"`
}
