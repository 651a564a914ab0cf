package models

type Role string

const (
	RoleMember Role = "member"
	RoleWorker Role = "worker"
)

// ParseRole maps an identity provider account type onto a Role. Helpers and
// chefs are both workers.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "member":
		return RoleMember, true
	case "worker", "helper", "chef":
		return RoleWorker, true
	}
	return "", false
}

// Actor is the authenticated caller of a booking operation.
type Actor struct {
	ID   string
	Role Role
}

func Member(id string) Actor { return Actor{ID: id, Role: RoleMember} }

func Worker(id string) Actor { return Actor{ID: id, Role: RoleWorker} }
