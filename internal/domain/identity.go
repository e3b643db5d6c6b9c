package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the caller of a request: nobody, a regular user, or an admin.
// The zero value is anonymous.
type Identity struct {
	ID   int64
	Role string
}

func Anonymous() Identity { return Identity{} }

func (i Identity) IsAnonymous() bool { return i.ID == 0 }

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// CanManage reports whether the identity may mutate a resource owned by
// ownerID: the owner themselves or any admin.
func (i Identity) CanManage(ownerID int64) bool {
	if i.IsAnonymous() {
		return false
	}
	return i.IsAdmin() || i.ID == ownerID
}
