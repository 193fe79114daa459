package entity

// Identity is the authenticated caller as decoded from a bearer token.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

func (i *Identity) IsAdmin() bool { return i != nil && i.Role == RoleAdmin }

// ViewerID returns the caller id or "" for anonymous requests.
func (i *Identity) ViewerID() string {
	if i == nil {
		return ""
	}
	return i.ID
}
