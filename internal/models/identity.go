package models

// Identity is the signed-in user as reported by the auth service. Its
// presence or absence is what switches the reconciler between anonymous and
// authenticated operation.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// IsZero reports whether no identity is present.
func (i Identity) IsZero() bool {
	return i.UserID == ""
}
