package domain

// ID is used across domain entities.
type ID int64

// RequestContext carries the authenticated identity through a request.
// It is passed explicitly; there is no global security holder.
type RequestContext struct {
	UserID ID     `json:"user_id"`
	Login  string `json:"login"`
	Role   string `json:"role"`
}
