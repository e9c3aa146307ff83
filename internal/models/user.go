package models

// UserRole enumerates the roles a session token can carry.
type UserRole string

const (
	RoleUser    UserRole = "user"
	RoleAdmin   UserRole = "admin"
	RoleAnalyst UserRole = "analyst"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleAnalyst:
		return true
	}
	return false
}

// User is the public view of an account. The password hash never leaves the
// repository except through FullUser for credential checks.
type User struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Username    string   `json:"username"`
	Role        UserRole `json:"role"`
	Timestamps
}

// OwnerID implements authz.OwnedResource; a user owns itself.
func (u *User) OwnerID() int64 { return u.ID }

// FullUser carries the stored password hash for login verification.
type FullUser struct {
	User
	Password string `json:"-"`
}

// Artist is a user seen through the album/track ownership relation: the
// public profile without account fields.
type Artist struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// ArtistView projects the user onto its artist profile.
func (u *User) ArtistView() Artist {
	return Artist{ID: u.ID, Name: u.Name, Description: u.Description}
}

// CreateUserRequest is the register payload. Role is assigned server-side.
type CreateUserRequest struct {
	Name        string  `json:"name" form:"name" validate:"required,min=1,max=500"`
	Description *string `json:"description,omitempty" form:"description"`
	Username    string  `json:"username" form:"username" validate:"required,min=1,max=100"`
	Password    string  `json:"password" form:"password" validate:"required,min=1"`
}

// NewRoleUser is the repository-facing create payload: request fields plus
// the resolved role and the bcrypt hash in place of the plaintext.
type NewRoleUser struct {
	Name        string
	Description *string
	Username    string
	Password    string
	Role        UserRole
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginRegisterResponse is returned by register and login.
type LoginRegisterResponse struct {
	Token string `json:"token"`
	Next  string `json:"next"`
}

// UpdateUserRequest is a field-level merge: only set fields are applied.
type UpdateUserRequest struct {
	ID          *int64  `json:"id,omitempty" query:"id"`
	Name        *string `json:"name,omitempty" query:"name" validate:"omitempty,min=1,max=500"`
	Description *string `json:"description,omitempty" query:"description"`
	Username    *string `json:"username,omitempty" query:"username" validate:"omitempty,min=1,max=100"`
}

// UpdateUserRoleRequest additionally allows a role change; admin only.
type UpdateUserRoleRequest struct {
	UpdateUserRequest
	Role *UserRole `json:"role,omitempty" query:"role"`
}

// UserSearchParams filters the user listing. Name is fuzzy, username exact.
type UserSearchParams struct {
	SearchParams
	Username string `query:"username"`
}

// ArtistSearchParams filters the artist listing.
type ArtistSearchParams struct {
	SearchParams
}

// Subscription links a subscriber to an artist.
type Subscription struct {
	SubscriberID int64 `json:"subscriberId"`
	ArtistID     int64 `json:"artistId"`
}

// SubscribeRequest targets an artist; the subscriber defaults to the caller.
type SubscribeRequest struct {
	SubscriberID *int64 `json:"subscriber_id,omitempty" query:"subscriber_id"`
	ArtistID     int64  `json:"artist_id" query:"artist_id" validate:"required"`
}

// SubscriptionListParams pages through a user's subscriptions or subscribers.
type SubscriptionListParams struct {
	ID    *int64 `json:"id,omitempty" query:"id"`
	Skip  int    `query:"skip" validate:"gte=0"`
	Limit int    `query:"limit" validate:"gte=0,lte=1000"`
}

// SubscriberCount is the response of the subscriber-count endpoint.
type SubscriberCount struct {
	Count int64 `json:"count"`
}
