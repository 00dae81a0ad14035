package user

// Profile is the backend's user shape. Read-mostly: the web app only ever
// updates fullName and phoneNumber.
type Profile struct {
	ID              int    `json:"id"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	Role            Role   `json:"role"`
	ProfilePhotoURL string `json:"profilePhotoUrl,omitempty"`
}

// Placeholder synthesizes a minimal profile for an id the users endpoint
// could not resolve. It carries only the id; a name is never fabricated.
func Placeholder(id int) *Profile {
	return &Profile{ID: id}
}
