package domain

type User struct {
	ID           int32  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	DisplayName  string `json:"display_name"`
	AvatarURL    string `json:"avatar_url"`
	Department   string `json:"department"`
	Role         string `json:"role"`
	Subcategory  string `json:"subcategory"`
	ShipID       *int32 `json:"ship_id"`

	// Extended profile, disclosed only to accepted connections.
	Bio          string   `json:"bio"`
	Phone        string   `json:"phone"`
	ContactEmail string   `json:"contact_email"`
	Instagram    string   `json:"instagram"`
	Snapchat     string   `json:"snapchat"`
	Website      string   `json:"website"`
	Photos       []string `json:"photos,omitempty"` // Populated when needed

	IsAdmin   bool   `json:"is_admin"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}

type Ship struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	CruiseLine  string `json:"cruise_line"`
	CurrentPort string `json:"current_port"`
	UpdatedOn   string `json:"updated_on"`
}

type DeviceToken struct {
	ID        int32  `json:"id"`
	UserID    int32  `json:"user_id"`
	Token     string `json:"token"`
	Platform  string `json:"platform"`
	CreatedOn string `json:"created_on"`
}
