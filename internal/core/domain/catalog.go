package domain

// Category is a kind of home-maintenance service (plumbing, electrical...).
type Category struct {
	ID          string `json:"id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// ServiceProvider is a provider's public directory entry. Its ID is the
// provider's user id.
type ServiceProvider struct {
	ID          string  `json:"id" bson:"_id"`
	Name        string  `json:"name" bson:"name"`
	Email       string  `json:"email" bson:"email"`
	Phone       string  `json:"phone,omitempty" bson:"phone,omitempty"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	City        string  `json:"city,omitempty" bson:"city,omitempty"`
	Category    Ref     `json:"category" bson:"category"`
	HourlyRate  float64 `json:"hourly_rate,omitempty" bson:"hourly_rate,omitempty"`
	Rating      float64 `json:"rating,omitempty" bson:"rating,omitempty"`
}

// ProviderPatch carries the mutable fields of a provider profile. Nil fields
// are left untouched.
type ProviderPatch struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2"`
	Phone       *string  `json:"phone,omitempty" validate:"omitempty,min=6"`
	Description *string  `json:"description,omitempty"`
	City        *string  `json:"city,omitempty"`
	CategoryID  *string  `json:"category_id,omitempty"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
}

// Empty reports whether the patch changes nothing.
func (p ProviderPatch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Description == nil &&
		p.City == nil && p.CategoryID == nil && p.HourlyRate == nil
}

// DashboardMetrics is the aggregate served by /admin/dashboard.
type DashboardMetrics struct {
	Users                int                       `json:"users"`
	Clients              int                       `json:"clients"`
	Providers            int                       `json:"providers"`
	Admins               int                       `json:"admins"`
	Categories           int                       `json:"categories"`
	Appointments         int                       `json:"appointments"`
	AppointmentsByStatus map[AppointmentStatus]int `json:"appointments_by_status"`
}
