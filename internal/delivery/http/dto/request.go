package dto

type RegisterRequest struct {
	FullName    string `json:"full_name" validate:"required,max=120"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Role        string `json:"role" validate:"omitempty,oneof=seeker recruiter"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UpdateMeRequest struct {
	FullName    *string  `json:"full_name" validate:"omitempty,max=120"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	PhoneNumber *string  `json:"phone_number" validate:"omitempty,max=32"`
	Password    *string  `json:"password" validate:"omitempty,min=8,max=72"`
	Bio         *string  `json:"bio" validate:"omitempty,max=2000"`
	Skills      []string `json:"skills" validate:"omitempty,max=50,dive,max=60"`
}

type AdminCreateUserRequest struct {
	FullName    string `json:"full_name" validate:"required,max=120"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Role        string `json:"role" validate:"required,oneof=seeker recruiter admin"`
}

type AdminUpdateUserRequest struct {
	FullName    *string `json:"full_name" validate:"omitempty,max=120"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=32"`
	Role        *string `json:"role" validate:"omitempty,oneof=seeker recruiter admin"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type CompanyRequest struct {
	Name        string `json:"name" validate:"required,max=160"`
	Description string `json:"description" validate:"max=5000"`
	Website     string `json:"website" validate:"omitempty,url"`
	Location    string `json:"location" validate:"max=160"`
	Industry    string `json:"industry" validate:"max=120"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
}

type PostJobRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Description     string   `json:"description" validate:"max=10000"`
	Requirements    []string `json:"requirements" validate:"omitempty,max=50,dive,max=300"`
	Salary          float64  `json:"salary" validate:"gte=0"`
	Location        string   `json:"location" validate:"max=160"`
	JobType         string   `json:"job_type" validate:"max=60"`
	ExperienceLevel string   `json:"experience_level" validate:"max=60"`
	Positions       int      `json:"positions" validate:"gte=0,lte=1000"`
	CompanyID       string   `json:"company_id" validate:"required,uuid"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}
