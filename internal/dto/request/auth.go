package request

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	// Identity matches against username OR email
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}
