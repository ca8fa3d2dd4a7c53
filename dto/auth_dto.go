package dto

type LoginDTO struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type SessionUserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type SeedAdminResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
