package dto

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

type LoginRequest struct {
	// Identity is either a username or an email address.
	Identity string `json:"identity" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateFileRequest struct {
	Name string `json:"name" binding:"required"`
}
