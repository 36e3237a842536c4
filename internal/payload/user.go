package payload

type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,username"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,password"`
}
