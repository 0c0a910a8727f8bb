package dto

type CategoryRequest struct {
	Name        string `json:"name" binding:"required" validate:"required,min=1,max=64"`
	Description string `json:"description" validate:"max=256"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=64"`
	Description *string `json:"description" validate:"omitempty,max=256"`
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
