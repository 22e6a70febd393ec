package converter

import (
	"expense_tracker/internal/api/dto/category"
	"expense_tracker/internal/model"
)

func ToCategory(req category.CategoryRequest) *model.Category {
	return &model.Category{
		Type:  req.Type,
		Color: req.Color,
	}
}

func ToCategoryResponses(categories []model.Category) []category.CategoryResponse {
	result := make([]category.CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = category.CategoryResponse{
			Type:  c.Type,
			Color: c.Color,
		}
	}
	return result
}
