package dto

// DTOs for the daily log resources: meals, weight, water.

// CreateMealRequest: payload for logging a meal
type CreateMealRequest struct {
	MealType string `json:"meal_type" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Calories int    `json:"calories"`
	Notes    string `json:"notes"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
}

// UpdateMealRequest: partial update for a meal
type UpdateMealRequest struct {
	MealType *string `json:"meal_type,omitempty"`
	Name     *string `json:"name,omitempty"`
	Calories *int    `json:"calories,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	Date     *string `json:"date,omitempty"`
}

func (r UpdateMealRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.MealType != nil {
		fields["meal_type"] = *r.MealType
	}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Calories != nil {
		fields["calories"] = *r.Calories
	}
	if r.Notes != nil {
		fields["notes"] = *r.Notes
	}
	if r.Date != nil {
		fields["date"] = *r.Date
	}
	return fields
}

// CreateWeightRequest: payload for logging a weigh-in
type CreateWeightRequest struct {
	Date     string  `json:"date" binding:"required"` // YYYY-MM-DD
	WeightKg float64 `json:"weight_kg" binding:"required,gt=0"`
	Notes    string  `json:"notes"`
}

// UpdateWeightRequest: partial update for a weigh-in
type UpdateWeightRequest struct {
	Date     *string  `json:"date,omitempty"`
	WeightKg *float64 `json:"weight_kg,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
}

func (r UpdateWeightRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Date != nil {
		fields["date"] = *r.Date
	}
	if r.WeightKg != nil {
		fields["weight_kg"] = *r.WeightKg
	}
	if r.Notes != nil {
		fields["notes"] = *r.Notes
	}
	return fields
}

// CreateWaterRequest: payload for logging water intake
type CreateWaterRequest struct {
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	AmountML int    `json:"amount_ml" binding:"required,gt=0"`
}

// UpdateWaterRequest: partial update for a water entry
type UpdateWaterRequest struct {
	Date     *string `json:"date,omitempty"`
	AmountML *int    `json:"amount_ml,omitempty"`
}

func (r UpdateWaterRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Date != nil {
		fields["date"] = *r.Date
	}
	if r.AmountML != nil {
		fields["amount_ml"] = *r.AmountML
	}
	return fields
}

// WaterTotalResponse: a day's hydration total
type WaterTotalResponse struct {
	Date    string `json:"date"`
	TotalML int    `json:"total_ml"`
}
