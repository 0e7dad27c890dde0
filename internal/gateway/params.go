package gateway

type tripTypeParams struct {
	TripType string `json:"trip_type" binding:"required"`
}

type locationParams struct {
	Value string `json:"value"`
}

type moveParams struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

type recreateParams struct {
	MaxTimeToAssignOrder int `json:"max_time_to_assign_order" binding:"gte=0"`
}

type visibilityParams struct {
	Visible *bool `json:"visible" binding:"required"`
}
