package rental

type ExtendReq struct {
	Days int `json:"days" validate:"required,gt=0"`
}
