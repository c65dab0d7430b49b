package cart

import "github.com/feregc/BiblioTech/model"

type AddItemReq struct {
	BookID int64      `json:"book_id" validate:"required,gt=0"`
	Mode   model.Mode `json:"mode" validate:"required,oneof=PURCHASE RENTAL"`
}

type UpdateQuantityReq struct {
	Mode     model.Mode `json:"mode" validate:"required,oneof=PURCHASE RENTAL"`
	Quantity int        `json:"quantity" validate:"gte=0"`
}

type UpdateRentDaysReq struct {
	Days int `json:"days" validate:"required,gt=0"`
}

type EntryResp struct {
	BookID   int64      `json:"book_id"`
	Mode     model.Mode `json:"mode"`
	Quantity int        `json:"quantity"`
	RentDays int        `json:"rent_days,omitempty"`
}

type CartResp struct {
	Items      []EntryResp `json:"items"`
	TotalItems int         `json:"total_items"`
	TotalPrice float64     `json:"total_price"`
}
