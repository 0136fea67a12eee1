package dto

type WishlistItem struct {
	Id      int      `json:"id"`
	Product *Product `json:"product"`
	AddedAt string   `json:"added_at,omitempty"`
}

type WishlistMutationRequest struct {
	ProductId int `json:"product_id" validate:"required"`
}
