package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
)

type createOrderRequest struct {
	Items       []cartItemRequest `json:"items"`
	VoucherCode string            `json:"voucher_code,omitempty"`
}

type cartItemRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

type assignShipperRequest struct {
	OrderID   string `json:"order_id"`
	ShipperID string `json:"shipper_id"`
}

type assignShipperResponse struct {
	ID string `json:"id"`
}

type completeDeliveryRequest struct {
	ProofImages []string `json:"proof_images,omitempty"`
}

type failDeliveryRequest struct {
	Reason string `json:"reason"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Status     string              `json:"status"`
	Total      string              `json:"total"`
	Discount   string              `json:"discount"`
	FinalTotal string              `json:"final_total"`
	VoucherID  *string             `json:"voucher_id,omitempty"`
	Lines      []orderLineResponse `json:"lines"`
	Delivery   *deliveryResponse   `json:"delivery,omitempty"`
}

type orderLineResponse struct {
	ID         string `json:"id"`
	VariantID  string `json:"variant_id"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	FinalPrice string `json:"final_price"`
}

type deliveryResponse struct {
	AssignmentID string     `json:"assignment_id"`
	ShipperID    string     `json:"shipper_id"`
	Status       string     `json:"status"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
}

type priceResponse struct {
	VariantID        string  `json:"variant_id"`
	BasePrice        string  `json:"base_price"`
	FinalPrice       string  `json:"final_price"`
	PromotionID      *string `json:"promotion_id,omitempty"`
	PromotionName    string  `json:"promotion_name,omitempty"`
	PromotionPercent int     `json:"promotion_percent,omitempty"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func orderResponseFrom(detail queries.GetOrderQueryResponse) orderResponse {
	resp := orderResponse{
		ID:         detail.ID.String(),
		CustomerID: detail.CustomerID.String(),
		Status:     detail.Status,
		Total:      detail.Total.String(),
		Discount:   detail.Discount.String(),
		FinalTotal: detail.FinalTotal.String(),
		Lines:      make([]orderLineResponse, len(detail.Lines)),
	}
	if detail.VoucherID != nil {
		id := detail.VoucherID.String()
		resp.VoucherID = &id
	}
	for i, line := range detail.Lines {
		resp.Lines[i] = orderLineResponse{
			ID:         line.ID.String(),
			VariantID:  line.VariantID.String(),
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice.String(),
			FinalPrice: line.FinalPrice.String(),
		}
	}
	if detail.Delivery != nil {
		resp.Delivery = &deliveryResponse{
			AssignmentID: detail.Delivery.AssignmentID.String(),
			ShipperID:    detail.Delivery.ShipperID.String(),
			Status:       detail.Delivery.Status,
			DeliveredAt:  detail.Delivery.DeliveredAt,
		}
	}
	return resp
}

func priceResponseFrom(price queries.ResolvePricesQueryResponse) priceResponse {
	resp := priceResponse{
		VariantID:        price.VariantID.String(),
		BasePrice:        price.BasePrice.String(),
		FinalPrice:       price.FinalPrice.String(),
		PromotionName:    price.PromotionName,
		PromotionPercent: price.PromotionPercent,
	}
	if price.PromotionID != nil {
		id := price.PromotionID.String()
		resp.PromotionID = &id
	}
	return resp
}
