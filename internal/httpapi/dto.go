package httpapi

import (
	"time"

	"github.com/nikolayk812/checkout-demo/internal/checkout"
	"github.com/nikolayk812/checkout-demo/internal/domain"
)

// Decimal amounts travel as fixed-point strings, never binary floats.

type productDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
}

type addToCartResponse struct {
	Success   bool `json:"success"`
	CartItems int  `json:"cart_items"`
}

type lineItemDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total"`
}

type summaryDTO struct {
	Items []lineItemDTO `json:"items"`
	Total string        `json:"total"`
}

type completeFailureDTO struct {
	Error   string     `json:"error"`
	Preview summaryDTO `json:"preview"`
}

type orderItemDTO struct {
	Quantity int    `json:"quantity"`
	Total    string `json:"total"`
}

type orderDTO struct {
	ID        int64                   `json:"id"`
	CreatedAt time.Time               `json:"created_at"`
	Email     string                  `json:"email"`
	Items     map[string]orderItemDTO `json:"items"`
}

func toProductDTO(p domain.Product) productDTO {
	return productDTO{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price.Amount.StringFixed(2),
		Currency: p.Price.Currency.String(),
	}
}

func toSummaryDTO(s checkout.Summary) summaryDTO {
	items := make([]lineItemDTO, 0, len(s.Items))
	for _, li := range s.Items {
		items = append(items, lineItemDTO{
			Name:     li.Name,
			Quantity: li.Quantity,
			Total:    li.Total.StringFixed(2),
		})
	}

	return summaryDTO{Items: items, Total: s.Total.StringFixed(2)}
}

func toOrderDTO(o domain.Order) orderDTO {
	items := make(map[string]orderItemDTO, len(o.Items))
	for name, item := range o.Items {
		items[name] = orderItemDTO{
			Quantity: item.Quantity,
			Total:    item.Total.StringFixed(2),
		}
	}

	return orderDTO{
		ID:        o.ID,
		CreatedAt: o.CreatedAt,
		Email:     o.Email,
		Items:     items,
	}
}
