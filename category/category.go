package category

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// catalog is ordered; charts list categories in this order.
var catalog = []Category{
	{Name: TransferBetweenCards, Color: "#4E79A7", IconName: "fa-right-left"},
	{Name: CashWithdrawn, Color: "#F28E2B", IconName: "fa-money-bill"},
	{Name: Food, Color: "#59A14F", IconName: "fa-utensils"},
	{Name: Taxes, Color: "#E15759", IconName: "fa-file-invoice-dollar"},
	{Name: Rent, Color: "#76B7B2", IconName: "fa-house"},
}

// All returns the fixed expense categories in display order.
func All() []Category {
	out := make([]Category, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the category labels in display order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, c := range catalog {
		names = append(names, string(c.Name))
	}
	return names
}

// Colors returns the chart colors matching Names.
func Colors() []string {
	colors := make([]string, 0, len(catalog))
	for _, c := range catalog {
		colors = append(colors, c.Color)
	}
	return colors
}

// IsKnown reports whether name is one of the fixed categories.
func IsKnown(name Name) bool {
	for _, c := range catalog {
		if c.Name == name {
			return true
		}
	}
	return false
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Get all expense categories
func (h *Handler) HandleGetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, All())
}
