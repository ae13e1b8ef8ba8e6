package category

// Name is the label an expense is filed under.
type Name string

const (
	TransferBetweenCards Name = "Transfer between cards"
	CashWithdrawn        Name = "Cash withdrawn"
	Food                 Name = "Food"
	Taxes                Name = "Taxes"
	Rent                 Name = "Rent"
)

type Category struct {
	Name     Name   `json:"name" bson:"name"`
	Color    string `json:"color" bson:"color"`
	IconName string `json:"icon_name" bson:"icon_name"`
}
