package domain

// Type says whether a property is offered for sale or for rent.
type Type string

const (
	TypeSale Type = "sale"
	TypeRent Type = "rent"
)

func ValidType(t Type) bool {
	return t == TypeSale || t == TypeRent
}

type Category string

const (
	CategoryApartment Category = "apartment"
	CategoryHouse     Category = "house"
	CategoryOffice    Category = "office"
	CategoryVilla     Category = "villa"
	CategoryStudio    Category = "studio"
)

func Categories() []Category {
	return []Category{CategoryApartment, CategoryHouse, CategoryOffice, CategoryVilla, CategoryStudio}
}

func ValidCategory(c Category) bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
	StatusRented    Status = "rented"
)

func Statuses() []Status {
	return []Status{StatusAvailable, StatusSold, StatusRented}
}

func ValidStatus(s Status) bool {
	for _, v := range Statuses() {
		if s == v {
			return true
		}
	}
	return false
}

// MaxImages caps the gallery size per property.
const MaxImages = 5

type Property struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	City     string   `json:"city"`
	Price    float64  `json:"price"`
	Surface  float64  `json:"surface"`
	Type     Type     `json:"type"`
	Category Category `json:"category"`
	Status   Status   `json:"status"`
	Images   []string `json:"images"`
}

// CreateProperty is the payload for new listings. Status is not part of it;
// every listing starts out available.
type CreateProperty struct {
	Title    string   `json:"title"`
	City     string   `json:"city"`
	Price    float64  `json:"price"`
	Surface  float64  `json:"surface"`
	Type     Type     `json:"type"`
	Category Category `json:"category"`
	Images   []string `json:"images,omitempty"`
}

// UpdateProperty carries a partial change set. Nil fields keep their
// current value on the record.
type UpdateProperty struct {
	Title    *string   `json:"title,omitempty"`
	City     *string   `json:"city,omitempty"`
	Price    *float64  `json:"price,omitempty"`
	Surface  *float64  `json:"surface,omitempty"`
	Type     *Type     `json:"type,omitempty"`
	Category *Category `json:"category,omitempty"`
	Status   *Status   `json:"status,omitempty"`
	Images   *[]string `json:"images,omitempty"`
}
