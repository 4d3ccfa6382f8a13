package domain

type ProductType string

const (
	HighEndPhone  ProductType = "high_end_phone"
	MidRangePhone ProductType = "mid_range_phone"
	Laptop        ProductType = "laptop"
)

func Products() []ProductType {
	return []ProductType{HighEndPhone, MidRangePhone, Laptop}
}

func ParseProductType(s string) (ProductType, error) {
	for _, p := range Products() {
		if string(p) == s {
			return p, nil
		}
	}

	return "", &ProductError{Product: ProductType(s), Err: ErrUnknownProduct}
}

func (p ProductType) String() string {
	return string(p)
}

