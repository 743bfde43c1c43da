package models

// Car is a catalog listing. Favorites hold copies of it, so later catalog
// edits do not reach users' lists.
type Car struct {
	CarID                   string         `bson:"carId" json:"carId"`
	Brand                   string         `bson:"brand" json:"brand"`
	Model                   string         `bson:"model" json:"model"`
	Year                    string         `bson:"year" json:"year"`
	Price                   string         `bson:"price" json:"price"`
	Paragraph               string         `bson:"paragraph" json:"paragraph"`
	KmDriven                string         `bson:"kmDriven" json:"kmDriven"`
	FuelType                string         `bson:"fuelType" json:"fuelType"`
	Transmission            string         `bson:"transmission" json:"transmission"`
	Condition               string         `bson:"condition" json:"condition"`
	Location                string         `bson:"location" json:"location"`
	Images                  []string       `bson:"images" json:"images"`
	Features                []CarFeature   `bson:"features" json:"features"`
	TechnicalSpecifications []CarSpecEntry `bson:"technicalSpecifications" json:"technicalSpecifications"`
}

type CarFeature struct {
	Icon  string `bson:"icon" json:"icon"`
	Label string `bson:"label" json:"label"`
}

type CarSpecEntry struct {
	Label string `bson:"label" json:"label"`
	Value string `bson:"value" json:"value"`
}

// Snapshot returns a deep copy suitable for embedding in a favorites list.
func (c Car) Snapshot() Car {
	cp := c
	cp.Images = append([]string(nil), c.Images...)
	cp.Features = append([]CarFeature(nil), c.Features...)
	cp.TechnicalSpecifications = append([]CarSpecEntry(nil), c.TechnicalSpecifications...)
	return cp
}

// GroupByBrand buckets cars by brand in a single pass, keeping input order
// inside each bucket.
func GroupByBrand(cars []Car) map[string][]Car {
	grouped := make(map[string][]Car)
	for _, car := range cars {
		grouped[car.Brand] = append(grouped[car.Brand], car)
	}
	return grouped
}
