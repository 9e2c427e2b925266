package models

// GalleryCategories is the closed set of portfolio categories.
var GalleryCategories = []string{
	"Bridal Makeup",
	"Hair Installation",
	"Glam Makeup",
	"Natural Look",
	"Special Events",
}

type GalleryImage struct {
	OrderedItem
	URL      string `gorm:"not null" json:"url" validate:"required,http_url"` // external reference, never stored here
	Alt      string `json:"alt" validate:"max=300"`
	Category string `gorm:"type:varchar(64);index" json:"category" validate:"required,gallery_category"`
	Title    string `json:"title" validate:"max=120"`
}

func (GalleryImage) TableName() string {
	return "gallery_images"
}

func (g *GalleryImage) Group() string {
	return g.Category
}
