package categories

import "github.com/simplefinance/simplefinance/internal/model"

// DefaultNames lists the categories a new store starts with.
var DefaultNames = []string{
	model.Uncategorized,
	"Food",
	"Transport",
	"Shopping",
	"Utilities",
	"Health",
	"Entertainment",
	"Education",
	"Other",
}

// Default returns the default category map, every category without keywords.
func Default() *model.CategoryMap {
	cats := make([]model.Category, len(DefaultNames))
	for i, name := range DefaultNames {
		cats[i] = model.Category{Name: name}
	}
	return model.NewCategoryMap(cats...)
}
