package ledger

// Category is one of the closed set of furnace events a frame can be
// labeled with. IDs double as the classify keys in the terminal UI.
type Category struct {
	ID   string
	Name string
}

// Subcategory qualifies which phase of an event a frame shows. IDs double
// as the arming keys in the terminal UI.
type Subcategory struct {
	ID   string
	Name string
}

// NoEventID is the one category that never carries a subcategory.
const NoEventID = "0"

// Categories is the full label set, in display order.
var Categories = []Category{
	{ID: "0", Name: "no_event"},
	{ID: "1", Name: "furnace_filling"},
	{ID: "2", Name: "sintering_in_progress"},
	{ID: "3", Name: "pouring_in_progress"},
	{ID: "4", Name: "ladle_returning"},
	{ID: "5", Name: "furnace_empty"},
}

// Subcategories is the full event-phase set, in display order.
var Subcategories = []Subcategory{
	{ID: "i", Name: "start"},
	{ID: "m", Name: "middle"},
	{ID: "f", Name: "end"},
}

// CategoryByID looks up a category by its key.
func CategoryByID(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// SubcategoryByID looks up a subcategory by its key.
func SubcategoryByID(id string) (Subcategory, bool) {
	for _, s := range Subcategories {
		if s.ID == id {
			return s, true
		}
	}
	return Subcategory{}, false
}
