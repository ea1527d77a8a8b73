package domain

// Category is an administrator-managed spending category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// CategoryUsage is a category together with the number of expenses referencing it.
type CategoryUsage struct {
	Category
	UsageCount int64 `json:"usage_count"`
}

// InUse reports whether any expense references the category.
func (c CategoryUsage) InUse() bool {
	return c.UsageCount > 0
}
