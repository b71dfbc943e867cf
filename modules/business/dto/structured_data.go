package dto

type BreadcrumbItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type BreadcrumbRequest struct {
	Items []BreadcrumbItem `json:"items" validate:"required,min=1,dive"`
}

type ValidationReport struct {
	Valid        bool   `json:"valid"`
	MissingField string `json:"missingField,omitempty"`
}
