package entity

type BusinessConfig struct {
	Business BusinessInfo   `json:"business"`
	Services ServicesConfig `json:"services"`
	Branding BrandingConfig `json:"branding"`
	SEO      SEOConfig      `json:"seo"`
	Features FeaturesConfig `json:"features"`
}

type BusinessInfo struct {
	Name        string          `json:"name"`
	ShortName   string          `json:"shortName"`
	Description string          `json:"description"`
	Tagline     string          `json:"tagline"`
	Industry    string          `json:"industry"`
	Contact     BusinessContact `json:"contact"`
	ServiceArea string          `json:"serviceArea"`
	Website     string          `json:"website"`
}

type BusinessContact struct {
	Phone   string  `json:"phone"`
	Email   string  `json:"email"`
	Address Address `json:"address"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

type ServiceCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ServicesConfig struct {
	Terminology string            `json:"terminology"`
	PageTitle   string            `json:"pageTitle,omitempty"`
	Categories  []ServiceCategory `json:"categories"`
}

type BrandingConfig struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	AccentColor    string `json:"accentColor"`
	LogoPath       string `json:"logoPath"`
	FaviconPath    string `json:"faviconPath"`
}

type SEOConfig struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	Keywords        string `json:"keywords"`
	OGImage         string `json:"ogImage"`
}

type FeaturesConfig struct {
	BookingSystem       bool `json:"bookingSystem"`
	OnlinePayments      bool `json:"onlinePayments"`
	CalendarIntegration bool `json:"calendarIntegration"`
	EmailNotifications  bool `json:"emailNotifications"`
	AdminPanel          bool `json:"adminPanel"`
}

// IndustryPreset holds partial sections. Empty fields leave the base value.
type IndustryPreset struct {
	Business BusinessInfo   `json:"business"`
	Services ServicesConfig `json:"services"`
	SEO      SEOConfig      `json:"seo"`
}

type IndustryPresets struct {
	Presets map[string]IndustryPreset `json:"presets"`
}
