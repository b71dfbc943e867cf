package service

import (
	"castle-admin/modules/business/dto"
	"castle-admin/modules/business/entity"
)

const schemaContext = "https://schema.org"

var openingHours = []string{
	"Mo-Fr 09:00-18:00",
	"Sa 09:00-17:00",
	"Su 10:00-16:00",
}

func serviceType(terminology string) string {
	switch terminology {
	case "equipment":
		return "Equipment Rental"
	case "venues":
		return "Venue Rental"
	default:
		return "Professional Services"
	}
}

// StructuredData renders the schema.org LocalBusiness JSON-LD document.
func StructuredData(cfg entity.BusinessConfig) map[string]any {
	b := cfg.Business
	site := b.Website

	offers := make([]map[string]any, 0, len(cfg.Services.Categories))
	for _, c := range cfg.Services.Categories {
		offers = append(offers, map[string]any{
			"@type": "Offer",
			"itemOffered": map[string]any{
				"@type":       "Service",
				"name":        c.Name,
				"description": c.Description,
			},
		})
	}

	return map[string]any{
		"@context":    schemaContext,
		"@type":       "LocalBusiness",
		"name":        b.Name,
		"description": b.Description,
		"url":         site,
		"logo":        site + cfg.Branding.LogoPath,
		"image": []string{
			site + cfg.SEO.OGImage,
			site + "/service-image-1.jpg",
			site + "/service-image-2.jpg",
		},
		"telephone": b.Contact.Phone,
		"email":     b.Contact.Email,
		"address": map[string]any{
			"@type":           "PostalAddress",
			"streetAddress":   b.Contact.Address.Street,
			"addressLocality": b.Contact.Address.City,
			"addressRegion":   b.Contact.Address.State,
			"postalCode":      b.Contact.Address.Zip,
			"addressCountry":  b.Contact.Address.Country,
		},
		"geo": map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  40.7128,
			"longitude": -74.0060,
		},
		"openingHours": openingHours,
		"areaServed": []map[string]any{
			{"@type": "City", "name": b.Contact.Address.City},
			{"@type": "State", "name": b.Contact.Address.State},
		},
		"serviceType": serviceType(cfg.Services.Terminology),
		"priceRange":  "$$",
		"hasOfferCatalog": map[string]any{
			"@type":           "OfferCatalog",
			"name":            b.Name + " Services",
			"itemListElement": offers,
		},
		"sameAs": []string{},
	}
}

func Breadcrumbs(items []dto.BreadcrumbItem) map[string]any {
	elements := make([]map[string]any, 0, len(items))
	for i, item := range items {
		elements = append(elements, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     item.Name,
			"item":     item.URL,
		})
	}
	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": elements,
	}
}
