package service

import "castle-admin/modules/business/entity"

const defaultIndustry = "event-services"

var envFields = []struct {
	name string
	set  func(b *entity.BusinessInfo, v string)
}{
	{"BUSINESS_NAME", func(b *entity.BusinessInfo, v string) { b.Name = v }},
	{"BUSINESS_SHORT_NAME", func(b *entity.BusinessInfo, v string) { b.ShortName = v }},
	{"BUSINESS_DESCRIPTION", func(b *entity.BusinessInfo, v string) { b.Description = v }},
	{"BUSINESS_TAGLINE", func(b *entity.BusinessInfo, v string) { b.Tagline = v }},
	{"BUSINESS_INDUSTRY", func(b *entity.BusinessInfo, v string) { b.Industry = v }},
	{"BUSINESS_PHONE", func(b *entity.BusinessInfo, v string) { b.Contact.Phone = v }},
	{"BUSINESS_EMAIL", func(b *entity.BusinessInfo, v string) { b.Contact.Email = v }},
	{"BUSINESS_ADDRESS_STREET", func(b *entity.BusinessInfo, v string) { b.Contact.Address.Street = v }},
	{"BUSINESS_ADDRESS_CITY", func(b *entity.BusinessInfo, v string) { b.Contact.Address.City = v }},
	{"BUSINESS_ADDRESS_STATE", func(b *entity.BusinessInfo, v string) { b.Contact.Address.State = v }},
	{"BUSINESS_ADDRESS_ZIP", func(b *entity.BusinessInfo, v string) { b.Contact.Address.Zip = v }},
	{"BUSINESS_ADDRESS_COUNTRY", func(b *entity.BusinessInfo, v string) { b.Contact.Address.Country = v }},
	{"BUSINESS_SERVICE_AREA", func(b *entity.BusinessInfo, v string) { b.ServiceArea = v }},
	{"BUSINESS_WEBSITE", func(b *entity.BusinessInfo, v string) { b.Website = v }},
}

// FromEnv builds the business section purely from BUSINESS_* variables.
// Industry defaults to event-services.
func FromEnv(lookup func(string) (string, bool)) entity.BusinessInfo {
	info := entity.BusinessInfo{Industry: defaultIndustry}
	for _, f := range envFields {
		if v, ok := lookup(f.name); ok && v != "" {
			f.set(&info, v)
		}
	}
	return info
}

// OverlayEnv replaces file values with any non-empty BUSINESS_* variables.
func OverlayEnv(cfg *entity.BusinessConfig, lookup func(string) (string, bool)) {
	if lookup == nil {
		return
	}
	for _, f := range envFields {
		if v, ok := lookup(f.name); ok && v != "" {
			f.set(&cfg.Business, v)
		}
	}
}
