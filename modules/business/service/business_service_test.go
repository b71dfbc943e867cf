package service

import (
	"os"
	"path/filepath"
	"testing"

	"castle-admin/core/config"
	"castle-admin/core/errors"
	"castle-admin/modules/business/dto"
	"castle-admin/modules/business/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const businessJSON = `{
  "business": {
    "name": "Bounce Kingdom",
    "shortName": "Bounce",
    "description": "Bouncy castle hire",
    "tagline": "Jump in",
    "industry": "event-services",
    "contact": {
      "phone": "01234 567890",
      "email": "hello@bounce.example",
      "address": {"street": "1 High St", "city": "Leeds", "state": "West Yorkshire", "zip": "LS1 1AA", "country": "UK"}
    },
    "serviceArea": "Leeds",
    "website": "https://bounce.example"
  },
  "services": {
    "terminology": "equipment",
    "categories": [{"id": "castles", "name": "Castles", "description": "Classic castles"}]
  },
  "branding": {"primaryColor": "#f00", "secondaryColor": "#0f0", "accentColor": "#00f", "logoPath": "/logo.png", "faviconPath": "/favicon.ico"},
  "seo": {"metaTitle": "Bounce Kingdom", "metaDescription": "Hire", "keywords": "castles", "ogImage": "/og.jpg"},
  "features": {"bookingSystem": true, "onlinePayments": false, "calendarIntegration": true, "emailNotifications": true, "adminPanel": true}
}`

const presetsJSON = `{
  "presets": {
    "venues": {
      "business": {"description": "Venue hire", "industry": "venues"},
      "services": {"terminology": "venues"},
      "seo": {"metaTitle": "Venues"}
    }
  }
}`

func writeFiles(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "business.json")
	presetsPath := filepath.Join(dir, "industry-presets.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(businessJSON), 0o600))
	require.NoError(t, os.WriteFile(presetsPath, []byte(presetsJSON), 0o600))
	return cfgPath, presetsPath
}

func noEnv(string) (string, bool) { return "", false }

func newService(t *testing.T) (*BusinessService, string) {
	cfgPath, presetsPath := writeFiles(t)
	svc := NewBusinessService(config.BusinessConfig{ConfigPath: cfgPath, PresetsPath: presetsPath}).WithEnv(noEnv)
	return svc, cfgPath
}

func TestLoadCachesAfterFirstRead(t *testing.T) {
	svc, cfgPath := newService(t)

	cfg, appErr := svc.Load()
	require.Nil(t, appErr)
	assert.Equal(t, "Bounce Kingdom", cfg.Business.Name)
	assert.True(t, cfg.Features.CalendarIntegration)

	require.NoError(t, os.Remove(cfgPath))
	again, appErr := svc.Load()
	require.Nil(t, appErr)
	assert.Equal(t, cfg, again)
}

func TestLoadReturnsCopies(t *testing.T) {
	svc, _ := newService(t)

	cfg, _ := svc.Load()
	cfg.Services.Categories[0].Name = "mutated"

	again, _ := svc.Load()
	assert.Equal(t, "Castles", again.Services.Categories[0].Name)
}

func TestLoadMissingFile(t *testing.T) {
	svc := NewBusinessService(config.BusinessConfig{ConfigPath: filepath.Join(t.TempDir(), "nope.json")}).WithEnv(noEnv)

	_, appErr := svc.Load()
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrConfigLoad, appErr.Code)
	assert.Equal(t, loadConfigMessage, appErr.Message)
}

func TestLoadOverlaysEnvironment(t *testing.T) {
	svc, _ := newService(t)
	svc.WithEnv(func(k string) (string, bool) {
		if k == "BUSINESS_PHONE" {
			return "07000 000000", true
		}
		return "", false
	})

	cfg, appErr := svc.Load()
	require.Nil(t, appErr)
	assert.Equal(t, "07000 000000", cfg.Business.Contact.Phone)
	assert.Equal(t, "hello@bounce.example", cfg.Business.Contact.Email)
}

func TestApplyIndustryPreset(t *testing.T) {
	svc, _ := newService(t)

	merged, appErr := svc.ApplyIndustryPreset("venues")
	require.Nil(t, appErr)
	assert.Equal(t, "Venue hire", merged.Business.Description)
	assert.Equal(t, "venues", merged.Business.Industry)
	assert.Equal(t, "Bounce Kingdom", merged.Business.Name)
	assert.Equal(t, "venues", merged.Services.Terminology)
	assert.Len(t, merged.Services.Categories, 1)
	assert.Equal(t, "Venues", merged.SEO.MetaTitle)
	assert.Equal(t, "/og.jpg", merged.SEO.OGImage)
	assert.Equal(t, "/logo.png", merged.Branding.LogoPath)
}

func TestApplyUnknownPresetReturnsBase(t *testing.T) {
	svc, _ := newService(t)

	base, _ := svc.Load()
	merged, appErr := svc.ApplyIndustryPreset("florists")
	require.Nil(t, appErr)
	assert.Equal(t, base, merged)
}

func TestValidate(t *testing.T) {
	svc, _ := newService(t)
	cfg, _ := svc.Load()

	ok, field := Validate(cfg)
	assert.True(t, ok)
	assert.Empty(t, field)

	cfg.Business.Contact.Email = ""
	ok, field = Validate(cfg)
	assert.False(t, ok)
	assert.Equal(t, "business.contact.email", field)

	ok, field = Validate(entity.BusinessConfig{})
	assert.False(t, ok)
	assert.Equal(t, "business.name", field)
}

func TestConfigValue(t *testing.T) {
	svc, _ := newService(t)
	cfg, _ := svc.Load()

	assert.Equal(t, "hello@bounce.example", ConfigValue(cfg, "business.contact.email", ""))
	assert.Equal(t, "fallback", ConfigValue(cfg, "business.contact.fax", "fallback"))
	assert.Equal(t, "fallback", ConfigValue(cfg, "business.name.first", "fallback"))
	assert.True(t, ConfigValue(cfg, "features.adminPanel", false))
	assert.Equal(t, "Leeds", ConfigValue(cfg, "business.contact.address", entity.Address{}).City)
}

func TestFromEnvDefaultsIndustry(t *testing.T) {
	info := FromEnv(func(k string) (string, bool) {
		if k == "BUSINESS_NAME" {
			return "Env Castles", true
		}
		return "", false
	})
	assert.Equal(t, "Env Castles", info.Name)
	assert.Equal(t, "event-services", info.Industry)
}

func TestStructuredData(t *testing.T) {
	svc, _ := newService(t)
	cfg, _ := svc.Load()

	doc := StructuredData(cfg)
	assert.Equal(t, "LocalBusiness", doc["@type"])
	assert.Equal(t, "https://bounce.example/logo.png", doc["logo"])
	assert.Equal(t, "Equipment Rental", doc["serviceType"])
	assert.Equal(t, []string{"https://bounce.example/og.jpg", "https://bounce.example/service-image-1.jpg", "https://bounce.example/service-image-2.jpg"}, doc["image"])

	catalog := doc["hasOfferCatalog"].(map[string]any)
	assert.Equal(t, "Bounce Kingdom Services", catalog["name"])
	assert.Len(t, catalog["itemListElement"], 1)

	cfg.Services.Terminology = "staff"
	assert.Equal(t, "Professional Services", StructuredData(cfg)["serviceType"])
}

func TestBreadcrumbs(t *testing.T) {
	doc := Breadcrumbs([]dto.BreadcrumbItem{{Name: "Home", URL: "/"}, {Name: "Castles", URL: "/castles"}})

	items := doc["itemListElement"].([]map[string]any)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0]["position"])
	assert.Equal(t, 2, items[1]["position"])
	assert.Equal(t, "/castles", items[1]["item"])
}
