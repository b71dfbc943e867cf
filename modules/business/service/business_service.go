package service

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"castle-admin/core/config"
	"castle-admin/core/errors"
	"castle-admin/core/logger"
	"castle-admin/modules/business/entity"
)

const (
	loadConfigMessage  = "Failed to load business configuration. Please ensure config/business.json exists and is valid."
	loadPresetsMessage = "Failed to load industry presets. Please ensure config/industry-presets.json exists and is valid."
)

// BusinessService owns the process-wide business configuration. The file is
// read on first successful Load and never again; failed loads are retried on
// the next call.
type BusinessService struct {
	configPath  string
	presetsPath string
	lookupEnv   func(string) (string, bool)

	mu      sync.Mutex
	cached  *entity.BusinessConfig
	presets *entity.IndustryPresets
}

func NewBusinessService(cfg config.BusinessConfig) *BusinessService {
	return &BusinessService{
		configPath:  cfg.ConfigPath,
		presetsPath: cfg.PresetsPath,
		lookupEnv:   os.LookupEnv,
	}
}

// WithEnv swaps the environment lookup. Used by tests.
func (s *BusinessService) WithEnv(lookup func(string) (string, bool)) *BusinessService {
	s.lookupEnv = lookup
	return s
}

func (s *BusinessService) Load() (entity.BusinessConfig, *errors.AppError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return clone(*s.cached), nil
	}

	var cfg entity.BusinessConfig
	if err := readJSON(s.configPath, &cfg); err != nil {
		logger.Error("BusinessService:Load:Error", "path", s.configPath, "error", err)
		return entity.BusinessConfig{}, errors.NewAppError(errors.ErrConfigLoad, loadConfigMessage, err)
	}
	OverlayEnv(&cfg, s.lookupEnv)

	if ok, field := Validate(cfg); !ok {
		logger.Warn("BusinessService:Load:Incomplete", "missing_field", field)
	}

	s.cached = &cfg
	logger.Info("BusinessService:Load:Success", "business", cfg.Business.Name, "industry", cfg.Business.Industry)
	return clone(cfg), nil
}

func (s *BusinessService) Presets() (entity.IndustryPresets, *errors.AppError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.presets != nil {
		return *s.presets, nil
	}

	var presets entity.IndustryPresets
	if err := readJSON(s.presetsPath, &presets); err != nil {
		logger.Error("BusinessService:Presets:Error", "path", s.presetsPath, "error", err)
		return entity.IndustryPresets{}, errors.NewAppError(errors.ErrConfigLoad, loadPresetsMessage, err)
	}
	s.presets = &presets
	return presets, nil
}

// ApplyIndustryPreset overlays the named preset's business, services and seo
// sections on the base config. Branding and features always come from the base.
func (s *BusinessService) ApplyIndustryPreset(industry string) (entity.BusinessConfig, *errors.AppError) {
	base, appErr := s.Load()
	if appErr != nil {
		return entity.BusinessConfig{}, appErr
	}
	presets, appErr := s.Presets()
	if appErr != nil {
		return entity.BusinessConfig{}, appErr
	}

	preset, ok := presets.Presets[industry]
	if !ok {
		logger.Warn("BusinessService:ApplyIndustryPreset:NotFound", "industry", industry)
		return base, nil
	}
	return MergePreset(base, preset), nil
}

// Features returns the feature flags, or all-false when config cannot load.
func (s *BusinessService) Features() entity.FeaturesConfig {
	cfg, appErr := s.Load()
	if appErr != nil {
		return entity.FeaturesConfig{}
	}
	return cfg.Features
}

func MergePreset(base entity.BusinessConfig, preset entity.IndustryPreset) entity.BusinessConfig {
	merged := clone(base)

	b := &merged.Business
	p := preset.Business
	setIf(&b.Name, p.Name)
	setIf(&b.ShortName, p.ShortName)
	setIf(&b.Description, p.Description)
	setIf(&b.Tagline, p.Tagline)
	setIf(&b.Industry, p.Industry)
	setIf(&b.ServiceArea, p.ServiceArea)
	setIf(&b.Website, p.Website)
	if p.Contact != (entity.BusinessContact{}) {
		b.Contact = p.Contact
	}

	setIf(&merged.Services.Terminology, preset.Services.Terminology)
	setIf(&merged.Services.PageTitle, preset.Services.PageTitle)
	if preset.Services.Categories != nil {
		merged.Services.Categories = slices.Clone(preset.Services.Categories)
	}

	setIf(&merged.SEO.MetaTitle, preset.SEO.MetaTitle)
	setIf(&merged.SEO.MetaDescription, preset.SEO.MetaDescription)
	setIf(&merged.SEO.Keywords, preset.SEO.Keywords)
	setIf(&merged.SEO.OGImage, preset.SEO.OGImage)

	return merged
}

// Validate reports whether the required fields are present, and the first
// one missing if not.
func Validate(cfg entity.BusinessConfig) (bool, string) {
	required := []struct {
		field string
		value string
	}{
		{"business.name", cfg.Business.Name},
		{"business.shortName", cfg.Business.ShortName},
		{"business.description", cfg.Business.Description},
		{"business.industry", cfg.Business.Industry},
		{"business.contact.phone", cfg.Business.Contact.Phone},
		{"business.contact.email", cfg.Business.Contact.Email},
		{"services.terminology", cfg.Services.Terminology},
	}
	for _, r := range required {
		if r.value == "" {
			return false, r.field
		}
	}
	return true, ""
}

// ConfigValue walks a dotted JSON path such as "business.contact.email" and
// returns fallback when any segment is missing or the value has another type.
func ConfigValue[T any](cfg entity.BusinessConfig, path string, fallback T) T {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fallback
	}
	var current any
	if err := json.Unmarshal(raw, &current); err != nil {
		return fallback
	}

	for _, key := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return fallback
		}
		current, ok = obj[key]
		if !ok {
			return fallback
		}
	}
	if current == nil {
		return fallback
	}

	if v, ok := current.(T); ok {
		return v
	}
	b, err := json.Marshal(current)
	if err != nil {
		return fallback
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return fallback
	}
	return out
}

func readJSON(path string, dest any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func clone(cfg entity.BusinessConfig) entity.BusinessConfig {
	cfg.Services.Categories = slices.Clone(cfg.Services.Categories)
	return cfg
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
