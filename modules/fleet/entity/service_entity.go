package entity

import (
	"strings"
	"time"

	"castle-admin/core/entity"
)

type MaintenanceStatus string

const (
	MaintenanceAvailable    MaintenanceStatus = "available"
	MaintenanceInProgress   MaintenanceStatus = "maintenance"
	MaintenanceOutOfService MaintenanceStatus = "out_of_service"
)

func ParseMaintenanceStatus(s string) (MaintenanceStatus, bool) {
	switch MaintenanceStatus(s) {
	case MaintenanceAvailable, MaintenanceInProgress, MaintenanceOutOfService:
		return MaintenanceStatus(s), true
	}
	return "", false
}

// Service is a rentable catalog item, usually a bouncy castle.
type Service struct {
	Name                 string            `db:"name"`
	Category             string            `db:"category"`
	Size                 string            `db:"size"`
	Price                float64           `db:"price"`
	Description          string            `db:"description"`
	ImageURL             *string           `db:"image_url"`
	MaintenanceStatus    MaintenanceStatus `db:"maintenance_status"`
	MaintenanceNotes     string            `db:"maintenance_notes"`
	MaintenanceStartDate *time.Time        `db:"maintenance_start_date"`
	MaintenanceEndDate   *time.Time        `db:"maintenance_end_date"`
	MaintenanceEventID   *string           `db:"maintenance_event_id"`
	entity.BaseEntity
}

type PaginatedServiceEntity = entity.Pagination[Service]

// Catalog resolves the castle a free-text booking refers to.
type Catalog []Service

// Match tries an exact name match on castleType, then a case-insensitive
// substring match either way against castleType or summary, then the
// "Castle:" marker in the description.
func (c Catalog) Match(castleType, summary, description string) *Service {
	castleType = strings.TrimSpace(castleType)
	if castleType != "" {
		for i := range c {
			if c[i].Name == castleType {
				return &c[i]
			}
		}
	}

	for _, candidate := range []string{castleType, summary} {
		if s := c.contains(candidate); s != nil {
			return s
		}
	}

	if marker := castleMarker(description); marker != "" {
		for i := range c {
			if strings.EqualFold(c[i].Name, marker) {
				return &c[i]
			}
		}
		return c.contains(marker)
	}
	return nil
}

func (c Catalog) contains(text string) *Service {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}
	for i := range c {
		name := strings.ToLower(c[i].Name)
		if name == "" {
			continue
		}
		if strings.Contains(text, name) || strings.Contains(name, text) {
			return &c[i]
		}
	}
	return nil
}

func castleMarker(description string) string {
	_, rest, ok := strings.Cut(description, "Castle:")
	if !ok {
		return ""
	}
	if i := strings.IndexAny(rest, "(\n"); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(rest)
}
