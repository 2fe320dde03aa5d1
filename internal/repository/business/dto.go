package business

import (
	"strconv"
	"strings"
	"time"

	"github.com/vetdirhq/vetdir/internal/domain"
	"github.com/vetdirhq/vetdir/internal/domain/geo"
	"github.com/vetdirhq/vetdir/internal/domain/membership"
)

// buildHashFields converts a Business into a flat map[string]string for HSET.
// Coordinates are written only when known; parseHashFields treats their
// absence as "never geocoded".
func buildHashFields(b *domain.Business) map[string]string {
	m := map[string]string{
		"name":              b.Name,
		"description":       b.Description,
		"areas_served":      b.AreasServed,
		"status":            string(b.Status),
		"city":              b.City,
		"state":             b.State,
		"zip_code":          b.ZipCode,
		"featured":          formatBool(b.Featured),
		"verified":          formatBool(b.Verified),
		"emergency_service": formatBool(b.EmergencyService),
		"insured":           formatBool(b.Insured),
		"bonded":            formatBool(b.Bonded),
		"licensed":          formatBool(b.Licensed),
		"employee_count":    strconv.Itoa(b.EmployeeCount),
		"years_in_business": strconv.Itoa(b.YearsInBusiness),
		"owner_tier":        string(b.OwnerTier),
		"military_verified": formatBool(b.MilitaryVerified),
		"created_at":        b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if b.Location != nil {
		m["latitude"] = strconv.FormatFloat(b.Location.Lat, 'f', -1, 64)
		m["longitude"] = strconv.FormatFloat(b.Location.Lng, 'f', -1, 64)
	}
	if len(b.CategoryIDs) > 0 {
		m["category_ids"] = joinIDs(b.CategoryIDs)
	}
	if len(b.CategoryNames) > 0 {
		m["category_names"] = strings.Join(b.CategoryNames, "|")
	}
	return m
}

// parseHashFields converts a flat hash map back into a Business.
func parseHashFields(id int64, m map[string]string) domain.Business {
	b := domain.Business{
		ID:               id,
		Name:             m["name"],
		Description:      m["description"],
		AreasServed:      m["areas_served"],
		Status:           domain.Status(m["status"]),
		City:             m["city"],
		State:            m["state"],
		ZipCode:          m["zip_code"],
		Featured:         m["featured"] == "1",
		Verified:         m["verified"] == "1",
		EmergencyService: m["emergency_service"] == "1",
		Insured:          m["insured"] == "1",
		Bonded:           m["bonded"] == "1",
		Licensed:         m["licensed"] == "1",
		OwnerTier:        membership.Tier(m["owner_tier"]),
		MilitaryVerified: m["military_verified"] == "1",
	}
	b.EmployeeCount, _ = strconv.Atoi(m["employee_count"])
	b.YearsInBusiness, _ = strconv.Atoi(m["years_in_business"])

	if latStr, ok := m["latitude"]; ok {
		if lat, err := strconv.ParseFloat(latStr, 64); err == nil {
			if lng, err := strconv.ParseFloat(m["longitude"], 64); err == nil {
				b.Location = &geo.Point{Lat: lat, Lng: lng}
			}
		}
	}
	if ids := m["category_ids"]; ids != "" {
		b.CategoryIDs = splitIDs(ids)
	}
	if names := m["category_names"]; names != "" {
		b.CategoryNames = strings.Split(names, "|")
	}
	if ts, err := time.Parse(time.RFC3339, m["created_at"]); err == nil {
		b.CreatedAt = ts
	}
	return b
}

func formatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func splitIDs(s string) []int64 {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		if id, err := strconv.ParseInt(p, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
