package components

import "github.com/CFP106020087/Jason-more-rf-bauble-sub000/core"

// FieldDescriptor describes a core status field for reports.
type FieldDescriptor struct {
	ID           string  // Unique identifier
	Label        string  // Display name
	Format       string  // Printf format (e.g., "%.2f")
	Min          float64 // Minimum value (for bars)
	Max          float64 // Maximum value (for bars)
	IsBar        bool    // True to render as progress bar
	ShowWhenZero bool    // Show even when value is zero
	Group        string  // Logical grouping
}

// CoreStatus is a flattened view of one core for reporting.
type CoreStatus struct {
	Energy       uint64
	Capacity     uint64
	Balance      core.Balance
	Installed    int
	Active       int
	TotalSaved   uint64
	SessionSaved uint64
}

// CoreFieldDescriptors returns metadata for CoreStatus fields.
func CoreFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "fraction", Label: "Charge", Format: "%.2f", Min: 0, Max: 1, IsBar: true, ShowWhenZero: true, Group: "energy"},
		{ID: "energy", Label: "Energy", Format: "%.0f", ShowWhenZero: true, Group: "energy"},
		{ID: "capacity", Label: "Capacity", Format: "%.0f", Group: "energy"},
		{ID: "drain", Label: "Drain", Format: "%.0f", Group: "flow"},
		{ID: "generation", Label: "Generation", Format: "%.0f", Group: "flow"},
		{ID: "net", Label: "Net", Format: "%+.0f", ShowWhenZero: true, Group: "flow"},
		{ID: "installed", Label: "Installed", Format: "%.0f", Group: "upgrades"},
		{ID: "active", Label: "Active", Format: "%.0f", Group: "upgrades"},
		{ID: "saved_total", Label: "Saved", Format: "%.0f", Group: "savings"},
		{ID: "saved_session", Label: "Saved (session)", Format: "%.0f", Group: "savings"},
	}
}

// CoreGroups returns the logical groupings for core fields.
func CoreGroups() []string {
	return []string{"energy", "flow", "upgrades", "savings"}
}

// CoreValue extracts a core status field value by ID.
func CoreValue(s *CoreStatus, fieldID string) float64 {
	switch fieldID {
	case "fraction":
		return s.Balance.Fraction
	case "energy":
		return float64(s.Energy)
	case "capacity":
		return float64(s.Capacity)
	case "drain":
		return float64(s.Balance.Drain)
	case "generation":
		return float64(s.Balance.Generation)
	case "net":
		return float64(s.Balance.Net)
	case "installed":
		return float64(s.Installed)
	case "active":
		return float64(s.Active)
	case "saved_total":
		return float64(s.TotalSaved)
	case "saved_session":
		return float64(s.SessionSaved)
	default:
		return 0
	}
}
