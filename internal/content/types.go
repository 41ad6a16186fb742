package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type identifies the fixed categories content items are grouped under.
// Each category keeps its own independent ordering.
type Type string

const (
	TypeProfile          Type = "Profile"
	TypeEducation        Type = "Education"
	TypeProjects         Type = "Projects"
	TypeExperience       Type = "Experience"
	TypeSkills           Type = "Skills"
	TypeCertifications   Type = "Certifications"
	TypeResponsibilities Type = "Responsibilities"
	TypeAwards           Type = "Awards"
	TypePublications     Type = "Publications"
	TypeBlog             Type = "Blog"
	TypeTestimonials     Type = "Testimonials"
	TypeCreative         Type = "Creative"
)

var allTypes = []Type{
	TypeProfile,
	TypeEducation,
	TypeProjects,
	TypeExperience,
	TypeSkills,
	TypeCertifications,
	TypeResponsibilities,
	TypeAwards,
	TypePublications,
	TypeBlog,
	TypeTestimonials,
	TypeCreative,
}

// AllTypes returns every known content type in display order.
func AllTypes() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseType resolves a content type from user or wire input, ignoring case.
func ParseType(value string) (Type, error) {
	needle := strings.ToLower(strings.TrimSpace(value))
	for _, t := range allTypes {
		if strings.ToLower(string(t)) == needle {
			return t, nil
		}
	}
	return "", fmt.Errorf("content: unknown content type %q", value)
}

// String returns the canonical display name.
func (t Type) String() string { return string(t) }

// APISlug returns the lowercase path segment the backend expects.
func (t Type) APISlug() string { return strings.ToLower(string(t)) }

// Valid reports whether the type is one of the known categories.
func (t Type) Valid() bool {
	for _, known := range allTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Status is the tri-state lifecycle marker carried by item kinds that
// progress over time (projects, degrees, roles, certifications).
type Status string

const (
	StatusCompleted Status = "completed"
	StatusOngoing   Status = "ongoing"
	StatusArchived  Status = "archived"
)

// Valid reports whether the status is one of the recognised values. The
// empty status is valid everywhere; it means "not applicable".
func (s Status) Valid() bool {
	switch s {
	case "", StatusCompleted, StatusOngoing, StatusArchived:
		return true
	}
	return false
}

// statusTypes lists the categories whose schema accepts a status marker.
var statusTypes = map[Type]bool{
	TypeProjects:       true,
	TypeEducation:      true,
	TypeExperience:     true,
	TypeCertifications: true,
}

// SupportsStatus reports whether items of this type carry a status marker.
func (t Type) SupportsStatus() bool { return statusTypes[t] }

// Item is a single piece of portfolio content. An empty ID marks a
// client-side draft that has never been persisted; once the backend assigns
// an ID it never changes.
type Item struct {
	ID          string         `json:"id,omitempty"`
	Title       string         `json:"title"`
	Type        Type           `json:"type"`
	Visible     bool           `json:"visible"`
	Status      Status         `json:"status,omitempty"`
	Order       int            `json:"order"`
	UpdatedAt   time.Time      `json:"updatedAt,omitzero"`
	Description string         `json:"description,omitempty"`
	Content     string         `json:"content,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Persisted reports whether the backend has assigned this item an identity.
func (i Item) Persisted() bool { return strings.TrimSpace(i.ID) != "" }

// Clone returns a deep copy so cache consumers can mutate freely.
func (i Item) Clone() Item {
	cloned := i
	if len(i.Metadata) > 0 {
		cloned.Metadata = make(map[string]any, len(i.Metadata))
		for key, value := range i.Metadata {
			cloned.Metadata[key] = value
		}
	}
	return cloned
}

// Draft is a staged, unsaved edit of an item. The ClientRef gives unsaved
// drafts a stable identity without inventing a server ID.
type Draft struct {
	ClientRef uuid.UUID
	Item      Item
}

// NewDraft stages a fresh draft for the given type.
func NewDraft(t Type) Draft {
	return Draft{
		ClientRef: uuid.New(),
		Item:      Item{Type: t, Visible: true},
	}
}

// DraftOf stages an edit over an existing cached item.
func DraftOf(item Item) Draft {
	return Draft{ClientRef: uuid.New(), Item: item.Clone()}
}

// BulkAction enumerates the batch operations the backend accepts for a
// set of item ids.
type BulkAction string

const (
	BulkShow   BulkAction = "show"
	BulkHide   BulkAction = "hide"
	BulkDelete BulkAction = "delete"
)

// Valid reports whether the action is one the backend understands.
func (a BulkAction) Valid() bool {
	switch a {
	case BulkShow, BulkHide, BulkDelete:
		return true
	}
	return false
}

// Role enumerates the admin user roles the backend recognises.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// User is the authenticated identity returned by the backend.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AuditEntry is a server-authoritative, append-only audit record. The
// client fetches these and never writes them.
type AuditEntry struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Timestamp  time.Time `json:"timestamp"`
	User       string    `json:"user"`
}

// TopProject is one entry in the ranked project list the backend returns
// alongside the traffic counters.
type TopProject struct {
	Name  string `json:"name"`
	Views int    `json:"views"`
}

// Analytics is the read-only traffic summary shown on the dashboard tab.
type Analytics struct {
	Visitors    int          `json:"visitors"`
	Clicks      int          `json:"clicks"`
	TopProjects []TopProject `json:"topProjects"`
}
