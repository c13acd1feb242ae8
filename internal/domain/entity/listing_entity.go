package entity

import (
	"slices"
	"strings"
	"time"
)

// Seller identifies the owner of a marketplace item.
type Seller struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MarketplaceItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       string    `json:"price"`
	Category    string    `json:"category"`
	Condition   string    `json:"condition,omitempty"`
	Image       string    `json:"image,omitempty"`
	Seller      Seller    `json:"seller"`
	CreatedAt   time.Time `json:"created_at"`
}

// MarketplaceCategories lists the categories offered by the listing form.
var MarketplaceCategories = []string{
	"Books & Study Materials",
	"Electronics",
	"Furniture",
	"Clothing",
	"Services",
	"Other",
}

type Event struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Date          time.Time `json:"date"`
	Location      string    `json:"location"`
	Category      string    `json:"category"`
	OrganizerID   string    `json:"organizer_id"`
	OrganizerName string    `json:"organizer_name,omitempty"`
	Attendees     []string  `json:"attendees"`
	CreatedAt     time.Time `json:"created_at"`
}

// EventCategories lists the categories offered by the event form.
var EventCategories = []string{"Academic", "Social", "Sports", "Cultural", "Workshop", "Other"}

// IsAttending reports whether userID has RSVPed.
func (e *Event) IsAttending(userID string) bool {
	return slices.Contains(e.Attendees, userID)
}

// ToggleAttendance adds or removes userID and reports the new attendance state.
func (e *Event) ToggleAttendance(userID string) bool {
	if i := slices.Index(e.Attendees, userID); i >= 0 {
		e.Attendees = slices.Delete(e.Attendees, i, i+1)
		return false
	}
	e.Attendees = append(e.Attendees, userID)
	return true
}

type Resource struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Link         string    `json:"link"`
	Category     string    `json:"category"`
	Course       string    `json:"course"`
	Year         string    `json:"year,omitempty"`
	UploaderID   string    `json:"uploader_id"`
	UploaderName string    `json:"uploader_name,omitempty"`
	Downloads    int       `json:"downloads"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResourceCategories lists the categories offered by the resource form.
var ResourceCategories = []string{"Notes", "Textbook", "Past Paper", "Lab Report", "Assignment", "Template", "Other"}

// ContainsFold reports whether any of fields contains query, ignoring case.
// An empty query matches everything.
func ContainsFold(query string, fields ...string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
