package application

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-connect/internal/domain/entity"
	repo "github.com/oksasatya/campus-connect/internal/domain/repository"
	"github.com/oksasatya/campus-connect/pkg/helpers"
)

// PlaceholderItemImage is shown for marketplace items posted without a picture.
const PlaceholderItemImage = "https://images.unsplash.com/photo-1542291026-7eec264c27ff?ixlib=rb-4.0.3&ixid=MnwxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8&auto=format&fit=crop&w=1170&q=80"

// filterAll is the selector value meaning "no filter".
const filterAll = "all"

// ActivityNotifier fans an activity out to the other users. *NotificationService satisfies it.
type ActivityNotifier interface {
	NotifyOthers(ctx context.Context, kind entity.ActivityKind, actor entity.Actor, subject entity.Subject)
}

func selected(filter, value string) bool {
	return filter == "" || filter == filterAll || filter == value
}

// ---- Marketplace ----

type NewMarketplaceItem struct {
	Title       string
	Description string
	Price       string
	Category    string
	Condition   string
	Image       string
}

type MarketplaceFilter struct {
	Search   string
	Category string
	SellerID string
}

type MarketplaceService struct {
	Repo     repo.MarketplaceRepository
	Locks    *KeyLock
	Logger   *logrus.Logger
	Notifier ActivityNotifier
}

func NewMarketplaceService(r repo.MarketplaceRepository, locks *KeyLock, logger *logrus.Logger) *MarketplaceService {
	return &MarketplaceService{Repo: r, Locks: locks, Logger: helpers.LoggerOrDiscard(logger)}
}

// Create posts an item at the top of the marketplace.
func (s *MarketplaceService) Create(ctx context.Context, seller entity.Actor, in NewMarketplaceItem) (*entity.MarketplaceItem, error) {
	if err := required("title", in.Title, "price", in.Price, "category", in.Category); err != nil {
		return nil, err
	}
	item := entity.MarketplaceItem{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Condition:   in.Condition,
		Image:       in.Image,
		Seller:      entity.Seller{ID: seller.ID, Name: seller.Name},
		CreatedAt:   now(),
	}
	if item.Condition == "" {
		item.Condition = "Used"
	}
	if item.Image == "" {
		item.Image = PlaceholderItemImage
	}

	unlock := s.Locks.Lock(lockMarketplace)
	items, err := s.Repo.List(ctx)
	if err == nil {
		err = s.Repo.SaveAll(ctx, append([]entity.MarketplaceItem{item}, items...))
	}
	unlock()
	if err != nil {
		s.Logger.WithError(err).WithField("seller_id", seller.ID).Error("save marketplace item failed")
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.NotifyOthers(ctx, entity.ActivityMarketplaceListing, seller, entity.Subject{ID: item.ID, Title: item.Title})
	}
	return &item, nil
}

// List returns matching items in stored order, newest first.
func (s *MarketplaceService) List(ctx context.Context, f MarketplaceFilter) ([]entity.MarketplaceItem, error) {
	items, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []entity.MarketplaceItem{}
	for _, it := range items {
		if !entity.ContainsFold(f.Search, it.Title, it.Description) || !selected(f.Category, it.Category) {
			continue
		}
		if f.SellerID != "" && it.Seller.ID != f.SellerID {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// Delete removes an item; only its seller may do so.
func (s *MarketplaceService) Delete(ctx context.Context, userID, itemID string) error {
	defer s.Locks.Lock(lockMarketplace)()

	items, err := s.Repo.List(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(items, func(it entity.MarketplaceItem) bool { return it.ID == itemID })
	if i < 0 {
		return ErrListingNotFound
	}
	if items[i].Seller.ID != userID {
		return ErrNotOwner
	}
	return s.Repo.SaveAll(ctx, slices.Delete(items, i, i+1))
}

// ---- Events ----

type NewEvent struct {
	Title       string
	Description string
	Date        string // 2006-01-02, today when empty
	Time        string // 15:04, noon when empty
	Location    string
	Category    string
}

type EventFilter struct {
	Category     string
	Day          *time.Time
	UpcomingOnly bool
	OrganizerID  string
}

type EventService struct {
	Repo     repo.EventRepository
	Locks    *KeyLock
	Logger   *logrus.Logger
	Notifier ActivityNotifier
}

func NewEventService(r repo.EventRepository, locks *KeyLock, logger *logrus.Logger) *EventService {
	return &EventService{Repo: r, Locks: locks, Logger: helpers.LoggerOrDiscard(logger)}
}

// eventStart combines a calendar day and a clock time into one UTC instant.
func eventStart(day, clock string) (time.Time, error) {
	d := now()
	if day != "" {
		parsed, err := time.Parse(time.DateOnly, day)
		if err != nil {
			return time.Time{}, invalid("date", "must be YYYY-MM-DD")
		}
		d = parsed
	}
	if clock == "" {
		clock = "12:00"
	}
	c, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, invalid("time", "must be HH:MM")
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC), nil
}

func (s *EventService) Create(ctx context.Context, organizer entity.Actor, in NewEvent) (*entity.Event, error) {
	if err := required("title", in.Title, "location", in.Location, "category", in.Category); err != nil {
		return nil, err
	}
	start, err := eventStart(in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	ev := entity.Event{
		ID:            uuid.NewString(),
		Title:         in.Title,
		Description:   in.Description,
		Date:          start,
		Location:      in.Location,
		Category:      in.Category,
		OrganizerID:   organizer.ID,
		OrganizerName: organizer.Name,
		Attendees:     []string{},
		CreatedAt:     now(),
	}

	unlock := s.Locks.Lock(lockEvents)
	events, err := s.Repo.List(ctx)
	if err == nil {
		err = s.Repo.SaveAll(ctx, append([]entity.Event{ev}, events...))
	}
	unlock()
	if err != nil {
		s.Logger.WithError(err).WithField("organizer_id", organizer.ID).Error("save event failed")
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.NotifyOthers(ctx, entity.ActivityEventPost, organizer, entity.Subject{ID: ev.ID, Title: ev.Title})
	}
	return &ev, nil
}

// List returns matching events, soonest first.
func (s *EventService) List(ctx context.Context, f EventFilter) ([]entity.Event, error) {
	events, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	t := now()
	out := []entity.Event{}
	for _, ev := range events {
		if !selected(f.Category, ev.Category) {
			continue
		}
		if f.Day != nil && !sameDay(ev.Date, *f.Day) {
			continue
		}
		if f.UpcomingOnly && !ev.Date.After(t) {
			continue
		}
		if f.OrganizerID != "" && ev.OrganizerID != f.OrganizerID {
			continue
		}
		out = append(out, ev)
	}
	slices.SortStableFunc(out, func(a, b entity.Event) int { return a.Date.Compare(b.Date) })
	return out, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// RSVP toggles userID's attendance and returns the updated event.
func (s *EventService) RSVP(ctx context.Context, userID, eventID string) (*entity.Event, error) {
	defer s.Locks.Lock(lockEvents)()

	events, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(events, func(ev entity.Event) bool { return ev.ID == eventID })
	if i < 0 {
		return nil, ErrListingNotFound
	}
	events[i].ToggleAttendance(userID)
	if err := s.Repo.SaveAll(ctx, events); err != nil {
		return nil, err
	}
	ev := events[i]
	return &ev, nil
}

// ---- Resources ----

type NewResource struct {
	Title       string
	Description string
	Link        string
	Category    string
	Course      string
	Year        string
}

type ResourceFilter struct {
	Search     string
	Category   string
	Course     string
	UploaderID string
}

type ResourceService struct {
	Repo     repo.ResourceRepository
	Locks    *KeyLock
	Logger   *logrus.Logger
	Notifier ActivityNotifier
}

func NewResourceService(r repo.ResourceRepository, locks *KeyLock, logger *logrus.Logger) *ResourceService {
	return &ResourceService{Repo: r, Locks: locks, Logger: helpers.LoggerOrDiscard(logger)}
}

func (s *ResourceService) Create(ctx context.Context, uploader entity.Actor, in NewResource) (*entity.Resource, error) {
	if err := required("title", in.Title, "link", in.Link, "category", in.Category, "course", in.Course); err != nil {
		return nil, err
	}
	res := entity.Resource{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Description:  in.Description,
		Link:         in.Link,
		Category:     in.Category,
		Course:       strings.ToUpper(strings.TrimSpace(in.Course)),
		Year:         in.Year,
		UploaderID:   uploader.ID,
		UploaderName: uploader.Name,
		CreatedAt:    now(),
	}

	unlock := s.Locks.Lock(lockResources)
	all, err := s.Repo.List(ctx)
	if err == nil {
		err = s.Repo.SaveAll(ctx, append([]entity.Resource{res}, all...))
	}
	unlock()
	if err != nil {
		s.Logger.WithError(err).WithField("uploader_id", uploader.ID).Error("save resource failed")
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.NotifyOthers(ctx, entity.ActivityResourceUpload, uploader, entity.Subject{ID: res.ID, Title: res.Title})
	}
	return &res, nil
}

// List returns matching resources, newest first.
func (s *ResourceService) List(ctx context.Context, f ResourceFilter) ([]entity.Resource, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []entity.Resource{}
	for _, r := range all {
		if !entity.ContainsFold(f.Search, r.Title, r.Description) {
			continue
		}
		if !selected(f.Category, r.Category) || !selected(f.Course, r.Course) {
			continue
		}
		if f.UploaderID != "" && r.UploaderID != f.UploaderID {
			continue
		}
		out = append(out, r)
	}
	slices.SortStableFunc(out, func(a, b entity.Resource) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

// Courses returns the distinct course codes in use, sorted.
func (s *ResourceService) Courses(ctx context.Context) ([]string, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	courses := []string{}
	for _, r := range all {
		if r.Course != "" && !slices.Contains(courses, r.Course) {
			courses = append(courses, r.Course)
		}
	}
	slices.Sort(courses)
	return courses, nil
}

// Download counts a download and returns the resource with its link.
func (s *ResourceService) Download(ctx context.Context, resourceID string) (*entity.Resource, error) {
	defer s.Locks.Lock(lockResources)()

	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(all, func(r entity.Resource) bool { return r.ID == resourceID })
	if i < 0 {
		return nil, ErrListingNotFound
	}
	all[i].Downloads++
	if err := s.Repo.SaveAll(ctx, all); err != nil {
		return nil, err
	}
	r := all[i]
	return &r, nil
}

// SeedIfEmpty stores samples when the collection has no resources yet. It reports whether it wrote.
func (s *ResourceService) SeedIfEmpty(ctx context.Context, samples []entity.Resource) (bool, error) {
	defer s.Locks.Lock(lockResources)()

	all, err := s.Repo.List(ctx)
	if err != nil {
		return false, err
	}
	if len(all) > 0 {
		return false, nil
	}
	return true, s.Repo.SaveAll(ctx, samples)
}

// SampleResources are the starter resources shown on a fresh install.
func SampleResources(uploaders []entity.Actor) []entity.Resource {
	day := 24 * time.Hour
	t := now()
	samples := []entity.Resource{
		{
			Title:       "Complete Calculus Notes",
			Description: "Comprehensive notes covering differential and integral calculus, including examples and practice problems.",
			Link:        "https://example.com/calculus-notes",
			Category:    "Notes",
			Course:      "MTH101",
			Year:        "1st Year",
			Downloads:   24,
			CreatedAt:   t.Add(-7 * day),
		},
		{
			Title:       "Introduction to Programming with Python PDF",
			Description: "Learn the basics of programming using Python. Covers variables, loops, functions, and more.",
			Link:        "https://example.com/python-intro",
			Category:    "Textbook",
			Course:      "CSC102",
			Year:        "1st Year",
			Downloads:   42,
			CreatedAt:   t.Add(-14 * day),
		},
		{
			Title:       "Physics Lab Report Template",
			Description: "Standard template for writing physics lab reports, including sections for hypothesis, data, and conclusions.",
			Link:        "https://example.com/physics-template",
			Category:    "Template",
			Course:      "PHY103",
			Year:        "1st Year",
			Downloads:   18,
			CreatedAt:   t.Add(-3 * day),
		},
	}
	for i := range samples {
		samples[i].ID = uuid.NewString()
		if len(uploaders) > 0 {
			u := uploaders[i%len(uploaders)]
			samples[i].UploaderID = u.ID
			samples[i].UploaderName = u.Name
		}
	}
	return samples
}
