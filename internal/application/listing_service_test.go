package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/campus-connect/internal/domain/entity"
)

func TestMarketplaceScenario(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	seller := signup(t, app, "Seller", "s@uni.test", "", "")
	other := signup(t, app, "Other", "o@uni.test", "", "")

	_, _ = app.Marketplace.Create(ctx, actorOf(other), NewMarketplaceItem{Title: "Lamp", Price: "800", Category: "Furniture"})
	item, err := app.Marketplace.Create(ctx, actorOf(seller), NewMarketplaceItem{Title: "Textbook", Price: "5000", Category: "Books"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if item.Condition != "Used" || item.Image != PlaceholderItemImage || item.Seller.ID != seller.ID {
		t.Errorf("item = %+v, expected defaults and seller stamp", item)
	}

	items, _ := app.Marketplace.List(ctx, MarketplaceFilter{})
	if len(items) != 2 || items[0].ID != item.ID {
		t.Fatalf("newest item should be listed first, got %+v", items)
	}

	if err := app.Marketplace.Delete(ctx, other.ID, item.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("non-owner Delete() error = %v, expected ErrNotOwner", err)
	}
	if items, _ := app.Marketplace.List(ctx, MarketplaceFilter{}); len(items) != 2 {
		t.Error("rejected delete removed the item")
	}
	if err := app.Marketplace.Delete(ctx, seller.ID, item.ID); err != nil {
		t.Fatalf("owner Delete() error = %v", err)
	}
	items, _ = app.Marketplace.List(ctx, MarketplaceFilter{})
	if len(items) != 1 || items[0].ID == item.ID {
		t.Errorf("item still listed after owner delete: %+v", items)
	}
	if err := app.Marketplace.Delete(ctx, seller.ID, item.ID); !errors.Is(err, ErrListingNotFound) {
		t.Errorf("Delete() of missing item error = %v", err)
	}

	list, _ := app.Notifications.List(ctx, other.ID)
	if len(list.Items) != 1 || list.Items[0].ActivityType != entity.ActivityMarketplaceListing {
		t.Errorf("other's notifications = %+v", list.Items)
	}
}

func TestMarketplaceValidationAndFilter(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	u := entity.Actor{ID: "u1", Name: "U"}

	_, err := app.Marketplace.Create(ctx, u, NewMarketplaceItem{Title: "No price"})
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) != 2 {
		t.Fatalf("Create() error = %v, expected price and category missing", err)
	}

	_, _ = app.Marketplace.Create(ctx, u, NewMarketplaceItem{Title: "Calculus book", Price: "10", Category: "Books & Study Materials"})
	_, _ = app.Marketplace.Create(ctx, u, NewMarketplaceItem{Title: "Desk", Description: "fits a calculus book", Price: "20", Category: "Furniture", Condition: "New"})

	tests := []struct {
		filter MarketplaceFilter
		want   int
	}{
		{MarketplaceFilter{}, 2},
		{MarketplaceFilter{Search: "CALCULUS"}, 2},
		{MarketplaceFilter{Search: "calculus", Category: "Furniture"}, 1},
		{MarketplaceFilter{Category: "all"}, 2},
		{MarketplaceFilter{Category: "Electronics"}, 0},
	}
	for _, tt := range tests {
		got, _ := app.Marketplace.List(ctx, tt.filter)
		if len(got) != tt.want {
			t.Errorf("List(%+v) returned %d, expected %d", tt.filter, len(got), tt.want)
		}
	}
}

func TestEvents(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	org := entity.Actor{ID: "org", Name: "Org"}
	fixClock(t, time.Date(2030, 5, 10, 9, 0, 0, 0, time.UTC))

	late, err := app.Events.Create(ctx, org, NewEvent{Title: "Late", Date: "2030-05-12", Time: "18:30", Location: "Hall", Category: "Social"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if want := time.Date(2030, 5, 12, 18, 30, 0, 0, time.UTC); !late.Date.Equal(want) {
		t.Errorf("Date = %v, expected %v", late.Date, want)
	}
	early, _ := app.Events.Create(ctx, org, NewEvent{Title: "Early", Date: "2030-05-12", Location: "Lab", Category: "Academic"})
	if early.Date.Hour() != 12 {
		t.Errorf("default time hour = %d, expected 12", early.Date.Hour())
	}
	past, _ := app.Events.Create(ctx, org, NewEvent{Title: "Past", Date: "2030-05-01", Location: "Field", Category: "Sports"})

	all, _ := app.Events.List(ctx, EventFilter{})
	if len(all) != 3 || all[0].ID != past.ID || all[1].ID != early.ID || all[2].ID != late.ID {
		t.Fatalf("events should be sorted soonest first, got %v", []string{all[0].Title, all[1].Title, all[2].Title})
	}
	day := time.Date(2030, 5, 12, 0, 0, 0, 0, time.UTC)
	if got, _ := app.Events.List(ctx, EventFilter{Day: &day}); len(got) != 2 {
		t.Errorf("day filter returned %d, expected 2", len(got))
	}
	if got, _ := app.Events.List(ctx, EventFilter{UpcomingOnly: true}); len(got) != 2 {
		t.Errorf("upcoming filter returned %d, expected 2", len(got))
	}
	if got, _ := app.Events.List(ctx, EventFilter{Category: "Academic"}); len(got) != 1 || got[0].ID != early.ID {
		t.Errorf("category filter = %+v", got)
	}

	if _, err := app.Events.Create(ctx, org, NewEvent{Title: "Bad", Date: "12/05/2030", Location: "x", Category: "x"}); !errors.Is(err, ErrValidation) {
		t.Errorf("bad date error = %v", err)
	}
	if _, err := app.Events.Create(ctx, org, NewEvent{Title: "No place", Category: "x"}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing location error = %v", err)
	}
}

func TestEventRSVPToggles(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	ev, _ := app.Events.Create(ctx, entity.Actor{ID: "org"}, NewEvent{Title: "Talk", Location: "Hall", Category: "Academic"})

	got, err := app.Events.RSVP(ctx, "u1", ev.ID)
	if err != nil || !got.IsAttending("u1") {
		t.Fatalf("RSVP() = %+v, %v", got, err)
	}
	got, _ = app.Events.RSVP(ctx, "u1", ev.ID)
	if got.IsAttending("u1") || len(got.Attendees) != 0 {
		t.Errorf("second RSVP() should remove attendance, got %v", got.Attendees)
	}
	if _, err := app.Events.RSVP(ctx, "u1", "missing"); !errors.Is(err, ErrListingNotFound) {
		t.Errorf("RSVP(missing) error = %v", err)
	}
}

func TestResources(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	ada := entity.Actor{ID: "ada", Name: "Ada"}
	bola := entity.Actor{ID: "bola", Name: "Bola"}

	fixClock(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	older, _ := app.Resources.Create(ctx, ada, NewResource{Title: "Calculus Notes", Link: "https://x.test/c", Category: "Notes", Course: "mth101"})
	fixClock(t, time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC))
	newer, err := app.Resources.Create(ctx, bola, NewResource{Title: "Python", Description: "intro", Link: "https://x.test/p", Category: "Textbook", Course: "CSC102"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if newer.Downloads != 0 || older.Course != "MTH101" {
		t.Errorf("created = %+v / %+v", newer, older)
	}

	all, _ := app.Resources.List(ctx, ResourceFilter{Category: "all", Course: "all"})
	if len(all) != 2 || all[0].ID != newer.ID {
		t.Fatalf("resources should be newest first, got %+v", all)
	}
	if got, _ := app.Resources.List(ctx, ResourceFilter{UploaderID: "ada"}); len(got) != 1 || got[0].ID != older.ID {
		t.Errorf("uploader filter = %+v", got)
	}
	if got, _ := app.Resources.List(ctx, ResourceFilter{Search: "INTRO", Course: "CSC102"}); len(got) != 1 {
		t.Errorf("search+course filter returned %d", len(got))
	}
	courses, _ := app.Resources.Courses(ctx)
	if len(courses) != 2 || courses[0] != "CSC102" || courses[1] != "MTH101" {
		t.Errorf("Courses() = %v", courses)
	}

	for i := 0; i < 2; i++ {
		if _, err := app.Resources.Download(ctx, older.ID); err != nil {
			t.Fatalf("Download() error = %v", err)
		}
	}
	got, _ := app.Resources.Download(ctx, older.ID)
	if got.Downloads != 3 || got.Link != "https://x.test/c" {
		t.Errorf("after three downloads = %+v", got)
	}
	if _, err := app.Resources.Download(ctx, "missing"); !errors.Is(err, ErrListingNotFound) {
		t.Errorf("Download(missing) error = %v", err)
	}
	if _, err := app.Resources.Create(ctx, ada, NewResource{Title: "No link", Category: "Notes", Course: "X"}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing link error = %v", err)
	}
}

func TestResourceSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	samples := SampleResources([]entity.Actor{{ID: "u1", Name: "John Doe"}})

	wrote, err := app.Resources.SeedIfEmpty(ctx, samples)
	if err != nil || !wrote {
		t.Fatalf("SeedIfEmpty() = %v, %v", wrote, err)
	}
	if wrote, _ := app.Resources.SeedIfEmpty(ctx, samples); wrote {
		t.Error("second SeedIfEmpty() should not write")
	}
	all, _ := app.Resources.List(ctx, ResourceFilter{})
	if len(all) != 3 || all[0].Course != "PHY103" {
		t.Errorf("seeded = %+v, expected three samples newest first", all)
	}
}

func TestProfileActivity(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	me := entity.Actor{ID: "me", Name: "Me"}
	you := entity.Actor{ID: "you", Name: "You"}

	_, _ = app.Marketplace.Create(ctx, me, NewMarketplaceItem{Title: "Bike", Price: "1", Category: "Other"})
	_, _ = app.Marketplace.Create(ctx, you, NewMarketplaceItem{Title: "Desk", Price: "1", Category: "Other"})
	_, _ = app.Events.Create(ctx, me, NewEvent{Title: "Meetup", Location: "Hall", Category: "Social"})
	_, _ = app.Resources.Create(ctx, you, NewResource{Title: "Notes", Link: "l", Category: "Notes", Course: "C1"})

	act, err := app.Profile.Activity(ctx, me.ID)
	if err != nil {
		t.Fatalf("Activity() error = %v", err)
	}
	if len(act.Listings) != 1 || act.Listings[0].Title != "Bike" || len(act.Events) != 1 || len(act.Resources) != 0 {
		t.Errorf("Activity() = %+v", act)
	}
}
