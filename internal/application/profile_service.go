package application

import (
	"context"

	"github.com/oksasatya/campus-connect/internal/domain/entity"
)

// Activity is what a user has contributed across the listing stores.
type Activity struct {
	Listings  []entity.MarketplaceItem `json:"listings"`
	Events    []entity.Event           `json:"events"`
	Resources []entity.Resource        `json:"resources"`
}

type ProfileService struct {
	Marketplace *MarketplaceService
	Events      *EventService
	Resources   *ResourceService
}

// Activity collects the user's own listings, organised events and uploads.
func (s *ProfileService) Activity(ctx context.Context, userID string) (*Activity, error) {
	listings, err := s.Marketplace.List(ctx, MarketplaceFilter{SellerID: userID})
	if err != nil {
		return nil, err
	}
	events, err := s.Events.List(ctx, EventFilter{OrganizerID: userID})
	if err != nil {
		return nil, err
	}
	resources, err := s.Resources.List(ctx, ResourceFilter{UploaderID: userID})
	if err != nil {
		return nil, err
	}
	return &Activity{Listings: listings, Events: events, Resources: resources}, nil
}
