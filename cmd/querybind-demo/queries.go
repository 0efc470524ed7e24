package main

import (
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/querybind/binder"
	"github.com/dmitrymomot/querybind/handler"
)

const maxPageSize = 100

// ListItemsQuery is bound from GET /v1/items.
type ListItemsQuery struct {
	binder.Model
	Page         int              `query:"page" default:"1"`
	PageSize     int              `query:"pageSize" default:"20"`
	Search       *string          `query:"q"`
	Status       []ItemStatus     `query:"status"`
	IDs          []uuid.UUID      `query:"ids"`
	MinPrice     *decimal.Decimal `query:"minPrice"`
	MaxPrice     *decimal.Decimal `query:"maxPrice"`
	CreatedAfter *time.Time       `query:"createdAfter"`
	AvailableOn  *civil.Date      `query:"availableOn"`
	Sort         SortField        `query:"sort" default:"name"`
	Desc         bool             `query:"desc"`
}

// bounds clamps the requested page into range.
func (q ListItemsQuery) bounds() (page, size int) {
	page, size = max(q.Page, 1), q.PageSize
	if size < 1 {
		size = 1
	}
	return page, min(size, maxPageSize)
}

// ItemEventsQuery is bound from GET /v1/items/{id}/events.
type ItemEventsQuery struct {
	binder.Model
	ItemID uuid.UUID     `query:"-"`
	Since  *time.Time    `query:"since"`
	Window time.Duration `query:"window" default:"168h"`
	Kinds  []EventKind   `query:"kind"`
	After  *civil.Time   `query:"after"`
	Limit  uint8         `query:"limit" default:"50"`
}

// bindItemID fills ItemEventsQuery.ItemID from the {id} path segment.
// A malformed id cannot name an item, so it is reported as not found.
func bindItemID(r *http.Request, v any) error {
	q, ok := v.(*ItemEventsQuery)
	if !ok {
		return handler.ErrInternalServerError
	}
	id, err := binder.ConvertTo[uuid.UUID](chi.URLParam(r, "id"))
	if err != nil {
		return handler.ErrNotFound
	}
	q.ItemID = id
	return nil
}

// newQueryBinder registers the demo's enumerations on a fresh binder.
func newQueryBinder(cfg Config, opts ...binder.Option) *binder.Binder {
	base := []binder.Option{
		binder.WithEnum(StatusDraft, StatusActive, StatusArchived),
		binder.WithEnum(SortByName, SortByPrice, SortByCreatedAt),
		binder.WithEnum(EventViewed, EventPurchased, EventRefunded),
	}
	if cfg.StrictShapes {
		base = append(base, binder.WithStrictShapes())
	}
	return binder.New(append(base, opts...)...)
}
