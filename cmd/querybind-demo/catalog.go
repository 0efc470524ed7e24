package main

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// ItemStatus is bound from the query as a registered enumeration.
type ItemStatus string

const (
	StatusDraft    ItemStatus = "draft"
	StatusActive   ItemStatus = "active"
	StatusArchived ItemStatus = "archived"
)

// SortField names the column items are ordered by.
type SortField string

const (
	SortByName      SortField = "name"
	SortByPrice     SortField = "price"
	SortByCreatedAt SortField = "createdAt"
)

// EventKind classifies item events.
type EventKind string

const (
	EventViewed    EventKind = "viewed"
	EventPurchased EventKind = "purchased"
	EventRefunded  EventKind = "refunded"
)

var errCatalogClosed = errors.New("catalog is closed")

type Item struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Status        ItemStatus      `json:"status"`
	Price         decimal.Decimal `json:"price"`
	CreatedAt     time.Time       `json:"createdAt"`
	AvailableFrom civil.Date      `json:"availableFrom"`
}

type Event struct {
	ID     uuid.UUID       `json:"id"`
	ItemID uuid.UUID       `json:"itemId"`
	Kind   EventKind       `json:"kind"`
	At     time.Time       `json:"at"`
	Amount decimal.Decimal `json:"amount"`
}

// catalog is an in-memory, read-only item store.
type catalog struct {
	items  []Item
	events map[uuid.UUID][]Event
	now    func() time.Time
	closed bool
}

func (c *catalog) Ping(context.Context) error {
	if c.closed {
		return errCatalogClosed
	}
	return nil
}

func (c *catalog) Get(id uuid.UUID) (Item, bool) {
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// List returns the page of items matching q and the total match count.
func (c *catalog) List(q ListItemsQuery) ([]Item, int) {
	search := ""
	if q.Search != nil {
		search = cases.Fold().String(strings.TrimSpace(*q.Search))
	}

	matched := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		switch {
		case search != "" && !strings.Contains(cases.Fold().String(it.Name), search):
		case len(q.Status) > 0 && !slices.Contains(q.Status, it.Status):
		case len(q.IDs) > 0 && !slices.Contains(q.IDs, it.ID):
		case q.MinPrice != nil && it.Price.LessThan(*q.MinPrice):
		case q.MaxPrice != nil && it.Price.GreaterThan(*q.MaxPrice):
		case q.CreatedAfter != nil && !it.CreatedAt.After(*q.CreatedAfter):
		case q.AvailableOn != nil && it.AvailableFrom.After(*q.AvailableOn):
		default:
			matched = append(matched, it)
		}
	}

	slices.SortStableFunc(matched, func(a, b Item) int {
		var r int
		switch q.Sort {
		case SortByPrice:
			r = a.Price.Cmp(b.Price)
		case SortByCreatedAt:
			r = a.CreatedAt.Compare(b.CreatedAt)
		default:
			r = cmp.Compare(a.Name, b.Name)
		}
		if q.Desc {
			r = -r
		}
		return r
	})

	total := len(matched)
	page, size := q.bounds()
	start := min((page-1)*size, total)
	end := min(start+size, total)
	return matched[start:end], total
}

// Events returns the item's events matching q, newest first.
func (c *catalog) Events(q ItemEventsQuery) []Event {
	since := c.now().Add(-q.Window)
	if q.Since != nil {
		since = *q.Since
	}

	var out []Event
	for _, ev := range c.events[q.ItemID] {
		switch {
		case ev.At.Before(since):
		case len(q.Kinds) > 0 && !slices.Contains(q.Kinds, ev.Kind):
		case q.After != nil && civil.TimeOf(ev.At).Before(*q.After):
		default:
			out = append(out, ev)
		}
	}

	slices.SortFunc(out, func(a, b Event) int { return b.At.Compare(a.At) })
	if limit := int(q.Limit); limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// newCatalog builds the demo data set relative to now.
func newCatalog(now func() time.Time) *catalog {
	base := now().UTC().Truncate(24 * time.Hour)
	today := civil.DateOf(base)

	items := []Item{
		{uuid.MustParse("0b4f1c3e-6a5d-4c1b-9f7e-2d8a3b5c6e01"), "Espresso Machine", StatusActive, decimal.RequireFromString("249.90"), base.Add(-72 * time.Hour), today.AddDays(-30)},
		{uuid.MustParse("0b4f1c3e-6a5d-4c1b-9f7e-2d8a3b5c6e02"), "Coffee Grinder", StatusActive, decimal.RequireFromString("89.00"), base.Add(-48 * time.Hour), today.AddDays(-10)},
		{uuid.MustParse("0b4f1c3e-6a5d-4c1b-9f7e-2d8a3b5c6e03"), "Milk Frother", StatusDraft, decimal.RequireFromString("34.50"), base.Add(-24 * time.Hour), today.AddDays(7)},
		{uuid.MustParse("0b4f1c3e-6a5d-4c1b-9f7e-2d8a3b5c6e04"), "Pour-over Kettle", StatusArchived, decimal.RequireFromString("59.99"), base.Add(-720 * time.Hour), today.AddDays(-400)},
		{uuid.MustParse("0b4f1c3e-6a5d-4c1b-9f7e-2d8a3b5c6e05"), "Coffee Scale", StatusActive, decimal.RequireFromString("45.00"), base.Add(-12 * time.Hour), today},
	}

	events := make(map[uuid.UUID][]Event, len(items))
	kinds := []EventKind{EventViewed, EventPurchased, EventViewed, EventRefunded}
	for i, it := range items {
		for n := range 8 {
			kind := kinds[(i+n)%len(kinds)]
			amount := decimal.Zero
			if kind != EventViewed {
				amount = it.Price
			}
			events[it.ID] = append(events[it.ID], Event{
				ID:     uuid.NewSHA1(it.ID, []byte{byte(n)}),
				ItemID: it.ID,
				Kind:   kind,
				At:     base.Add(-time.Duration(n*7) * time.Hour),
				Amount: amount,
			})
		}
	}

	return &catalog{items: items, events: events, now: now}
}
