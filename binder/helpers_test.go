package binder_test

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/netip"
	"strconv"
	"strings"

	"github.com/dmitrymomot/querybind/binder"
	"github.com/dmitrymomot/querybind/pkg/logger"
)

type Status int

const (
	StatusActive Status = iota + 1
	StatusInactive
	StatusArchived
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusInactive:
		return "Inactive"
	case StatusArchived:
		return "Archived"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Point is bound through a registered converter from "x:y".
type Point struct {
	X, Y int
}

func parsePoint(raw string) (Point, error) {
	xs, ys, ok := strings.Cut(raw, ":")
	if !ok {
		return Point{}, fmt.Errorf("expected point as x:y")
	}
	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(ys)
	if errX != nil || errY != nil {
		return Point{}, fmt.Errorf("expected point as x:y")
	}
	return Point{X: x, Y: y}, nil
}

// listQuery is the pagination model used across the tests.
type listQuery struct {
	binder.Model
	Page        int     `query:"page" default:"0"`
	PageSize    int     `query:"pageSize" default:"20"`
	Search      *string `query:"search"`
	SortBy      *string `query:"sort"`
	IsAscending bool    `query:"isAscending" default:"true"`
}

type Pagination struct {
	Page     int `query:"page" default:"1"`
	PageSize int `query:"page_size" default:"25"`
}

type embeddedQuery struct {
	binder.Model
	Pagination
	Search string `query:"q"`
}

type richQuery struct {
	binder.Model
	Status   Status     `query:"status"`
	Statuses []Status   `query:"statuses"`
	Origin   Point      `query:"origin"`
	Addr     netip.Addr `query:"addr"`
	Limit    *int       `query:"limit"`
	Filter   map[string]string
}

func newTestBinder(buf *bytes.Buffer, opts ...binder.Option) *binder.Binder {
	base := []binder.Option{
		binder.WithEnum(StatusActive, StatusInactive, StatusArchived),
		binder.WithConverter(parsePoint),
	}
	if buf != nil {
		base = append(base, binder.WithLogger(logger.New(logger.WithOutput(buf))))
	}
	return binder.New(append(base, opts...)...)
}

func ptr[T any](v T) *T {
	return &v
}

func newDiscardLogger() *slog.Logger {
	return logger.New(logger.WithOutput(io.Discard))
}
