package models

// DateRange selects bookings relative to today.
type DateRange string

const (
	RangeAny      DateRange = ""
	RangeUpcoming DateRange = "upcoming"
	RangePast     DateRange = "past"
)

// StatusFilter selects bookings by lifecycle state. Active means pending.
type StatusFilter string

const (
	FilterAnyStatus StatusFilter = ""
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
	FilterCanceled  StatusFilter = "canceled"
)

// BookingFilter composes with AND semantics. Empty fields do not filter.
type BookingFilter struct {
	UserID         string       `form:"userId"`
	SalonID        string       `form:"salonId"`
	SalonIDs       []string     `form:"-"`
	Range          DateRange    `form:"when"`
	Status         StatusFilter `form:"status"`
	IncludeDeleted bool         `form:"includeDeleted"`
	// Today is the YYYY-MM-DD reference for Range, set by the service.
	Today string `form:"-"`
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Page struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p Page) Skip() int64 {
	return int64((p.Page - 1) * p.PageSize)
}

type BookingList struct {
	Items    []Booking `json:"items"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}
