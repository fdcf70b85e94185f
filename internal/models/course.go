package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CourseStatusDraft      = "draft"
	CourseStatusComingSoon = "coming_soon"
	CourseStatusPublished  = "published"
)

type Course struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	ShortDesc      string    `json:"short_desc"`
	LongDesc       string    `json:"long_desc"`
	CoverObjectKey string    `json:"cover_object_key"`
	Price          int64     `json:"price"`
	DiscountPrice  *int64    `json:"discount_price,omitempty"`
	Status         string    `json:"status"`
	IsFree         bool      `json:"is_free"`
	OrderIndex     int       `json:"order_index"`
	PaymentLink    string    `json:"payment_link"`
	GroupLink      string    `json:"group_link"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FinalPrice is what a buyer actually pays: the discount price when one is
// set, the list price otherwise, zero for free courses.
func (c Course) FinalPrice() int64 {
	if c.IsFree {
		return 0
	}
	if c.DiscountPrice != nil {
		return *c.DiscountPrice
	}
	return c.Price
}

// DiscountApplied is the difference between the list price and FinalPrice.
func (c Course) DiscountApplied() int64 {
	if c.IsFree {
		return 0
	}
	return c.Price - c.FinalPrice()
}

// CourseDetail is the read model behind the course detail page.
type CourseDetail struct {
	Course       Course    `json:"course"`
	CoverURL     string    `json:"cover_url,omitempty"`
	TotalLessons int       `json:"total_lessons"`
	TotalMinutes int       `json:"total_minutes"`
	Curriculum   []Section `json:"curriculum"`
}
