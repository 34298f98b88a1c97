package itinerary

import (
	"context"
	"errors"
	"fmt"
)

var ErrDayNotFound = errors.New("day not found")
var ErrActivityNotFound = errors.New("activity not found")

type Service interface {
	ListDays(ctx context.Context) []Day
	GetDay(ctx context.Context, number int) (Day, error)
	// FindActivity resolves a voucher key to the day and activity that carry it.
	FindActivity(ctx context.Context, voucherKey string) (Day, Activity, error)
	Navigation(ctx context.Context) []NavEntry
}

type ServiceImpl struct {
	days []Day
}

func NewService() *ServiceImpl {
	return NewServiceWithDays(defaultTrip())
}

// NewServiceWithDays builds a service over the given days, renumbering them in order.
func NewServiceWithDays(days []Day) *ServiceImpl {
	owned := make([]Day, len(days))
	for i, d := range days {
		d = d.clone()
		d.Number = i + 1
		owned[i] = d
	}
	return &ServiceImpl{days: owned}
}

func (s *ServiceImpl) ListDays(ctx context.Context) []Day {
	days := make([]Day, len(s.days))
	for i, d := range s.days {
		days[i] = d.clone()
	}
	return days
}

func (s *ServiceImpl) GetDay(ctx context.Context, number int) (Day, error) {
	if number < 1 || number > len(s.days) {
		return Day{}, fmt.Errorf("%w: %d", ErrDayNotFound, number)
	}
	return s.days[number-1].clone(), nil
}

func (s *ServiceImpl) FindActivity(ctx context.Context, voucherKey string) (Day, Activity, error) {
	if voucherKey == "" {
		return Day{}, Activity{}, ErrActivityNotFound
	}
	for _, d := range s.days {
		for i, a := range d.Activities {
			if a.VoucherKey == voucherKey {
				day := d.clone()
				activity := day.Activities[i]
				day.Activities = nil
				return day, activity, nil
			}
		}
	}
	return Day{}, Activity{}, ErrActivityNotFound
}

func (s *ServiceImpl) Navigation(ctx context.Context) []NavEntry {
	entries := make([]NavEntry, 0, len(s.days)+2)
	entries = append(entries, NavEntry{Label: "Home", Path: "/"})
	for _, d := range s.days {
		entries = append(entries, NavEntry{
			Label: fmt.Sprintf("Day %d · %s", d.Number, d.Location),
			Path:  fmt.Sprintf("/days/%d", d.Number),
		})
	}
	entries = append(entries, NavEntry{Label: "Packing list", Path: "/packing"})
	return entries
}
