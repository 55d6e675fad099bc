package catalog

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle    = errors.New("service title cannot be empty")
	ErrEmptyPrice    = errors.New("service price cannot be empty")
	ErrPriceNoDigits = errors.New("service price must contain digits")
)

// Service is a read-only catalog offering. The price stays a display string
// ("₦150,000"); the order pricing engine extracts the numeric value when an
// order is placed.
type Service struct {
	id          uuid.UUID
	title       string
	category    string
	description string
	price       string
	subtopics   []string
}

func NewService(id uuid.UUID, title, category, description, price string, subtopics []string) (*Service, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	price = strings.TrimSpace(price)
	if price == "" {
		return nil, ErrEmptyPrice
	}
	if !strings.ContainsAny(price, "0123456789") {
		return nil, ErrPriceNoDigits
	}

	return &Service{
		id:          id,
		title:       title,
		category:    category,
		description: description,
		price:       price,
		subtopics:   subtopics,
	}, nil
}

// ReconstructService rehydrates a service from storage without re-running
// creation validation.
func ReconstructService(id uuid.UUID, title, category, description, price string, subtopics []string) *Service {
	return &Service{
		id:          id,
		title:       title,
		category:    category,
		description: description,
		price:       price,
		subtopics:   subtopics,
	}
}

func (s *Service) ID() uuid.UUID       { return s.id }
func (s *Service) Title() string       { return s.title }
func (s *Service) Category() string    { return s.category }
func (s *Service) Description() string { return s.description }
func (s *Service) Price() string       { return s.price }
func (s *Service) Subtopics() []string { return s.subtopics }
