package models

import "time"

// SalonService is an entry in a salon's live catalogue.
type SalonService struct {
	Name       string   `bson:"name" json:"name"`
	Price      float64  `bson:"price" json:"price"`
	OfferPrice *float64 `bson:"offerPrice,omitempty" json:"offerPrice,omitempty"`
}

// EffectivePrice is the offer price when one is set below the list price.
func (s SalonService) EffectivePrice() float64 {
	if s.OfferPrice != nil && *s.OfferPrice >= 0 && *s.OfferPrice < s.Price {
		return *s.OfferPrice
	}
	return s.Price
}

type Salon struct {
	ID          string         `bson:"id" json:"id"`
	OwnerID     string         `bson:"ownerId" json:"ownerId"`
	Name        string         `bson:"name" json:"name"`
	Address     string         `bson:"address" json:"address"`
	PhoneNumber string         `bson:"phoneNumber" json:"phoneNumber"`
	Email       string         `bson:"email" json:"email"`
	CoverImage  string         `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	CoverURL    string         `bson:"-" json:"coverUrl,omitempty"`
	Services    []SalonService `bson:"services" json:"services"`
	Approved    bool           `bson:"approved" json:"approved"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// FindService looks up a catalogue entry by name, ignoring case and
// surrounding whitespace.
func (s *Salon) FindService(name string) (SalonService, bool) {
	key := normalizeName(name)
	for _, svc := range s.Services {
		if normalizeName(svc.Name) == key {
			return svc, true
		}
	}
	return SalonService{}, false
}

type SalonSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	CoverURL    string `json:"coverUrl,omitempty"`
}

func (s *Salon) Summary() *SalonSummary {
	return &SalonSummary{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		PhoneNumber: s.PhoneNumber,
		CoverURL:    s.CoverURL,
	}
}
