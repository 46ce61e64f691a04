package storage

import "offer-enrichment/models"

// OfferWriter is the interface any enriched-table backend must satisfy.
type OfferWriter interface {
	Write(offers []*models.EnrichedOffer, runID string) error
	Close() error
}

// RawOfferWriter is the interface for persisting collected offers.
type RawOfferWriter interface {
	WriteRaw(offers []*models.RawOffer) error
	Close() error
}
