package repositories

import (
	"context"

	bleveindex "hotel-management-backend/bleve/services"
	"hotel-management-backend/db/models"
)

type SearchRepository struct {
	indexer *bleveindex.IndexingService
}

type SearchRepositoryInterface interface {
	// General
	DeleteAllIndices(ctx context.Context) error

	// ==== Reservation Indexing ====
	IndexSingleReservation(reservation models.Reservation) error
	IndexExistingReservations(reservations []models.Reservation) error
	DeleteReservation(reservationID string) error

	// ==== Occupant Indexing ====
	IndexSingleOccupant(occupant models.Occupant) error
	IndexExistingOccupants(occupants []models.Occupant) error
}

// Constructor returning both the struct and the interface
func NewSearchRepository(indexer *bleveindex.IndexingService) (*SearchRepository, SearchRepositoryInterface) {
	repo := &SearchRepository{indexer: indexer}
	return repo, repo
}

func (r *SearchRepository) DeleteAllIndices(ctx context.Context) error {
	return r.indexer.DeleteAllIndices()
}
