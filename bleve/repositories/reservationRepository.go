package repositories

import (
	"hotel-management-backend/config"
	"hotel-management-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

type bleveReservationDoc struct {
	ID            string `json:"id"`
	Number        string `json:"number"`
	ReferenceCode string `json:"reference_code"`
	OccupantName  string `json:"occupant_name"`
	OccupantPhone string `json:"occupant_phone"`
	ResourceCode  string `json:"resource_code"`
	ResourceName  string `json:"resource_name"`
	Status        string `json:"status"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
}

func toReservationDoc(reservation models.Reservation) bleveReservationDoc {
	return bleveReservationDoc{
		ID:            reservation.ID.String(),
		Number:        reservation.Number,
		ReferenceCode: reservation.ReferenceCode,
		OccupantName:  reservation.Occupant.FullName,
		OccupantPhone: reservation.Occupant.Phone,
		ResourceCode:  reservation.Resource.Code,
		ResourceName:  reservation.Resource.Name,
		Status:        string(reservation.Status),
		CheckIn:       reservation.CheckIn.Format("2006-01-02"),
		CheckOut:      reservation.CheckOut.Format("2006-01-02"),
	}
}

// SearchReservations matches on number, reference code, occupant name/phone
// and resource code, with exact matches ranked above prefix and fuzzy hits.
func (r *SearchRepository) SearchReservations(queryString string) (*bleve.SearchResult, error) {
	booleanQuery := bleve.NewBooleanQuery()

	fieldsToSearch := []string{"number", "reference_code", "occupant_name", "occupant_phone", "resource_code"}

	for _, field := range fieldsToSearch {
		fieldMatchQuery := bleve.NewMatchQuery(queryString)
		fieldMatchQuery.SetField(field)
		fieldMatchQuery.SetBoost(3.0)
		booleanQuery.AddShould(fieldMatchQuery)

		fieldPrefixQuery := bleve.NewPrefixQuery(queryString)
		fieldPrefixQuery.SetField(field)
		fieldPrefixQuery.SetBoost(2.0)
		booleanQuery.AddShould(fieldPrefixQuery)

		fieldFuzzyQuery := bleve.NewFuzzyQuery(queryString)
		fieldFuzzyQuery.SetField(field)
		fieldFuzzyQuery.SetFuzziness(1)
		fieldFuzzyQuery.SetBoost(1.0)
		booleanQuery.AddShould(fieldFuzzyQuery)
	}

	booleanQuery.SetMinShould(1)

	return r.indexer.SearchIndex("reservations", booleanQuery, 20)
}

func (r *SearchRepository) GetReservationDocument(id string) (interface{}, error) {
	return r.indexer.GetDocument("reservations", id)
}

func (r *SearchRepository) IndexSingleReservation(reservation models.Reservation) error {
	err := r.indexer.IndexDocument("reservations", reservation.ID.String(), toReservationDoc(reservation))
	if err != nil {
		config.Logger.Error("Failed to index reservation into Bleve",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()))
		return err
	}

	return nil
}

// DeleteReservation removes a reservation document from the index.
func (r *SearchRepository) DeleteReservation(reservationID string) error {
	err := r.indexer.DeleteDocument("reservations", reservationID)
	if err != nil {
		config.Logger.Error("Failed to delete reservation from Bleve",
			zap.Error(err),
			zap.String("reservation_id", reservationID))
		return err
	}

	return nil
}

// IndexExistingReservations bulk-indexes reservations, used at startup to
// rebuild the index from the database.
func (r *SearchRepository) IndexExistingReservations(reservations []models.Reservation) error {
	docsToBleveIndex := make(map[string]interface{})

	for _, reservation := range reservations {
		docsToBleveIndex[reservation.ID.String()] = toReservationDoc(reservation)
	}

	if len(docsToBleveIndex) == 0 {
		config.Logger.Info("No existing reservations to index into Bleve.")
		return nil
	}

	err := r.indexer.BulkIndexDocuments("reservations", docsToBleveIndex)
	if err != nil {
		config.Logger.Error("Failed to bulk index existing reservations into Bleve", zap.Error(err))
		return err
	}

	config.Logger.Info("Bulk indexed existing reservations into Bleve", zap.Int("count", len(docsToBleveIndex)))
	return nil
}
