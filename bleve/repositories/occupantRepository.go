package repositories

import (
	"hotel-management-backend/config"
	"hotel-management-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

type bleveOccupantDoc struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Classification string `json:"classification"`
}

func toOccupantDoc(occupant models.Occupant) bleveOccupantDoc {
	doc := bleveOccupantDoc{
		ID:             occupant.ID.String(),
		FullName:       occupant.FullName,
		Phone:          occupant.Phone,
		Classification: string(occupant.Classification),
	}
	if occupant.Email != nil {
		doc.Email = *occupant.Email
	}
	return doc
}

// SearchOccupants matches on name, phone and email.
func (r *SearchRepository) SearchOccupants(queryString string) (*bleve.SearchResult, error) {
	booleanQuery := bleve.NewBooleanQuery()

	fieldsToSearch := []string{"full_name", "phone", "email"}

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

	return r.indexer.SearchIndex("occupants", booleanQuery, 20)
}

func (r *SearchRepository) GetOccupantDocument(id string) (interface{}, error) {
	return r.indexer.GetDocument("occupants", id)
}

func (r *SearchRepository) IndexSingleOccupant(occupant models.Occupant) error {
	err := r.indexer.IndexDocument("occupants", occupant.ID.String(), toOccupantDoc(occupant))
	if err != nil {
		config.Logger.Error("Failed to index occupant into Bleve",
			zap.Error(err),
			zap.String("occupant_id", occupant.ID.String()))
		return err
	}

	return nil
}

func (r *SearchRepository) IndexExistingOccupants(occupants []models.Occupant) error {
	docsToBleveIndex := make(map[string]interface{})

	for _, occupant := range occupants {
		docsToBleveIndex[occupant.ID.String()] = toOccupantDoc(occupant)
	}

	if len(docsToBleveIndex) == 0 {
		config.Logger.Info("No existing occupants to index into Bleve.")
		return nil
	}

	err := r.indexer.BulkIndexDocuments("occupants", docsToBleveIndex)
	if err != nil {
		config.Logger.Error("Failed to bulk index existing occupants into Bleve", zap.Error(err))
		return err
	}

	config.Logger.Info("Bulk indexed existing occupants into Bleve", zap.Int("count", len(docsToBleveIndex)))
	return nil
}
