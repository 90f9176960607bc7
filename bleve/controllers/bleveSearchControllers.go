package controllers

import (
	"hotel-management-backend/bleve/repositories"
)

type SearchController struct {
	repo *repositories.SearchRepository
}

func NewSearchController(repo *repositories.SearchRepository) *SearchController {
	return &SearchController{repo: repo}
}
