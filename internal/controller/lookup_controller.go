package controller

import (
	"edu_assessment_backend/internal/repository"
	"edu_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LookupController struct {
	LookupRepo *repository.LookupRepository
}

func NewLookupController(lookupRepo *repository.LookupRepository) *LookupController {
	return &LookupController{LookupRepo: lookupRepo}
}

// Languages godoc
// @Summary List supported languages
// @Tags lookups
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Language}
// @Router /api/languages [get]
func (c *LookupController) Languages(ctx *gin.Context) {
	langs, err := c.LookupRepo.ListLanguages()
	if err != nil {
		util.RenderError(ctx, util.NewStoreError(err))
		return
	}
	util.Success(ctx, langs)
}

// Countries godoc
// @Summary List supported countries
// @Tags lookups
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Country}
// @Router /api/countries [get]
func (c *LookupController) Countries(ctx *gin.Context) {
	countries, err := c.LookupRepo.ListCountries()
	if err != nil {
		util.RenderError(ctx, util.NewStoreError(err))
		return
	}
	util.Success(ctx, countries)
}
