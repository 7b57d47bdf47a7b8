package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/domain/medicine"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/httpresp"
)

type MedicineHandler struct {
	medicines medicine.Repository
	log       *zap.Logger
}

func NewMedicineHandler(medicines medicine.Repository, log *zap.Logger) *MedicineHandler {
	return &MedicineHandler{medicines: medicines, log: log}
}

func (h *MedicineHandler) Search(c *gin.Context) {
	q := medicine.Query{
		Text:  c.Query("query"),
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", medicine.DefaultPageSize),
	}.Normalize()

	items, total, err := h.medicines.Search(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, medicine.NewPage(q, items, total))
}

func (h *MedicineHandler) Get(c *gin.Context) {
	id, err := pathID(c, medicine.ErrNotFound)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	m, err := h.medicines.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, m)
}
