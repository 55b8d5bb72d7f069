package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edumetric/edumetric/internal/engine"
	"github.com/edumetric/edumetric/pkg/database/queries"
	"github.com/edumetric/edumetric/pkg/models"
	"github.com/edumetric/edumetric/pkg/validation"
)

type StudentHandler struct {
	repo   *queries.StudentRepository
	engine *engine.Engine
}

func NewStudentHandler(repo *queries.StudentRepository, eng *engine.Engine) *StudentHandler {
	return &StudentHandler{
		repo:   repo,
		engine: eng,
	}
}

// List returns the roster snapshot, optionally narrowed by dept and year
// query parameters.
func (h *StudentHandler) List(c *gin.Context) {
	dept := strings.ToUpper(c.Query("dept"))
	year, _ := strconv.Atoi(c.Query("year"))

	snapshot := h.engine.Snapshot()

	var out []models.StudentRecord
	for i := range snapshot {
		r := &snapshot[i]
		if dept != "" && r.Dept != dept {
			continue
		}
		if year != 0 && r.Year != year {
			continue
		}
		out = append(out, *r)
	}
	if out == nil {
		out = []models.StudentRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"students": out,
		"count":    len(out),
	})
}

func (h *StudentHandler) Get(c *gin.Context) {
	rno := strings.ToUpper(c.Param("rno"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	student, err := h.repo.GetByRNO(ctx, rno)
	if err != nil {
		if err == queries.ErrStudentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) Create(c *gin.Context) {
	var record models.StudentRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record.RNO = strings.ToUpper(validation.SanitizeString(record.RNO))
	if err := validation.ValidateRollNumber(record.RNO); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !record.HasIdentity() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rno and name are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.Insert(ctx, &record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create student"})
		return
	}

	if err := h.engine.Refresh(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "student created but roster refresh failed"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *StudentHandler) Update(c *gin.Context) {
	rno := strings.ToUpper(c.Param("rno"))

	var record models.StudentRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	record.RNO = rno

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.Update(ctx, &record); err != nil {
		if err == queries.ErrStudentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update student"})
		return
	}

	if err := h.engine.Refresh(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "student updated but roster refresh failed"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *StudentHandler) Delete(c *gin.Context) {
	rno := strings.ToUpper(c.Param("rno"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.Delete(ctx, rno); err != nil {
		if err == queries.ErrStudentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete student"})
		return
	}

	if err := h.engine.Refresh(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "student deleted but roster refresh failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": rno})
}

// Predict runs the full analysis pipeline for one student, persisting the
// resulting labels and raising a mentor alert when warranted.
func (h *StudentHandler) Predict(c *gin.Context) {
	rno := strings.ToUpper(c.Param("rno"))

	response := h.engine.AnalyzeStudent(c.Request.Context(), rno)
	if response.IsError() {
		c.JSON(http.StatusNotFound, response)
		return
	}

	c.JSON(http.StatusOK, response.Student)
}

// Meta lists the departments and years present in the roster, for building
// query filters.
func (h *StudentHandler) Meta(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	depts, err := h.repo.ListDepartments(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	years, err := h.repo.ListYears(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"departments": depts,
		"years":       years,
	})
}
