package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/hyperjump/fsaptvis/internal/models"
	"go.uber.org/zap"
)

var emptyObject = struct{}{}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Service: s.config.Service.Name,
		Version: s.config.Service.Version,
	})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if !isJSON(r) {
		s.respondAnalysisError(w, http.StatusBadRequest, "Request must be JSON")
		return
	}
	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondAnalysisError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}
	if msg := s.validateRequest(&req); msg != "" {
		s.respondAnalysisError(w, http.StatusBadRequest, msg)
		return
	}

	threshold := s.config.Analysis.ThresholdOrDefault()
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	s.logger.Info("processing fsapt analysis request",
		zap.String("ligand_id", *req.LigandID),
		zap.String("protein_id", *req.ProteinID),
		zap.Float64("threshold", threshold),
	)

	rec, err := s.service.GetInteractions(r.Context(), *req.LigandID, *req.ProteinID, threshold)
	if err != nil {
		s.logger.Error("fsapt analysis failed", zap.Error(err))
		s.respondAnalysisError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, models.AnalysisResponse{
		Success: true,
		Data:    rec,
		Message: "Analysis completed successfully",
	})
}

func (s *Server) handleAvailablePairs(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, models.PairsResponse{
		Success: true,
		Pairs:   s.service.AvailablePairs(),
		Message: "Successfully retrieved available pairs",
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ligandID := chi.URLParam(r, "ligand_id")
	proteinID := chi.URLParam(r, "protein_id")
	summary, err := s.service.Summarize(r.Context(), ligandID, proteinID)
	if err != nil {
		s.logger.Error("interaction summary failed", zap.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, models.SummaryResponse{
			Success: false,
			Summary: emptyObject,
			Message: "Error: " + err.Error(),
		})
		return
	}
	s.respondJSON(w, http.StatusOK, models.SummaryResponse{
		Success: true,
		Summary: summary,
		Message: "Summary generated successfully",
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, http.StatusNotFound, "Endpoint not found")
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// validateRequest returns the client-facing message for the first failed field, or "".
func (s *Server) validateRequest(req *models.AnalysisRequest) string {
	err := s.validate.Struct(req)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if verrs[0].Tag() == "required" {
			return "Missing required parameter: " + verrs[0].Field()
		}
		return "Invalid parameter: " + verrs[0].Field()
	}
	return "Invalid request: " + err.Error()
}

// isJSON reports whether the request declares a JSON body (application/json or application/*+json).
func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondAnalysisError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, models.AnalysisResponse{Success: false, Data: emptyObject, Message: message})
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, models.ErrorResponse{Success: false, Message: message})
}
