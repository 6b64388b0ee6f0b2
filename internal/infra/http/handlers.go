package http

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Uchiha-Network/Story-Guard/internal/domain"
	"github.com/Uchiha-Network/Story-Guard/internal/usecase"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type registerRequest struct {
	ImageName   string   `json:"imageName"`
	CreatorName string   `json:"creatorName"`
	LicenseType string   `json:"licenseType"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	ContentBase64 string            `json:"contentBase64,omitempty"`
	ImageHash     string            `json:"imageHash,omitempty"`
	FileSize      int64             `json:"fileSize,omitempty"`
	Dimensions    domain.Dimensions `json:"dimensions,omitempty"`
}

type registerResponse struct {
	Asset     domain.RegisteredAsset `json:"asset"`
	IPAssetID string                 `json:"ipAssetId,omitempty"`
	TxHash    string                 `json:"txHash,omitempty"`
	Network   string                 `json:"network,omitempty"`
}

type scanRequest struct {
	Target     string             `json:"target"`
	Candidates []domain.Candidate `json:"candidates"`
}

type scanResponse struct {
	ScanID             string             `json:"scanId"`
	Target             string             `json:"target"`
	CandidatesExamined int                `json:"candidatesExamined"`
	ViolationsDetected int                `json:"violationsDetected"`
	Violations         []domain.Violation `json:"violations"`
}

type updateViolationRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleRegisterAsset(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	var content []byte
	if req.ContentBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.ContentBase64)
		if err != nil {
			writeErrorCode(c, http.StatusBadRequest, "INVALID_CONTENT_ENCODING", "invalid content encoding")
			return
		}
		content = decoded
	}
	resp, err := s.registerUC.Execute(c.Request.Context(), usecase.RegisterAssetRequest{
		ImageName:    req.ImageName,
		CreatorName:  req.CreatorName,
		LicenseType:  req.LicenseType,
		Description:  req.Description,
		Tags:         req.Tags,
		ContentBytes: content,
		ImageHash:    req.ImageHash,
		FileSize:     req.FileSize,
		Dimensions:   req.Dimensions,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	out := registerResponse{Asset: resp.Asset}
	if resp.Receipt != nil {
		out.IPAssetID = resp.Receipt.IPAssetID
		out.TxHash = resp.Receipt.TxHash
		out.Network = resp.Receipt.Network
	}
	c.JSON(http.StatusCreated, out)
}

func (s *Server) handleListAssets(c *gin.Context) {
	assets := s.store.ListAssets()
	c.JSON(http.StatusOK, gin.H{"data": assets, "total": len(assets)})
}

func (s *Server) handleDeleteAsset(c *gin.Context) {
	if err := s.store.DeleteAsset(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleRunScan(c *gin.Context) {
	if !s.enforceRateLimit(c, "scans:run") {
		return
	}
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	result, err := s.scanUC.Execute(c.Request.Context(), usecase.ScanRequest{
		Target:     req.Target,
		Candidates: req.Candidates,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	violations := result.Violations
	if violations == nil {
		violations = []domain.Violation{}
	}
	c.JSON(http.StatusOK, scanResponse{
		ScanID:             result.Record.ID,
		Target:             result.Record.URL,
		CandidatesExamined: result.Record.ImagesFound,
		ViolationsDetected: result.Record.ViolationsDetected,
		Violations:         violations,
	})
}

func (s *Server) handleScanHistory(c *gin.Context) {
	scans := s.store.ListScans()
	c.JSON(http.StatusOK, gin.H{"data": scans, "total": len(scans)})
}

func (s *Server) handleListViolations(c *gin.Context) {
	var violations []domain.Violation
	if status := c.Query("status"); status != "" {
		vs := domain.ViolationStatus(status)
		if !vs.Valid() {
			writeError(c, domain.ErrInvalidStatus)
			return
		}
		violations = s.store.ViolationsByStatus(vs)
	} else {
		violations = s.store.ListViolations()
	}
	if violations == nil {
		violations = []domain.Violation{}
	}
	c.JSON(http.StatusOK, gin.H{"data": violations, "total": len(violations)})
}

func (s *Server) handleUpdateViolation(c *gin.Context) {
	var req updateViolationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	if err := s.store.UpdateViolationStatus(c.Param("id"), domain.ViolationStatus(req.Status)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "violation status updated"})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.statsUC.Compute())
}

func writeError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusBadRequest, "VALIDATION_FAILED"
	case errors.Is(err, domain.ErrInvalidStatus):
		status, code = http.StatusBadRequest, "INVALID_STATUS"
	case errors.Is(err, domain.ErrDecode):
		status, code = http.StatusBadRequest, "DECODE_FAILED"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrPersistence):
		status, code = http.StatusServiceUnavailable, "PERSISTENCE_FAILED"
	}
	writeErrorCode(c, status, code, err.Error())
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{
		Code:    code,
		Message: message,
	})
}
