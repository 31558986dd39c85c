package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"x402-gate/domain/dto"
	"x402-gate/domain/entities"
	"x402-gate/domain/errors"
	"x402-gate/domain/interfaces"
)

// Request headers of the 402 protocol.
const (
	HeaderWalletAddress = "X-Wallet-Address"
	HeaderPayment       = "X-Payment"
)

// handleContent runs one request through the gate.
func (s *Server) handleContent(c *gin.Context) {
	req := interfaces.UnlockRequest{
		ContentType:   c.Param("content_type"),
		ContentID:     c.Param("content_id"),
		WalletAddress: c.GetHeader(HeaderWalletAddress),
	}

	if req.WalletAddress == "" {
		s.exporter.ClientError()
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "missing " + HeaderWalletAddress + " header",
		})
		return
	}

	if header := c.GetHeader(HeaderPayment); header != "" {
		proof, err := entities.ParsePaymentProof(header)
		if err != nil {
			// Terminal for this request; no job state is touched.
			s.exporter.ClientError()
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "malformed payment proof",
				Details: err.Error(),
			})
			return
		}
		req.Proof = proof
	}

	start := time.Now()
	result, err := s.unlock.Execute(c.Request.Context(), req)
	if err != nil {
		if errors.IsClientError(err) {
			s.exporter.ClientError()
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		s.logger.Error("content gate failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		return
	}

	switch {
	case result.Challenge != nil:
		s.exporter.ChallengeIssued(req.ContentType)
		c.JSON(http.StatusPaymentRequired, result.Challenge)
	case result.Rejection != nil:
		s.exporter.ObserveVerifyDuration(time.Since(start).Seconds())
		s.exporter.PaymentRejected(req.ContentType)
		c.JSON(http.StatusPaymentRequired, result.Rejection)
	case result.Content != nil:
		if req.Proof != nil {
			s.exporter.ObserveVerifyDuration(time.Since(start).Seconds())
			s.exporter.PaymentVerified(req.ContentType)
		}
		s.exporter.ContentUnlocked(req.ContentType)
		c.JSON(http.StatusOK, result.Content)
	default:
		s.logger.Error("gate returned empty result",
			"content_type", req.ContentType, "content_id", req.ContentID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}

// handleStatus reports a transaction's on-chain state.
func (s *Server) handleStatus(c *gin.Context) {
	txHash := c.Param("tx_hash")

	status, err := s.status.Execute(c.Request.Context(), txHash)
	if err != nil {
		if errors.IsClientError(err) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error:   "chain lookup failed",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.TxStatusResponse{
		TxHash: txHash,
		Status: string(status),
	})
}

// handleHealth reports process and RPC health.
func (s *Server) handleHealth(c *gin.Context) {
	if !s.verifier.Connected(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "chain": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
