// Package http provides HTTP handlers for access credential operations.
package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	accessDomain "github.com/allisson/accessvault/internal/access/domain"
	"github.com/allisson/accessvault/internal/access/http/dto"
	accessService "github.com/allisson/accessvault/internal/access/service"
	accessUseCase "github.com/allisson/accessvault/internal/access/usecase"
	authHTTP "github.com/allisson/accessvault/internal/auth/http"
	"github.com/allisson/accessvault/internal/httputil"
	customValidation "github.com/allisson/accessvault/internal/validation"
)

// AccessCredentialHandler handles HTTP requests for access credentials.
// Every route except VerifyHandler and GenerateIDHandler expects BearerAuthMiddleware
// to have run, and scopes the operation to the account in the token claims.
type AccessCredentialHandler struct {
	useCase   accessUseCase.AccessCredentialUseCase
	idService accessService.IDService
	logger    *slog.Logger
}

// NewAccessCredentialHandler creates a new access credential handler.
func NewAccessCredentialHandler(
	useCase accessUseCase.AccessCredentialUseCase,
	idService accessService.IDService,
	logger *slog.Logger,
) *AccessCredentialHandler {
	return &AccessCredentialHandler{
		useCase:   useCase,
		idService: idService,
		logger:    logger,
	}
}

// CreateHandler mints a credential for the calling account.
// POST /v1/event-access/default - The body is optional. The environment is always the
// token's; a body naming another environment is rejected with 403.
// Returns 201 Created with the public id and the plaintext secret.
func (h *AccessCredentialHandler) CreateHandler(c *gin.Context) {
	claims, err := authHTTP.RequireClaims(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.CreateAccessCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if req.Environment != "" && accessDomain.Environment(req.Environment) != claims.Environment {
		httputil.HandleErrorGin(c, accessDomain.ErrEnvironmentOutOfScope, h.logger)
		return
	}

	output, err := h.useCase.Issue(c.Request.Context(), &accessDomain.IssueInput{
		AccountID:   claims.AccountID,
		Environment: claims.Environment,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	secret, ok := output.Secret.Take()
	if !ok {
		httputil.HandleErrorGin(c, errors.New("issued secret already consumed"), h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusCreated, dto.CreateAccessCredentialResponse{
		ID:          output.PublicID,
		Secret:      secret,
		Environment: output.Environment.String(),
		CreatedAt:   output.CreatedAt,
	})
}

// ListHandler returns a page of the calling account's credentials.
// GET /v1/event-access?offset=0&limit=50
func (h *AccessCredentialHandler) ListHandler(c *gin.Context) {
	claims, err := authHTTP.RequireClaims(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	credentials, err := h.useCase.List(c.Request.Context(), claims.AccountID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccessCredentialsToListResponse(credentials))
}

// GetHandler returns one credential owned by the calling account (no secret).
// GET /v1/event-access/:id
func (h *AccessCredentialHandler) GetHandler(c *gin.Context) {
	claims, err := authHTTP.RequireClaims(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	credential, err := h.useCase.Get(c.Request.Context(), claims.AccountID, c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccessCredentialToResponse(credential))
}

// RevokeHandler revokes a credential owned by the calling account.
// DELETE /v1/event-access/:id - Returns 204 No Content, also when already revoked.
func (h *AccessCredentialHandler) RevokeHandler(c *gin.Context) {
	claims, err := authHTTP.RequireClaims(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.useCase.Revoke(c.Request.Context(), claims.AccountID, c.Param("id")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// VerifyHandler checks a presented public id and secret pair.
// POST /v1/event-access/verify - Mismatch, unknown id and revoked credential all return
// the same 401.
func (h *AccessCredentialHandler) VerifyHandler(c *gin.Context) {
	var req dto.VerifyAccessCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, accessDomain.ErrInvalidSecret, h.logger)
		return
	}

	credential, err := h.useCase.VerifySecret(c.Request.Context(), req.ID, req.Secret)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccessCredentialToResponse(credential))
}

// GenerateIDHandler returns a fresh public identifier for a known prefix.
// GET /v1/generate-id/:prefix
func (h *AccessCredentialHandler) GenerateIDHandler(c *gin.Context) {
	prefix, err := accessDomain.ParseIDPrefix(c.Param("prefix"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	id, err := h.idService.NewID(prefix)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateIDResponse{ID: id})
}
