package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"awards-backend/internal/domains/vote/model"
	"awards-backend/internal/domains/vote/service"
	"awards-backend/internal/shared/identity"
	"awards-backend/internal/shared/response"
	"awards-backend/pkg/logger"
)

type VoteHandler struct {
	voteService service.ServiceInterface
	resolver    identity.Resolver
}

func NewVoteHandler(voteService service.ServiceInterface, resolver identity.Resolver) *VoteHandler {
	return &VoteHandler{voteService: voteService, resolver: resolver}
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// SubmitVote records a ballot
// POST /api/v1/votes
func (h *VoteHandler) SubmitVote(c *gin.Context) {
	// Step 1: Parse request
	var req model.SubmitVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 2: Resolve voter identity
	voter, ok := h.resolveVoter(c, req.Email)
	if !ok {
		return
	}

	// Step 3: Submit
	result, err := h.voteService.Submit(c.Request.Context(), voter, req.Selections)
	if err != nil {
		h.respondVoteError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, model.SubmitVoteResponse{
		VoteID:      result.Vote.ID,
		Selections:  result.Vote.Selections,
		SubmittedAt: result.Vote.CreatedAt,
		Reconciled:  result.Reconciled,
	})
}

// VoteStatus reports whether the caller has voted
// GET /api/v1/votes/status?email=
func (h *VoteHandler) VoteStatus(c *gin.Context) {
	voter, ok := h.resolveVoter(c, c.Query("email"))
	if !ok {
		return
	}

	status, err := h.voteService.Status(c.Request.Context(), voter)
	if err != nil {
		h.respondVoteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}

// MyVote returns the caller's own ballot with display names
// GET /api/v1/votes/me?email=
func (h *VoteHandler) MyVote(c *gin.Context) {
	voter, ok := h.resolveVoter(c, c.Query("email"))
	if !ok {
		return
	}

	ballot, err := h.voteService.MyVote(c.Request.Context(), voter)
	if err != nil {
		h.respondVoteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ballot)
}

// GetResults returns the cached public tally
// GET /api/v1/results
func (h *VoteHandler) GetResults(c *gin.Context) {
	tally, err := h.voteService.Results(c.Request.Context())
	if err != nil {
		h.respondVoteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tally)
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// GetTally returns per-category results
// GET /api/v1/admin/votes/tally?fresh=true
func (h *VoteHandler) GetTally(c *gin.Context) {
	fresh, _ := strconv.ParseBool(c.DefaultQuery("fresh", "false"))

	tally, err := h.voteService.Tally(c.Request.Context(), fresh)
	if err != nil {
		h.respondVoteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tally)
}

// ListVoters returns recorded ballots, newest first
// GET /api/v1/admin/votes?page=1&limit=50
func (h *VoteHandler) ListVoters(c *gin.Context) {
	var req model.ListVotersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	req.Normalize()

	votes, total, err := h.voteService.ListVoters(c.Request.Context(), req)
	if err != nil {
		h.respondVoteError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, votes, &response.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// ExportResults downloads the tally and ballots as an Excel workbook
// GET /api/v1/admin/votes/export
func (h *VoteHandler) ExportResults(c *gin.Context) {
	f, err := h.voteService.ExportResults(c.Request.Context())
	if err != nil {
		h.respondVoteError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("vote-results-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		logger.Error("Failed to write results workbook", err)
	}
}

// =====================================================
// HELPERS
// =====================================================

func (h *VoteHandler) resolveVoter(c *gin.Context, email string) (identity.Voter, bool) {
	return identity.FromRequest(c, h.resolver, email, identity.Rejection{
		Code:   model.ErrCodeInvalidIdentity,
		SignIn: "Sign in to vote",
	})
}

func (h *VoteHandler) respondVoteError(c *gin.Context, err error) {
	var voteErr *model.VoteError
	if !errors.As(err, &voteErr) {
		logger.Error("Unexpected vote error", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	switch voteErr.Code {
	case model.ErrCodeDuplicateVote:
		details := model.DuplicateVoteResponse{AlreadyVoted: true}
		if voteErr.Existing != nil {
			details.VotedAt = &voteErr.Existing.CreatedAt
		}
		response.ErrorWithDetails(c, http.StatusConflict, voteErr.Code, voteErr.Message, details)

	case model.ErrCodeValidation:
		var unknown model.UnknownNomineeError
		if errors.As(err, &unknown) {
			response.ErrorWithDetails(c, http.StatusBadRequest, voteErr.Code, voteErr.Message, gin.H{
				"category_id": unknown.CategoryID,
				"nominee_id":  unknown.NomineeID,
			})
			return
		}
		response.ErrorResponse(c, http.StatusBadRequest, voteErr.Code, voteErr.Message)

	case model.ErrCodeInvalidIdentity:
		response.ErrorResponse(c, http.StatusBadRequest, voteErr.Code, voteErr.Message)

	case model.ErrCodeVoteNotFound:
		response.ErrorResponse(c, http.StatusNotFound, voteErr.Code, voteErr.Message)

	case model.ErrCodeStorageUnavailable:
		logger.Error("Vote storage unavailable", err)
		response.ErrorResponse(c, http.StatusServiceUnavailable, voteErr.Code, voteErr.Message)

	default:
		response.InternalServerError(c, "Internal server error")
	}
}
