package handlers

import (
	apperrors "cna-backend/internal/common/errors"
	"cna-backend/internal/http/middleware"
	"cna-backend/internal/http/response"
	"cna-backend/internal/models"
	analyzenotice "cna-backend/internal/workers/drafting/analyze-notice"
	draftreply "cna-backend/internal/workers/drafting/draft-reply"
	renderdraft "cna-backend/internal/workers/drafting/render-draft"
	resolvetemplate "cna-backend/internal/workers/drafting/resolve-template"

	"github.com/gin-gonic/gin"
)

// DraftingHandler serves the template, analysis and drafting endpoints.
type DraftingHandler struct {
	resolver     *resolvetemplate.Handler
	analyzer     *analyzenotice.Handler
	renderer     *renderdraft.Handler
	orchestrator *draftreply.Handler
	errHandler   *apperrors.ErrorHandler
	explicit     bool
}

type DraftingDeps struct {
	Resolver     *resolvetemplate.Handler
	Analyzer     *analyzenotice.Handler
	Renderer     *renderdraft.Handler
	Orchestrator *draftreply.Handler
	ErrHandler   *apperrors.ErrorHandler
	// ExplicitStatusCodes maps business outcomes to 404/422/501 instead of 200.
	ExplicitStatusCodes bool
}

func NewDraftingHandler(deps DraftingDeps) *DraftingHandler {
	return &DraftingHandler{
		resolver:     deps.Resolver,
		analyzer:     deps.Analyzer,
		renderer:     deps.Renderer,
		orchestrator: deps.Orchestrator,
		errHandler:   deps.ErrHandler,
		explicit:     deps.ExplicitStatusCodes,
	}
}

type validationFailedBody struct {
	Status        string   `json:"status"`
	MissingFields []string `json:"missing_fields"`
	Message       string   `json:"message"`
}

type draftGeneratedBody struct {
	Status       string              `json:"status"`
	DraftingMode models.DraftingMode `json:"drafting_mode,omitempty"`
	TemplateUsed string              `json:"template_used,omitempty"`
	DraftText    string              `json:"draft_text"`
}

func (h *DraftingHandler) ResolveTemplate(c *gin.Context) {
	var input resolvetemplate.Input
	if !h.bind(c, &input) {
		return
	}

	out, err := h.resolver.Execute(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !out.Matched {
		h.fail(c, apperrors.NewTemplateNotFoundError(input.Law, input.NoticeType))
		return
	}
	response.RespondOK(c, gin.H{"template_selected": out.Template})
}

func (h *DraftingHandler) AnalyzeNotice(c *gin.Context) {
	var input analyzenotice.Input
	if !h.bind(c, &input) {
		return
	}

	out, err := h.analyzer.Execute(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !out.Matched {
		h.fail(c, apperrors.NewNoticeNotSupportedError(out.Message))
		return
	}
	response.RespondOK(c, out.Result)
}

// GSTReply renders the GST letter directly from the request fields without
// classification, in the normal tone.
func (h *DraftingHandler) GSTReply(c *gin.Context) {
	var req models.DraftRequest
	if !h.bind(c, &req) {
		return
	}

	out, err := h.renderer.Execute(c.Request.Context(), &renderdraft.Input{
		Law:    "GST",
		Fields: req.Fields(),
		Mode:   models.DraftingModeNormal,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, draftGeneratedBody{
		Status:    draftreply.StatusDraftGenerated,
		DraftText: out.DraftText,
	})
}

func (h *DraftingHandler) Draft(c *gin.Context) {
	var input draftreply.Input
	if !h.bind(c, &input) {
		return
	}

	out, err := h.orchestrator.Execute(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, err)
		return
	}

	switch out.Outcome {
	case draftreply.OutcomeNotFound:
		h.fail(c, apperrors.NewNoticeNotSupportedError(out.Message))
	case draftreply.OutcomeValidationFailed:
		h.errHandler.Handle(c.FullPath(), middleware.GetRequestID(c), apperrors.NewValidationFailedError(out.MissingFields))
		c.JSON(apperrors.HTTPStatus(apperrors.ErrCodeValidationFailed, h.explicit), validationFailedBody{
			Status:        draftreply.StatusValidationFailed,
			MissingFields: out.MissingFields,
			Message:       out.Message,
		})
	case draftreply.OutcomeUnsupportedLaw:
		h.fail(c, apperrors.NewUnsupportedLawError(input.Law))
	default:
		response.RespondOK(c, draftGeneratedBody{
			Status:       draftreply.StatusDraftGenerated,
			DraftingMode: out.DraftingMode,
			TemplateUsed: out.TemplateUsed,
			DraftText:    out.DraftText,
		})
	}
}

// bind decodes the JSON body. Shape errors were already rejected by the
// schema middleware, so a failure here is a type mismatch it did not cover.
func (h *DraftingHandler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.fail(c, apperrors.NewInvalidRequestError(err.Error()))
		return false
	}
	return true
}

func (h *DraftingHandler) fail(c *gin.Context, err error) {
	stdErr := h.errHandler.Handle(c.FullPath(), middleware.GetRequestID(c), err)
	response.RespondStandardError(c, stdErr, h.explicit)
}
