// Package drafting wires the drafting workers into one pipeline.
package drafting

import (
	"cna-backend/internal/catalog"
	"cna-backend/internal/common/logger"
	analyzenotice "cna-backend/internal/workers/drafting/analyze-notice"
	draftreply "cna-backend/internal/workers/drafting/draft-reply"
	renderdraft "cna-backend/internal/workers/drafting/render-draft"
	resolvetemplate "cna-backend/internal/workers/drafting/resolve-template"
	validatefields "cna-backend/internal/workers/drafting/validate-fields"
)

type Pipeline struct {
	Resolver     *resolvetemplate.Handler
	Analyzer     *analyzenotice.Handler
	Validator    *validatefields.Handler
	Renderer     *renderdraft.Handler
	Orchestrator *draftreply.Handler
}

func NewPipeline(cat *catalog.Catalog, cfg *draftreply.Config, log logger.Logger, opts ...draftreply.Option) *Pipeline {
	p := &Pipeline{
		Resolver:  resolvetemplate.NewHandler(cat, log),
		Analyzer:  analyzenotice.NewHandler(cat, log),
		Validator: validatefields.NewHandler(log),
		Renderer:  renderdraft.NewHandler(log),
	}
	p.Orchestrator = draftreply.NewHandler(cfg, p.Analyzer, p.Validator, p.Renderer, log, opts...)
	return p
}
