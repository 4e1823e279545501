package httpserver

import (
	"context"
	"log"

	"sowin-pos/internal/domain"
)

type handlers struct {
	deps   Deps
	logger *log.Logger
}

// businessProfile falls back to the default name when preferences cannot be read.
func (h *handlers) businessProfile(ctx context.Context) domain.BusinessProfile {
	biz, err := h.deps.Preferences.Business(ctx)
	if err != nil {
		h.logger.Printf("httpserver: load business profile error=%v", err)
		return domain.BusinessProfile{Name: domain.DefaultBusinessName}
	}
	return biz
}
