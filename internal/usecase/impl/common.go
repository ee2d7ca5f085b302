package impl

import (
	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// pager clamps list requests to the configured page sizes.
type pager struct {
	defaultLimit int
	maxLimit     int
}

func newPager(cfg *config.Config) pager {
	p := pager{defaultLimit: defaultPageLimit, maxLimit: maxPageLimit}
	if cfg == nil {
		return p
	}
	if cfg.Pagination.DefaultLimit > 0 {
		p.defaultLimit = cfg.Pagination.DefaultLimit
	}
	if cfg.Pagination.MaxLimit > 0 {
		p.maxLimit = cfg.Pagination.MaxLimit
	}

	return p
}

func (p pager) normalize(req entity.PageRequest) entity.PageRequest {
	return req.Normalize(p.defaultLimit, p.maxLimit)
}

// translate maps a repository sentinel to its client-facing error and leaves
// everything else untouched.
func translate(err, sentinel error, appErr *domainerrors.BaseError) error {
	if errors.Is(err, sentinel) {
		return appErr.WrapMessage(err.Error())
	}

	return err
}
