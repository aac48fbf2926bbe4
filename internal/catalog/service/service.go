// Package service exposes the catalog/field existence lookup the customer
// aggregate needs before persisting custom field values. Definitions are
// owned by the schema service; this side only answers "does it exist".
package service

import (
	"context"
	"errors"
	"log/slog"

	"custodia/internal/catalog/models"
	"custodia/internal/platform/config"
	platformredis "custodia/internal/platform/redis"
	"custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/platform/sentinel"
)

type Store interface {
	FindCatalog(ctx context.Context, id domain.CatalogID) (*models.Catalog, error)
	FindField(ctx context.Context, catalogID domain.CatalogID, fieldID domain.FieldID) (*models.Field, error)
}

// Lookup answers existence queries, with an optional Redis cache in front
// of the store. Only positive results are cached: a stale "exists" is
// harmless (the schema service never deletes definitions in use), while a
// stale "missing" would block valid field values.
type Lookup struct {
	store  Store
	cache  *platformredis.Client
	logger *slog.Logger
}

func NewLookup(store Store, cache *platformredis.Client, logger *slog.Logger) *Lookup {
	return &Lookup{store: store, cache: cache, logger: logger}
}

// CatalogExists reports whether the catalog is defined.
func (l *Lookup) CatalogExists(ctx context.Context, id domain.CatalogID) (bool, error) {
	cacheKey := "catalog:" + id.String()
	if l.cached(ctx, cacheKey) {
		return true, nil
	}

	_, err := l.store.FindCatalog(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up catalog %s", id)
	}
	l.remember(ctx, cacheKey)
	return true, nil
}

// FieldExists reports whether the field is defined within the catalog.
func (l *Lookup) FieldExists(ctx context.Context, catalogID domain.CatalogID, fieldID domain.FieldID) (bool, error) {
	cacheKey := "field:" + catalogID.String() + ":" + fieldID.String()
	if l.cached(ctx, cacheKey) {
		return true, nil
	}

	_, err := l.store.FindField(ctx, catalogID, fieldID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up field %s/%s", catalogID, fieldID)
	}
	l.remember(ctx, cacheKey)
	return true, nil
}

func (l *Lookup) cached(ctx context.Context, key string) bool {
	if l.cache == nil {
		return false
	}
	ok, err := l.cache.Exists(ctx, key).Result()
	if err != nil {
		l.logger.WarnContext(ctx, "catalog cache read failed", "key", key, "error", err)
		return false
	}
	return ok > 0
}

func (l *Lookup) remember(ctx context.Context, key string) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Set(ctx, key, "1", config.CatalogCacheTTL).Err(); err != nil {
		l.logger.WarnContext(ctx, "catalog cache write failed", "key", key, "error", err)
	}
}
