package memory

import (
	"fmt"
	"strings"
	"time"

	"markit-notes-be/internal/dto"

	"github.com/patrickmn/go-cache"
)

// PathCacheRepository keeps resolved folder breadcrumbs per (user, folder).
type PathCacheRepository struct {
	cache *cache.Cache
}

func NewPathCacheRepository(ttl time.Duration) *PathCacheRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &PathCacheRepository{
		cache: cache.New(ttl, 2*ttl),
	}
}

func userPrefix(userId uint) string {
	return fmt.Sprintf("u%d:", userId)
}

func pathKey(userId, folderId uint) string {
	return fmt.Sprintf("%sf%d", userPrefix(userId), folderId)
}

func (r *PathCacheRepository) Save(userId, folderId uint, crumbs []dto.BreadcrumbItem) {
	stored := make([]dto.BreadcrumbItem, len(crumbs))
	copy(stored, crumbs)
	r.cache.Set(pathKey(userId, folderId), stored, cache.DefaultExpiration)
}

func (r *PathCacheRepository) Get(userId, folderId uint) ([]dto.BreadcrumbItem, bool) {
	x, found := r.cache.Get(pathKey(userId, folderId))
	if !found {
		return nil, false
	}
	stored := x.([]dto.BreadcrumbItem)
	out := make([]dto.BreadcrumbItem, len(stored))
	copy(out, stored)
	return out, true
}

// DeleteUser drops every cached path of one user.
func (r *PathCacheRepository) DeleteUser(userId uint) {
	prefix := userPrefix(userId)
	for key := range r.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			r.cache.Delete(key)
		}
	}
}

func (r *PathCacheRepository) Len() int {
	return r.cache.ItemCount()
}
