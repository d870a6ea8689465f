package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"reserve-management-api/config"
	"reserve-management-api/models"
)

var (
	requirementCacheMu sync.RWMutex
	requirementCache   *requirementCacheEntry
	requirementTTL     = 5 * time.Minute
)

type requirementCacheEntry struct {
	requirements []models.PromotionRequirement
	byFromRank   map[string]models.PromotionRequirement
	fetchedAt    time.Time
}

func loadRequirements(force bool) (*requirementCacheEntry, error) {
	requirementCacheMu.RLock()
	cached := requirementCache
	requirementCacheMu.RUnlock()

	if cached != nil && !force && time.Since(cached.fetchedAt) < requirementTTL {
		return cached, nil
	}

	requirementCacheMu.Lock()
	defer requirementCacheMu.Unlock()

	if requirementCache != nil && !force && time.Since(requirementCache.fetchedAt) < requirementTTL {
		return requirementCache, nil
	}

	var rows []models.PromotionRequirement
	if err := config.DB.Where("is_active = ? AND delete_at IS NULL", true).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load promotion requirements: %w", err)
	}

	byFromRank := make(map[string]models.PromotionRequirement, len(rows))
	for _, req := range rows {
		if req.FromRank == "" {
			continue
		}
		byFromRank[normalizeRankKey(req.FromRank)] = req
	}

	entry := &requirementCacheEntry{
		requirements: rows,
		byFromRank:   byFromRank,
		fetchedAt:    time.Now(),
	}
	requirementCache = entry
	return entry, nil
}

func normalizeRankKey(rank string) string {
	return strings.ToLower(strings.TrimSpace(rank))
}

// ClearRequirementCache invalidates the in-memory requirement cache. Admin
// requirement mutations call this so scoring picks up changes immediately.
func ClearRequirementCache() {
	requirementCacheMu.Lock()
	defer requirementCacheMu.Unlock()
	requirementCache = nil
}

// GetActiveRequirements returns all active requirements with caching support.
func GetActiveRequirements() ([]models.PromotionRequirement, error) {
	entry, err := loadRequirements(false)
	if err != nil {
		return nil, err
	}
	return entry.requirements, nil
}

// GetRequirementForRank returns the active requirement for the given rank.
func GetRequirementForRank(rank string) (*models.PromotionRequirement, error) {
	key := normalizeRankKey(rank)
	if key == "" {
		return nil, errors.New("rank is required")
	}

	entry, err := loadRequirements(false)
	if err != nil {
		return nil, err
	}

	if req, ok := entry.byFromRank[key]; ok {
		return &req, nil
	}

	// Force refresh cache once before giving up
	entry, err = loadRequirements(true)
	if err != nil {
		return nil, err
	}

	if req, ok := entry.byFromRank[key]; ok {
		return &req, nil
	}

	return nil, fmt.Errorf("no active promotion requirement for rank '%s'", rank)
}
