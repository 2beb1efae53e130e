package service

import (
	"context"
	"errors"
	"time"

	"github.com/Sarab71/fossnflories/internal/cache"
	"github.com/Sarab71/fossnflories/internal/domain"
	"github.com/Sarab71/fossnflories/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

type CartService struct {
	repo   repository.CartRepository
	cache  cache.CartCache
	logger zerolog.Logger
	sfg    singleflight.Group // Prevents cache stampede
}

func NewCartService(repo repository.CartRepository, cache cache.CartCache, logger zerolog.Logger) *CartService {
	return &CartService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetCart never fails for an owner without a cart; it returns an empty one.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("cache get failed")
		}

		cart, errGet := s.repo.GetCart(ctx, userID)
		if errors.Is(errGet, repository.ErrCartNotFound) {
			return &domain.Cart{
				UserID:    userID,
				Items:     []domain.CartItem{},
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		}
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			if errSet := s.cache.Set(context.Background(), userID, cart); errSet != nil {
				s.logger.Warn().Err(errSet).Str("user_id", userID).Msg("cache set failed")
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

func (s *CartService) AddItem(ctx context.Context, userID string, item domain.CartItem) (*domain.Cart, error) {
	if err := s.repo.AddItem(ctx, userID, item); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("product_id", item.ProductID).Msg("add cart item failed")
		return nil, err
	}

	s.invalidateCache(userID)
	return s.GetCart(ctx, userID)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if err := s.repo.UpdateItemQuantity(ctx, userID, productID, quantity); err != nil {
		if !errors.Is(err, repository.ErrItemNotFound) {
			s.logger.Error().Err(err).Str("user_id", userID).Str("product_id", productID).Msg("update cart item failed")
		}
		return nil, err
	}

	s.invalidateCache(userID)
	return s.GetCart(ctx, userID)
}

// RemoveItem is idempotent at the line level: removing an absent line from an
// existing cart succeeds and returns the cart unchanged.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	if err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
		if !errors.Is(err, repository.ErrCartNotFound) {
			s.logger.Error().Err(err).Str("user_id", userID).Str("product_id", productID).Msg("remove cart item failed")
		}
		return nil, err
	}

	s.invalidateCache(userID)
	return s.GetCart(ctx, userID)
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if err := s.repo.DeleteCart(ctx, userID); err != nil {
		if !errors.Is(err, repository.ErrCartNotFound) {
			s.logger.Error().Err(err).Str("user_id", userID).Msg("clear cart failed")
		}
		return err
	}

	s.invalidateCache(userID)
	return nil
}

func (s *CartService) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("cache invalidate failed")
	}
}
