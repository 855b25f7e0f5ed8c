// Package carousel manages the promotional slides shown on the storefront
// landing view. Edits come from the admin console only; the role check lives
// with the caller.
package carousel

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/numanubhani/grillhut/internal/models"
	"github.com/numanubhani/grillhut/internal/storage"
)

// ErrImageNotFound is returned when an edit targets an unknown slide id.
var ErrImageNotFound = errors.New("carousel image not found")

type Service struct {
	store *storage.Store
	log   zerolog.Logger
}

func New(store *storage.Store, logger zerolog.Logger) *Service {
	return &Service{store: store, log: logger}
}

// Images returns the rotation, seeded with the default slides on first access.
func (s *Service) Images() ([]models.CarouselImage, error) {
	return s.store.Carousel()
}

// Replace swaps in a whole new rotation.
func (s *Service) Replace(images []models.CarouselImage) error {
	return s.store.SaveCarousel(images)
}

// Add appends a slide with a generated id.
func (s *Service) Add(url, title, description string) (models.CarouselImage, error) {
	if url == "" || title == "" {
		return models.CarouselImage{}, fmt.Errorf("carousel image: url and title are required")
	}
	img := models.CarouselImage{
		ID:          uuid.NewString(),
		URL:         url,
		Title:       title,
		Description: description,
	}
	err := s.store.UpdateCarousel(func(images []models.CarouselImage) []models.CarouselImage {
		return append(images, img)
	})
	if err != nil {
		return models.CarouselImage{}, err
	}
	s.log.Info().Str("image_id", img.ID).Str("title", img.Title).Msg("carousel image added")
	return img, nil
}

// Update replaces the slide with the same id.
func (s *Service) Update(img models.CarouselImage) error {
	found := false
	err := s.store.UpdateCarousel(func(images []models.CarouselImage) []models.CarouselImage {
		for i := range images {
			if images[i].ID == img.ID {
				images[i] = img
				found = true
				break
			}
		}
		return images
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrImageNotFound, img.ID)
	}
	return nil
}

// Remove drops the slide; removing an unknown id is a no-op.
func (s *Service) Remove(id string) error {
	return s.store.UpdateCarousel(func(images []models.CarouselImage) []models.CarouselImage {
		kept := images[:0]
		for _, img := range images {
			if img.ID != id {
				kept = append(kept, img)
			}
		}
		return kept
	})
}
