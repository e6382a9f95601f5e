package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"inkwire.app/newsroom/common"
	"inkwire.app/newsroom/common/id"
	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/store"
)

var ErrOrganizationNotFound = errors.New("organization not found")

type OrganizationService interface {
	Create(ctx context.Context, name string, slug *string) (*model.Organization, error)
	Get(ctx context.Context, id int64) (*model.Organization, error)
	Update(ctx context.Context, id int64, name string, slug *string) (*model.Organization, error)
	Delete(ctx context.Context, id int64) error
}

type organizationService struct {
	orgStore store.OrganizationStore
}

func NewOrganizationService(orgStore store.OrganizationStore) OrganizationService {
	return &organizationService{orgStore: orgStore}
}

func (s *organizationService) Create(ctx context.Context, name string, slug *string) (*model.Organization, error) {
	finalSlug, err := s.ensureSlug(ctx, name, slug, 0)
	if err != nil {
		return nil, err
	}

	org := &model.Organization{
		ID:   id.New(),
		Name: name,
		Slug: finalSlug,
	}

	if err := s.orgStore.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("creating organization: %w", err)
	}

	slog.InfoContext(ctx, "organization created", "organization_id", org.ID, "slug", org.Slug)
	return org, nil
}

func (s *organizationService) Get(ctx context.Context, id int64) (*model.Organization, error) {
	org, err := s.orgStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) Update(ctx context.Context, orgID int64, name string, slug *string) (*model.Organization, error) {
	org, err := s.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}

	org.Name = name
	if slug != nil && *slug != "" && *slug != org.Slug {
		finalSlug, err := s.ensureSlug(ctx, name, slug, orgID)
		if err != nil {
			return nil, err
		}
		org.Slug = finalSlug
	}

	if err := s.orgStore.Update(ctx, org); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("updating organization: %w", err)
	}

	return org, nil
}

func (s *organizationService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.orgStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting organization: %w", err)
	}
	slog.InfoContext(ctx, "organization deleted", "organization_id", id)
	return nil
}

// ensureSlug resolves the final slug, adding a numeric suffix when the
// candidate is taken by another organization. selfID exempts the row
// being updated from the availability check.
func (s *organizationService) ensureSlug(ctx context.Context, name string, slug *string, selfID int64) (string, error) {
	input := name
	if slug != nil && *slug != "" {
		input = *slug
	}

	base, err := common.Slugify(input, "org")
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	available, err := s.slugAvailable(ctx, base, selfID)
	if err != nil {
		return "", err
	}
	if available {
		return base, nil
	}

	// Add numeric suffix until available
	for i := 1; i <= 20; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		available, err := s.slugAvailable(ctx, candidate, selfID)
		if err != nil {
			return "", err
		}
		if available {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("unable to find available slug for %q", base)
}

func (s *organizationService) slugAvailable(ctx context.Context, slug string, selfID int64) (bool, error) {
	existing, err := s.orgStore.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("checking slug availability: %w", err)
	}
	return selfID != 0 && existing.ID == selfID, nil
}
