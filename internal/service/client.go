package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"inkwire.app/newsroom/common"
	"inkwire.app/newsroom/common/id"
	"inkwire.app/newsroom/internal/compliance"
	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/store"
)

var ErrClientNotFound = errors.New("client not found")

type CreateClientParams struct {
	OrganizationID     int64
	Name               string
	Slug               *string
	ContactName        *string
	ContactEmail       *string
	BannedPhrases      []string
	RequiredDisclaimer *string
}

type UpdateClientParams struct {
	Name               string
	ContactName        *string
	ContactEmail       *string
	BannedPhrases      []string
	RequiredDisclaimer *string
}

type ClientService interface {
	Create(ctx context.Context, params CreateClientParams) (*model.Client, error)
	Get(ctx context.Context, id int64) (*model.Client, error)
	Update(ctx context.Context, id int64, params UpdateClientParams) (*model.Client, error)
	Delete(ctx context.Context, id int64) error
	ListByOrganization(ctx context.Context, orgID int64) ([]model.Client, error)
	// ComplianceRules returns the effective rule set for the client:
	// the house defaults merged with the client's own phrases and
	// disclaimer.
	ComplianceRules(ctx context.Context, clientID int64) (compliance.RuleSet, error)
}

type clientService struct {
	clientStore store.ClientStore
	orgStore    store.OrganizationStore
}

func NewClientService(clientStore store.ClientStore, orgStore store.OrganizationStore) ClientService {
	return &clientService{
		clientStore: clientStore,
		orgStore:    orgStore,
	}
}

func (s *clientService) Create(ctx context.Context, params CreateClientParams) (*model.Client, error) {
	if _, err := s.orgStore.GetByID(ctx, params.OrganizationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	finalSlug, err := s.ensureSlug(ctx, params.OrganizationID, params.Name, params.Slug)
	if err != nil {
		return nil, err
	}

	client := &model.Client{
		ID:                 id.New(),
		OrganizationID:     params.OrganizationID,
		Name:               params.Name,
		Slug:               finalSlug,
		ContactName:        params.ContactName,
		ContactEmail:       params.ContactEmail,
		BannedPhrases:      cleanPhrases(params.BannedPhrases),
		RequiredDisclaimer: params.RequiredDisclaimer,
	}

	if err := s.clientStore.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	slog.InfoContext(ctx, "client created",
		"client_id", client.ID,
		"organization_id", client.OrganizationID,
		"banned_phrases", len(client.BannedPhrases),
	)
	return client, nil
}

func (s *clientService) Get(ctx context.Context, id int64) (*model.Client, error) {
	client, err := s.clientStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("getting client: %w", err)
	}
	return client, nil
}

func (s *clientService) Update(ctx context.Context, clientID int64, params UpdateClientParams) (*model.Client, error) {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	client.Name = params.Name
	client.ContactName = params.ContactName
	client.ContactEmail = params.ContactEmail
	client.BannedPhrases = cleanPhrases(params.BannedPhrases)
	client.RequiredDisclaimer = params.RequiredDisclaimer

	if err := s.clientStore.Update(ctx, client); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("updating client: %w", err)
	}

	slog.InfoContext(ctx, "client updated",
		"client_id", client.ID,
		"banned_phrases", len(client.BannedPhrases),
	)
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.clientStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	slog.InfoContext(ctx, "client deleted", "client_id", id)
	return nil
}

func (s *clientService) ListByOrganization(ctx context.Context, orgID int64) ([]model.Client, error) {
	return s.clientStore.ListByOrganization(ctx, orgID)
}

func (s *clientService) ComplianceRules(ctx context.Context, clientID int64) (compliance.RuleSet, error) {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return compliance.RuleSet{}, err
	}
	return compliance.DefaultRuleSet().Merge(clientRuleSet(client)), nil
}

// clientRuleSet lifts a client's stored compliance settings into a rule
// set. The required disclaimer doubles as a marker so its presence
// anywhere in the text satisfies the check.
func clientRuleSet(client *model.Client) compliance.RuleSet {
	rules := compliance.RuleSet{BannedPhrases: client.BannedPhrases}
	if client.RequiredDisclaimer != nil && strings.TrimSpace(*client.RequiredDisclaimer) != "" {
		rules.DisclaimerMarkers = []string{*client.RequiredDisclaimer}
	}
	return rules
}

// cleanPhrases drops empty entries so the checker never sees a phrase
// it cannot compile.
func cleanPhrases(phrases []string) []string {
	cleaned := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		if trimmed := strings.TrimSpace(phrase); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

func (s *clientService) ensureSlug(ctx context.Context, orgID int64, name string, slug *string) (string, error) {
	input := name
	if slug != nil && *slug != "" {
		input = *slug
	}

	base, err := common.Slugify(input, "client")
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	if available, err := s.slugAvailable(ctx, orgID, base); err != nil {
		return "", err
	} else if available {
		return base, nil
	}

	for i := 1; i <= 20; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		available, err := s.slugAvailable(ctx, orgID, candidate)
		if err != nil {
			return "", err
		}
		if available {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("unable to find available slug for %q", base)
}

func (s *clientService) slugAvailable(ctx context.Context, orgID int64, slug string) (bool, error) {
	if _, err := s.clientStore.GetBySlug(ctx, orgID, slug); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("checking slug availability: %w", err)
	}
	return false, nil
}
