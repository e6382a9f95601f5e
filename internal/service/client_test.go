package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"inkwire.app/newsroom/common/id"
	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/service"
	"inkwire.app/newsroom/internal/store"
)

var _ = Describe("ClientService", func() {
	var (
		svc         service.ClientService
		mockClients *mockClientStore
		mockOrgs    *mockOrganizationStore
		ctx         context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockClients = &mockClientStore{}
		mockOrgs = &mockOrganizationStore{
			getByIDFn: func(_ context.Context, orgID int64) (*model.Organization, error) {
				return &model.Organization{ID: orgID}, nil
			},
		}
		svc = service.NewClientService(mockClients, mockOrgs)
		Expect(id.Init(1)).To(Succeed())
	})

	Describe("Create", func() {
		It("drops blank banned phrases", func() {
			var created *model.Client
			mockClients.createFn = func(_ context.Context, client *model.Client) error {
				created = client
				return nil
			}

			client, err := svc.Create(ctx, service.CreateClientParams{
				OrganizationID: 1,
				Name:           "Helix Pharma",
				BannedPhrases:  []string{"miracle cure", "  ", "", "wonder drug "},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(client.BannedPhrases).To(Equal([]string{"miracle cure", "wonder drug"}))
			Expect(created).NotTo(BeNil())
		})

		It("scopes slug availability to the organization", func() {
			mockClients.getBySlugFn = func(_ context.Context, orgID int64, slug string) (*model.Client, error) {
				Expect(orgID).To(Equal(int64(1)))
				Expect(slug).To(Equal("helix-pharma"))
				return nil, store.ErrNotFound
			}
			mockClients.createFn = func(_ context.Context, client *model.Client) error {
				Expect(client.Slug).To(Equal("helix-pharma"))
				return nil
			}

			_, err := svc.Create(ctx, service.CreateClientParams{
				OrganizationID: 1,
				Name:           "Helix Pharma",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("adds a suffix when the slug collides inside the organization", func() {
			mockClients.getBySlugFn = func(_ context.Context, _ int64, slug string) (*model.Client, error) {
				if slug == "helix" {
					return &model.Client{ID: 8}, nil // taken
				}
				return nil, store.ErrNotFound
			}

			client, err := svc.Create(ctx, service.CreateClientParams{
				OrganizationID: 1,
				Name:           "Helix",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(client.Slug).To(Equal("helix-1"))
		})

		It("fails when the organization does not exist", func() {
			mockOrgs.getByIDFn = func(_ context.Context, _ int64) (*model.Organization, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Create(ctx, service.CreateClientParams{
				OrganizationID: 404,
				Name:           "Helix",
			})
			Expect(err).To(MatchError(service.ErrOrganizationNotFound))
		})
	})

	Describe("ComplianceRules", func() {
		It("merges client phrases onto the house defaults", func() {
			mockClients.getByIDFn = func(_ context.Context, clientID int64) (*model.Client, error) {
				return &model.Client{
					ID:            clientID,
					BannedPhrases: []string{"wonder drug"},
				}, nil
			}

			rules, err := svc.ComplianceRules(ctx, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(rules.BannedPhrases).To(ContainElements("miracle cure", "wonder drug"))
		})

		It("dedupes phrases case-insensitively against the defaults", func() {
			mockClients.getByIDFn = func(_ context.Context, clientID int64) (*model.Client, error) {
				return &model.Client{
					ID:            clientID,
					BannedPhrases: []string{"Miracle Cure"},
				}, nil
			}

			rules, err := svc.ComplianceRules(ctx, 3)
			Expect(err).NotTo(HaveOccurred())

			count := 0
			for _, p := range rules.BannedPhrases {
				if p == "miracle cure" || p == "Miracle Cure" {
					count++
				}
			}
			Expect(count).To(Equal(1))
		})

		It("treats the required disclaimer as a marker", func() {
			mockClients.getByIDFn = func(_ context.Context, clientID int64) (*model.Client, error) {
				return &model.Client{
					ID:                 clientID,
					RequiredDisclaimer: strPtr("See full prescribing information at helix.example"),
				}, nil
			}

			rules, err := svc.ComplianceRules(ctx, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(rules.DisclaimerMarkers).To(ContainElement("See full prescribing information at helix.example"))
		})

		It("ignores a whitespace-only disclaimer", func() {
			mockClients.getByIDFn = func(_ context.Context, clientID int64) (*model.Client, error) {
				return &model.Client{
					ID:                 clientID,
					RequiredDisclaimer: strPtr("   "),
				}, nil
			}

			rules, err := svc.ComplianceRules(ctx, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(rules.DisclaimerMarkers).NotTo(ContainElement("   "))
		})
	})

	It("replaces the phrase list on update", func() {
		mockClients.getByIDFn = func(_ context.Context, clientID int64) (*model.Client, error) {
			return &model.Client{
				ID:            clientID,
				Name:          "Helix",
				BannedPhrases: []string{"old phrase"},
			}, nil
		}
		mockClients.updateFn = func(_ context.Context, client *model.Client) error {
			Expect(client.BannedPhrases).To(Equal([]string{"new phrase"}))
			return nil
		}

		client, err := svc.Update(ctx, 3, service.UpdateClientParams{
			Name:          "Helix",
			BannedPhrases: []string{"new phrase"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(client.BannedPhrases).To(Equal([]string{"new phrase"}))
	})
})
