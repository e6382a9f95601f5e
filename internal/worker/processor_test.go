package worker_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"inkwire.app/newsroom/internal/compliance"
	"inkwire.app/newsroom/internal/content"
	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/queue"
	"inkwire.app/newsroom/internal/service"
	"inkwire.app/newsroom/internal/store"
	"inkwire.app/newsroom/internal/worker"
)

var _ = Describe("TaskProcessor", func() {
	var (
		processor     *worker.TaskProcessor
		provider      *mockStoreProvider
		txRunner      *mockTxRunner
		clients       *mockClientService
		notifications *mockNotificationService
		ctx           context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		provider = &mockStoreProvider{
			projects: &mockProjectStore{},
			items:    &mockContentItemStore{},
			versions: &mockContentVersionStore{},
		}
		txRunner = &mockTxRunner{provider: provider}
		clients = &mockClientService{}
		notifications = &mockNotificationService{}
		processor = worker.NewTaskProcessor(provider, txRunner, clients, notifications)
	})

	recheckMessage := func(itemID int64) queue.Message {
		return queue.Message{
			ID:            "1700000000000-0",
			TaskType:      queue.TaskTypeComplianceRecheck,
			ContentItemID: &itemID,
			Attempt:       1,
		}
	}

	Describe("compliance recheck", func() {
		BeforeEach(func() {
			provider.items.getByIDFn = func(_ context.Context, id int64) (*model.ContentItem, error) {
				return &model.ContentItem{ID: id, ProjectID: 3, OrganizationID: 42}, nil
			}
			provider.projects.getByIDFn = func(_ context.Context, id int64) (*model.Project, error) {
				return &model.Project{ID: id, OrganizationID: 42, ClientID: 9}, nil
			}
		})

		It("rescores the latest version under the client's current rules", func() {
			provider.versions.getLatestFn = func(_ context.Context, itemID int64) (*model.ContentVersion, error) {
				return &model.ContentVersion{
					ID:            501,
					ContentItemID: itemID,
					Document: content.Document{
						Headline:   "Guaranteed results in week one",
						Body:       []string{"Twice-daily dosing fits any routine."},
						Disclaimer: "Side effects may include nausea.",
					},
				}, nil
			}

			var scoredVersion int64
			var versionScore int32
			provider.versions.updateScoreFn = func(_ context.Context, id int64, score int32) error {
				scoredVersion = id
				versionScore = score
				return nil
			}

			var itemVersion int64
			var itemScore *int32
			provider.items.setCurrentVersionFn = func(_ context.Context, _, versionID int64, score *int32) error {
				itemVersion = versionID
				itemScore = score
				return nil
			}

			Expect(processor.Process(ctx, recheckMessage(7))).To(Succeed())

			// One banned phrase at -10; the disclaimer section spares the -25.
			Expect(scoredVersion).To(Equal(int64(501)))
			Expect(versionScore).To(Equal(int32(90)))
			Expect(itemVersion).To(Equal(int64(501)))
			Expect(itemScore).To(HaveValue(Equal(int32(90))))
			Expect(txRunner.txCalls).To(Equal(1))
		})

		It("applies client rule additions on top of the defaults", func() {
			clients.complianceRulesFn = func(_ context.Context, clientID int64) (compliance.RuleSet, error) {
				Expect(clientID).To(Equal(int64(9)))
				return compliance.DefaultRuleSet().Merge(compliance.RuleSet{
					BannedPhrases: []string{"quantum healing"},
				}), nil
			}
			provider.versions.getLatestFn = func(_ context.Context, itemID int64) (*model.ContentVersion, error) {
				return &model.ContentVersion{
					ID:            502,
					ContentItemID: itemID,
					Document: content.Document{
						Body:       []string{"Quantum healing for the modern patient."},
						Disclaimer: "Consult your doctor.",
					},
				}, nil
			}

			var versionScore int32
			provider.versions.updateScoreFn = func(_ context.Context, _ int64, score int32) error {
				versionScore = score
				return nil
			}

			Expect(processor.Process(ctx, recheckMessage(7))).To(Succeed())
			Expect(versionScore).To(Equal(int32(90)))
		})

		It("skips when the content item was deleted", func() {
			provider.items.getByIDFn = func(context.Context, int64) (*model.ContentItem, error) {
				return nil, store.ErrNotFound
			}

			Expect(processor.Process(ctx, recheckMessage(7))).To(Succeed())
			Expect(txRunner.txCalls).To(BeZero())
		})

		It("skips when the client was deleted", func() {
			clients.complianceRulesFn = func(context.Context, int64) (compliance.RuleSet, error) {
				return compliance.RuleSet{}, service.ErrClientNotFound
			}

			Expect(processor.Process(ctx, recheckMessage(7))).To(Succeed())
			Expect(txRunner.txCalls).To(BeZero())
		})

		It("skips when the item has no saved versions", func() {
			provider.versions.getLatestFn = func(context.Context, int64) (*model.ContentVersion, error) {
				return nil, store.ErrNotFound
			}

			var scored bool
			provider.versions.updateScoreFn = func(context.Context, int64, int32) error {
				scored = true
				return nil
			}

			Expect(processor.Process(ctx, recheckMessage(7))).To(Succeed())
			Expect(scored).To(BeFalse())
		})

		It("propagates store failures so the task retries", func() {
			provider.versions.getLatestFn = func(_ context.Context, itemID int64) (*model.ContentVersion, error) {
				return &model.ContentVersion{ID: 503, ContentItemID: itemID}, nil
			}
			provider.versions.updateScoreFn = func(context.Context, int64, int32) error {
				return errors.New("connection refused")
			}

			err := processor.Process(ctx, recheckMessage(7))
			Expect(err).To(MatchError(ContainSubstring("connection refused")))
		})
	})

	Describe("event notification", func() {
		notifyMessage := func(kind string) queue.Message {
			orgID := int64(42)
			projectID := int64(3)
			itemID := int64(7)
			actorID := int64(11)
			return queue.Message{
				ID:             "1700000000000-1",
				TaskType:       queue.TaskTypeNotifyEvent,
				EventKind:      kind,
				OrganizationID: &orgID,
				ProjectID:      &projectID,
				ContentItemID:  &itemID,
				ActorID:        &actorID,
				Attempt:        1,
			}
		}

		It("fans the event out with the message fields", func() {
			notifications.fanoutEventFn = func(context.Context, service.FanoutParams) (int, error) {
				return 4, nil
			}

			Expect(processor.Process(ctx, notifyMessage("content_submitted"))).To(Succeed())

			Expect(notifications.fanouts).To(HaveLen(1))
			params := notifications.fanouts[0]
			Expect(params.Kind).To(Equal(model.NotificationKindContentSubmitted))
			Expect(params.OrganizationID).To(Equal(int64(42)))
			Expect(params.ProjectID).To(HaveValue(Equal(int64(3))))
			Expect(params.ContentItemID).To(HaveValue(Equal(int64(7))))
			Expect(params.ActorID).To(HaveValue(Equal(int64(11))))
		})

		It("drops events with an unknown kind instead of retrying", func() {
			notifications.fanoutEventFn = func(context.Context, service.FanoutParams) (int, error) {
				return 0, service.ErrInvalidNotificationKind
			}

			Expect(processor.Process(ctx, notifyMessage("content_exploded"))).To(Succeed())
		})

		It("skips when the event subject was deleted", func() {
			notifications.fanoutEventFn = func(context.Context, service.FanoutParams) (int, error) {
				return 0, service.ErrContentNotFound
			}

			Expect(processor.Process(ctx, notifyMessage("content_decided"))).To(Succeed())
		})

		It("propagates fanout failures so the task retries", func() {
			notifications.fanoutEventFn = func(context.Context, service.FanoutParams) (int, error) {
				return 0, errors.New("smtp timeout")
			}

			err := processor.Process(ctx, notifyMessage("comment_added"))
			Expect(err).To(MatchError(ContainSubstring("smtp timeout")))
		})
	})

	It("rejects an unrecognized task type", func() {
		err := processor.Process(ctx, queue.Message{ID: "1-0", TaskType: "reindex_everything"})
		Expect(err).To(MatchError(ContainSubstring("unknown task type")))
	})
})
