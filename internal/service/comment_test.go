package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"inkwire.app/newsroom/common/id"
	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/queue"
	"inkwire.app/newsroom/internal/service"
	"inkwire.app/newsroom/internal/store"
)

var _ = Describe("CommentService", func() {
	var (
		svc          service.CommentService
		mockComments *mockCommentStore
		mockItems    *mockContentItemStore
		mockUsers    *mockUserStore
		producer     *mockProducer
		ctx          context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockComments = &mockCommentStore{}
		mockItems = &mockContentItemStore{
			getByIDFn: func(_ context.Context, itemID int64) (*model.ContentItem, error) {
				return &model.ContentItem{ID: itemID, OrganizationID: 1, ProjectID: 10}, nil
			},
		}
		mockUsers = &mockUserStore{
			getByIDFn: func(_ context.Context, userID int64) (*model.User, error) {
				return &model.User{ID: userID, OrganizationID: 1, Role: model.RoleStaff}, nil
			},
		}
		producer = &mockProducer{}
		svc = service.NewCommentService(mockComments, mockItems, mockUsers, producer)
		Expect(id.Init(1)).To(Succeed())
	})

	Describe("Create", func() {
		It("stores the comment and enqueues a notify event", func() {
			var created *model.Comment
			mockComments.createFn = func(_ context.Context, comment *model.Comment) error {
				created = comment
				return nil
			}

			comment, err := svc.Create(ctx, 100, 5, "Second paragraph reads stiff.")
			Expect(err).NotTo(HaveOccurred())
			Expect(comment.Body).To(Equal("Second paragraph reads stiff."))
			Expect(created.ID).NotTo(BeZero())

			Expect(producer.enqueued).To(HaveLen(1))
			msg := producer.enqueued[0]
			Expect(msg.TaskType).To(Equal(queue.TaskTypeNotifyEvent))
			Expect(msg.EventKind).To(Equal(string(model.NotificationKindCommentAdded)))
			Expect(msg.ContentItemID).To(HaveValue(Equal(int64(100))))
			Expect(msg.ActorID).To(HaveValue(Equal(int64(5))))
		})

		It("fails when the content item is missing", func() {
			mockItems.getByIDFn = func(_ context.Context, _ int64) (*model.ContentItem, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Create(ctx, 404, 5, "hello")
			Expect(err).To(MatchError(service.ErrContentNotFound))
		})

		It("fails when the author is missing", func() {
			mockUsers.getByIDFn = func(_ context.Context, _ int64) (*model.User, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Create(ctx, 100, 404, "hello")
			Expect(err).To(MatchError(service.ErrUserNotFound))
		})
	})

	Describe("Resolve", func() {
		It("stamps the resolution", func() {
			mockComments.getByIDFn = func(_ context.Context, commentID int64) (*model.Comment, error) {
				return &model.Comment{ID: commentID, ContentItemID: 100}, nil
			}
			mockComments.resolveFn = func(_ context.Context, commentID, resolvedBy int64) (*model.Comment, error) {
				Expect(resolvedBy).To(Equal(int64(5)))
				now := time.Now()
				return &model.Comment{ID: commentID, ResolvedBy: &resolvedBy, ResolvedAt: &now}, nil
			}

			comment, err := svc.Resolve(ctx, 200, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(comment.IsResolved()).To(BeTrue())
		})

		It("rejects a second resolution", func() {
			now := time.Now()
			mockComments.getByIDFn = func(_ context.Context, commentID int64) (*model.Comment, error) {
				return &model.Comment{ID: commentID, ResolvedAt: &now}, nil
			}

			_, err := svc.Resolve(ctx, 200, 5)
			Expect(err).To(MatchError(service.ErrAlreadyResolved))
		})

		It("maps a resolution race to already resolved", func() {
			mockComments.getByIDFn = func(_ context.Context, commentID int64) (*model.Comment, error) {
				return &model.Comment{ID: commentID}, nil
			}
			mockComments.resolveFn = func(_ context.Context, _, _ int64) (*model.Comment, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Resolve(ctx, 200, 5)
			Expect(err).To(MatchError(service.ErrAlreadyResolved))
		})

		It("returns not found for a missing comment", func() {
			_, err := svc.Resolve(ctx, 404, 5)
			Expect(err).To(MatchError(service.ErrCommentNotFound))
		})
	})
})
