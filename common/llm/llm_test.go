package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"inkwire.app/newsroom/common/llm"
)

var _ = Describe("New", func() {
	It("requires an API key", func() {
		_, err := llm.New(llm.Config{})
		Expect(err).To(HaveOccurred())
	})

	It("defaults to the Anthropic provider", func() {
		client, err := llm.New(llm.Config{APIKey: "test-key"})
		Expect(err).NotTo(HaveOccurred())
		Expect(client.Model()).To(Equal("claude-sonnet-4-5-20250514"))
	})

	It("selects the OpenAI provider when configured", func() {
		client, err := llm.New(llm.Config{Provider: llm.ProviderOpenAI, APIKey: "test-key"})
		Expect(err).NotTo(HaveOccurred())
		Expect(client.Model()).To(Equal("gpt-4o-mini"))
	})

	It("rejects unknown providers", func() {
		_, err := llm.New(llm.Config{Provider: "palm", APIKey: "test-key"})
		Expect(err).To(MatchError(ContainSubstring("unsupported LLM provider")))
	})

	It("honors a configured model name", func() {
		client, err := llm.New(llm.Config{APIKey: "test-key", Model: "claude-haiku-4-5"})
		Expect(err).NotTo(HaveOccurred())
		Expect(client.Model()).To(Equal("claude-haiku-4-5"))
	})
})

var _ = Describe("GenerateSchema", func() {
	type variant struct {
		Headline string   `json:"headline"`
		Body     []string `json:"body"`
	}

	It("produces an inlined schema closed to additional properties", func() {
		raw, err := json.Marshal(llm.GenerateSchema[variant]())
		Expect(err).NotTo(HaveOccurred())

		var schema map[string]any
		Expect(json.Unmarshal(raw, &schema)).To(Succeed())
		Expect(schema["type"]).To(Equal("object"))
		Expect(schema["additionalProperties"]).To(Equal(false))
		Expect(schema["properties"]).To(HaveKey("headline"))
		Expect(schema["properties"]).To(HaveKey("body"))
	})
})

var _ = Describe("IsRetryable", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("is false for nil errors", func() {
		Expect(llm.IsRetryable(ctx, nil)).To(BeFalse())
	})

	It("is false for cancelled contexts", func() {
		Expect(llm.IsRetryable(ctx, fmt.Errorf("chat: %w", context.Canceled))).To(BeFalse())
		Expect(llm.IsRetryable(ctx, context.DeadlineExceeded)).To(BeFalse())
	})

	DescribeTable("Anthropic API errors",
		func(status int, want bool) {
			err := fmt.Errorf("anthropic chat: %w", &anthropic.Error{StatusCode: status})
			Expect(llm.IsRetryable(ctx, err)).To(Equal(want))
		},
		Entry("rate limited", 429, true),
		Entry("server error", 500, true),
		Entry("overloaded", 529, true),
		Entry("bad request", 400, false),
		Entry("unauthorized", 401, false),
	)

	DescribeTable("OpenAI API errors",
		func(status int, want bool) {
			err := fmt.Errorf("openai chat: %w", &openai.Error{StatusCode: status})
			Expect(llm.IsRetryable(ctx, err)).To(Equal(want))
		},
		Entry("rate limited", 429, true),
		Entry("server error", 503, true),
		Entry("unauthorized", 401, false),
	)

	It("treats plain network errors as retryable", func() {
		Expect(llm.IsRetryable(ctx, errors.New("connection refused"))).To(BeTrue())
	})
})

var _ = Describe("IsRateLimited", func() {
	It("detects provider 429s", func() {
		Expect(llm.IsRateLimited(&anthropic.Error{StatusCode: 429})).To(BeTrue())
		Expect(llm.IsRateLimited(&openai.Error{StatusCode: 429})).To(BeTrue())
	})

	It("is false for other statuses and plain errors", func() {
		Expect(llm.IsRateLimited(&anthropic.Error{StatusCode: 500})).To(BeFalse())
		Expect(llm.IsRateLimited(errors.New("boom"))).To(BeFalse())
	})
})
