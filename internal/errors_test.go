package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/talent-intake/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	It("should still match its sentinel after WithCause", func() {
		err := internal.ErrPersistence.WithCause(errors.New("unique violation"))

		Expect(errors.Is(err, internal.ErrPersistence)).To(BeTrue())
		Expect(errors.Is(err, internal.ErrStorage)).To(BeFalse())
		Expect(internal.ErrPersistence.Cause).To(BeNil())
	})

	It("should be found through fmt wrapping", func() {
		err := fmt.Errorf("upload: %w", internal.ErrNoContent)

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("should not treat plain errors as app errors", func() {
		_, ok := internal.IsAppError(errors.New("boom"))
		Expect(ok).To(BeFalse())
	})

	It("should keep the cause out of the JSON body", func() {
		err := internal.NewInternalError("Database error", errors.New("password authentication failed"))

		status, body := err.ToHTTPResponse()
		raw, marshalErr := json.Marshal(body)

		Expect(marshalErr).NotTo(HaveOccurred())
		Expect(status).To(Equal(http.StatusInternalServerError))
		Expect(string(raw)).To(MatchJSON(`{"error":{"type":"INTERNAL_ERROR","code":"INTERNAL_ERROR","message":"Database error"}}`))
	})

	It("should report field errors with details", func() {
		err := internal.NewValidationFieldError("username", "username is required", internal.ErrCodeValidationFailed)

		Expect(err.StatusCode).To(Equal(http.StatusBadRequest))
		Expect(err.Error()).To(Equal("username is required"))
		Expect(err.Details).To(Equal(internal.ValidationErrors{Errors: []internal.ValidationError{
			{Field: "username", Message: "username is required", Code: "VALIDATION_FAILED"},
		}}))
	})

	DescribeTable("taxonomy status codes",
		func(err *internal.AppError, status int) {
			Expect(err.StatusCode).To(Equal(status))
		},
		Entry("unsupported media", internal.ErrUnsupportedMediaType, http.StatusBadRequest),
		Entry("unreadable document", internal.ErrDocumentUnreadable, http.StatusBadRequest),
		Entry("incomplete extraction", internal.ErrIncompleteExtraction, http.StatusUnprocessableEntity),
		Entry("upstream", internal.ErrUpstream, http.StatusBadGateway),
		Entry("upstream parse", internal.ErrUpstreamParse, http.StatusInternalServerError),
		Entry("username taken", internal.ErrUsernameTaken, http.StatusConflict),
		Entry("not owner", internal.ErrNotResourceOwner, http.StatusForbidden),
		Entry("expired token", internal.ErrTokenExpired, http.StatusUnauthorized),
	)
})
