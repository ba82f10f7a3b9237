package extraction_test

import (
	"encoding/json"
	"math"

	"github.com/frahmantamala/talent-intake/internal/extraction"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Flexible decoding", func() {
	type record struct {
		Title  extraction.FlexString  `json:"title"`
		Skills extraction.FlexStrings `json:"skills"`
		Years  extraction.FlexInt     `json:"years"`
	}

	decode := func(doc string) record {
		var r record
		Expect(json.Unmarshal([]byte(doc), &r)).To(Succeed())
		return r
	}

	It("should accept well typed input", func() {
		r := decode(`{"title":"Engineer","skills":["Go","SQL"],"years":4}`)
		Expect(string(r.Title)).To(Equal("Engineer"))
		Expect(r.Skills.Slice()).To(Equal([]string{"Go", "SQL"}))
		Expect(int(r.Years)).To(Equal(4))
	})

	It("should turn a scalar into a one element list", func() {
		r := decode(`{"skills":"Go"}`)
		Expect(r.Skills.Slice()).To(Equal([]string{"Go"}))
	})

	It("should default missing and null values", func() {
		r := decode(`{"title":null,"skills":null,"years":null}`)
		Expect(r.Title.Ptr()).To(BeNil())
		Expect(r.Skills.Slice()).To(Equal([]string{}))
		Expect(int(r.Years)).To(BeZero())

		r = decode(`{}`)
		Expect(r.Skills.Slice()).NotTo(BeNil())
	})

	DescribeTable("numeric strings",
		func(raw string, expected int) {
			r := decode(`{"years":` + raw + `}`)
			Expect(int(r.Years)).To(Equal(expected))
		},
		Entry("plain", `"5"`, 5),
		Entry("with words", `"5+ years"`, 5),
		Entry("no digits", `"several"`, 0),
		Entry("float", `3.7`, 3),
		Entry("negative", `-2`, 0),
		Entry("huge number", `1e12`, math.MaxInt32),
		Entry("huge digit string", `"99999999999999999999 years"`, math.MaxInt32),
	)

	It("should flatten lists and numbers into strings", func() {
		r := decode(`{"title":["+1 555","+1 556"]}`)
		Expect(string(r.Title)).To(Equal("+1 555, +1 556"))

		r = decode(`{"title":12345}`)
		Expect(string(r.Title)).To(Equal("12345"))
	})

	It("should drop empty list entries and stringify objects", func() {
		r := decode(`{"skills":["Go","",null,{"name":"SQL"}]}`)
		Expect(r.Skills.Slice()).To(Equal([]string{"Go", `{"name":"SQL"}`}))
	})
})
