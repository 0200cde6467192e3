package paging_test

import (
	"encoding/json"
	"strconv"

	"github.com/friendsofgo/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/jobtrack"
)

var _ = Describe("MapCursorPage", func() {
	It("should transform rows and keep the pagination", func() {
		page := &paging.CursorPage[int]{
			Data:       []int{1, 2, 3},
			Pagination: paging.PageCursor{HasNextPage: true, Cursor: strPtr("next")},
		}

		mapped, err := paging.MapCursorPage(page, func(i int) (string, error) {
			return strconv.Itoa(i * 10), nil
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(mapped.Data).To(Equal([]string{"10", "20", "30"}))
		Expect(mapped.Pagination).To(Equal(page.Pagination))
	})

	It("should return an empty slice for an empty page", func() {
		mapped, err := paging.MapCursorPage(&paging.CursorPage[int]{}, func(i int) (int, error) {
			return i, nil
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(mapped.Data).ToNot(BeNil())
		Expect(mapped.Data).To(BeEmpty())

		data, err := json.Marshal(mapped)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(MatchJSON(`{"data":[],"pagination":{"hasNextPage":false,"cursor":null}}`))
	})

	It("should return nil for a nil page", func() {
		mapped, err := paging.MapCursorPage(nil, func(i int) (int, error) { return i, nil })

		Expect(err).ToNot(HaveOccurred())
		Expect(mapped).To(BeNil())
	})

	It("should report the index of a failed transform", func() {
		boom := errors.New("boom")
		page := &paging.CursorPage[int]{Data: []int{1, 2, 3}}

		_, err := paging.MapCursorPage(page, func(i int) (int, error) {
			if i == 2 {
				return 0, boom
			}
			return i, nil
		})

		Expect(err).To(MatchError(boom))
		Expect(err.Error()).To(ContainSubstring("index 1"))
	})
})

var _ = Describe("MapOffsetPage", func() {
	It("should transform rows and keep the metadata", func() {
		next := 10
		page := &paging.OffsetPage[int]{
			Data: []int{4, 5},
			Meta: paging.OffsetMeta{Total: 12, LastPage: 2, CurrentPage: 1, PerPage: 10, Next: &next},
		}

		mapped, err := paging.MapOffsetPage(page, func(i int) (int, error) { return i * i, nil })

		Expect(err).ToNot(HaveOccurred())
		Expect(mapped.Data).To(Equal([]int{16, 25}))
		Expect(mapped.Meta).To(Equal(page.Meta))
	})

	It("should serialize the metadata", func() {
		next := 10
		page := &paging.OffsetPage[int]{
			Data: []int{},
			Meta: paging.OffsetMeta{Total: 12, LastPage: 2, CurrentPage: 1, PerPage: 10, Next: &next},
		}

		data, err := json.Marshal(page)

		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(MatchJSON(`{
			"data": [],
			"meta": {"total": 12, "lastPage": 2, "currentPage": 1, "perPage": 10, "prev": null, "next": 10}
		}`))
	})
})
