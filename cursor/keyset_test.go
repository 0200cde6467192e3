package cursor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/jobtrack"
	"github.com/nrfta/jobtrack/cursor"
)

var _ = Describe("WhereAfter", func() {
	position := func(values map[string]any) *paging.CursorPosition {
		return &paging.CursorPosition{Values: values}
	}

	It("should return nil without a cursor", func() {
		pred, err := cursor.WhereAfter(nil, createdAtThenID)

		Expect(err).ToNot(HaveOccurred())
		Expect(pred).To(BeNil())
	})

	It("should expand a descending composite key", func() {
		pred, err := cursor.WhereAfter(position(map[string]any{
			"created_at": "2024-01-01T00:00:00Z",
			"id":         "abc",
		}), createdAtThenID)
		Expect(err).ToNot(HaveOccurred())

		sql, args, err := pred.ToSql()

		Expect(err).ToNot(HaveOccurred())
		Expect(sql).To(Equal("(ja.created_at < ? OR (ja.created_at = ? AND ja.id < ?))"))
		Expect(args).To(Equal([]any{"2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z", "abc"}))
	})

	Context("ascending with NULLs last", func() {
		orderBy := []paging.OrderBy{
			{Column: "ja.salary_min", Key: "salary_min"},
			{Column: "ja.id", Key: "id"},
		}

		It("should include trailing NULLs after a value", func() {
			pred, err := cursor.WhereAfter(position(map[string]any{"salary_min": int64(5000), "id": "abc"}), orderBy)
			Expect(err).ToNot(HaveOccurred())

			sql, args, err := pred.ToSql()

			Expect(err).ToNot(HaveOccurred())
			Expect(sql).To(Equal("((ja.salary_min > ? OR ja.salary_min IS NULL) OR (ja.salary_min = ? AND (ja.id > ? OR ja.id IS NULL)))"))
			Expect(args).To(Equal([]any{int64(5000), int64(5000), "abc"}))
		})

		It("should only continue within the NULL group after a NULL", func() {
			pred, err := cursor.WhereAfter(position(map[string]any{"salary_min": nil, "id": "abc"}), orderBy)
			Expect(err).ToNot(HaveOccurred())

			sql, args, err := pred.ToSql()

			Expect(err).ToNot(HaveOccurred())
			Expect(sql).To(Equal("(ja.salary_min IS NULL AND (ja.id > ? OR ja.id IS NULL))"))
			Expect(args).To(Equal([]any{"abc"}))
		})
	})

	It("should move on to non-null values after a leading NULL group", func() {
		orderBy := []paging.OrderBy{
			{Column: "ja.salary_min", Key: "salary_min", Desc: true},
			{Column: "ja.id", Key: "id", Desc: true},
		}

		pred, err := cursor.WhereAfter(position(map[string]any{"salary_min": nil, "id": "abc"}), orderBy)
		Expect(err).ToNot(HaveOccurred())

		sql, args, err := pred.ToSql()

		Expect(err).ToNot(HaveOccurred())
		Expect(sql).To(Equal("(ja.salary_min IS NOT NULL OR (ja.salary_min IS NULL AND ja.id < ?))"))
		Expect(args).To(Equal([]any{"abc"}))
	})

	It("should honour explicit NULLS FIRST on an ascending column", func() {
		orderBy := []paging.OrderBy{{Column: "ja.salary_min", Key: "salary_min", Nulls: paging.NullsFirst}}

		pred, err := cursor.WhereAfter(position(map[string]any{"salary_min": int64(10)}), orderBy)
		Expect(err).ToNot(HaveOccurred())

		sql, _, err := pred.ToSql()

		Expect(err).ToNot(HaveOccurred())
		Expect(sql).To(Equal("ja.salary_min > ?"))
	})

	It("should match nothing when no row can follow the cursor", func() {
		orderBy := []paging.OrderBy{{Column: "ja.salary_min", Key: "salary_min"}}

		pred, err := cursor.WhereAfter(position(map[string]any{"salary_min": nil}), orderBy)
		Expect(err).ToNot(HaveOccurred())

		Expect(pred).To(Equal(cursor.Unsatisfiable))
	})

	It("should reject a cursor without a sort key", func() {
		_, err := cursor.WhereAfter(position(map[string]any{"id": "abc"}), createdAtThenID)

		Expect(err).To(MatchError(paging.ErrInvalidCursor))
	})
})

var _ = Describe("OrderByClauses", func() {
	It("should render directions and explicit NULL placement", func() {
		clauses := cursor.OrderByClauses([]paging.OrderBy{
			{Column: "ja.salary_min", Desc: true, Nulls: paging.NullsLast},
			{Column: "js.position", Nulls: paging.NullsFirst},
			{Column: "ja.id"},
		})

		Expect(clauses).To(Equal([]string{
			"ja.salary_min DESC NULLS LAST",
			"js.position ASC NULLS FIRST",
			"ja.id ASC",
		}))
	})
})
