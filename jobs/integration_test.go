package jobs_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/jobtrack"
	"github.com/nrfta/jobtrack/filter"
	"github.com/nrfta/jobtrack/jobs"
)

// traverse follows cursors from the first page until the last one.
func traverse(ctx context.Context, repo *jobs.Repository, in jobs.FindInput, take int) []*jobs.ApplicationRow {
	GinkgoHelper()

	var all []*jobs.ApplicationRow
	in.Page = &paging.PageArgs{Take: &take}

	for range 100 {
		page, err := repo.FindWithPagination(ctx, in)
		Expect(err).ToNot(HaveOccurred())
		Expect(len(page.Data)).To(BeNumerically("<=", take))

		all = append(all, page.Data...)
		if !page.Pagination.HasNextPage {
			return all
		}

		Expect(page.Pagination.Cursor).ToNot(BeNil())
		in.Page = &paging.PageArgs{Take: &take, Cursor: page.Pagination.Cursor}
	}

	Fail("pagination did not reach the last page")
	return nil
}

func ids(rows []*jobs.ApplicationRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

var _ = Describe("Repository against PostgreSQL", Ordered, Label("integration"), func() {
	var (
		container *Container
		repo      *jobs.Repository
		ctx       context.Context
	)

	BeforeAll(func() {
		ctx = context.Background()

		var err error
		container, err = SetupPostgres(ctx)
		if err != nil {
			Skip(err.Error())
		}
		GinkgoWriter.Printf("PostgreSQL container started: %s\n", container.ConnStr)

		DeferCleanup(func() {
			Expect(container.Terminate(context.Background())).To(Succeed())
		})

		repo = jobs.NewRepository(container.DB)
	})

	Describe("cursor traversal", func() {
		var (
			board *Board
			want  int
		)

		BeforeAll(func() {
			var err error
			board, err = SeedBoard(ctx, container.DB)
			Expect(err).ToNot(HaveOccurred())

			base := time.Now().Add(-48 * time.Hour).Truncate(time.Second)
			salaries := []*int{intPtr(50), nil, intPtr(70), intPtr(50), nil, intPtr(90), intPtr(60)}
			for i := range 17 {
				_, err := board.AddApplication(ctx, SeedApplication{
					Company:   []string{"Acme", "Globex", "Initech", "Umbrella"}[i%4],
					SalaryMin: salaries[i%len(salaries)],
					// Pairs of applications share a creation time.
					CreatedAt: base.Add(time.Duration(i/2) * time.Hour),
				})
				Expect(err).ToNot(HaveOccurred())
			}
			want = 17
		})

		DescribeTable("should return every application exactly once in order",
			func(sort *jobs.Sort) {
				in := jobs.FindInput{UserID: board.UserID, Sort: sort}

				full, err := repo.FindWithPagination(ctx, jobs.FindInput{
					UserID: board.UserID,
					Sort:   sort,
					Page:   &paging.PageArgs{Take: intPtr(100)},
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(full.Data).To(HaveLen(want))

				walked := traverse(ctx, repo, in, 3)

				Expect(ids(walked)).To(Equal(ids(full.Data)))
			},
			Entry("default order", nil),
			Entry("company name ascending", &jobs.Sort{SortBy: jobs.SortByCompanyName, Order: jobs.OrderAsc}),
			Entry("minimum salary ascending", &jobs.Sort{SortBy: jobs.SortBySalaryMin, Order: jobs.OrderAsc}),
			Entry("minimum salary descending", &jobs.Sort{SortBy: jobs.SortBySalaryMin, Order: jobs.OrderDesc}),
			Entry("creation time ascending", &jobs.Sort{SortBy: jobs.SortByCreatedAt, Order: jobs.OrderAsc}),
			Entry("stage descending", &jobs.Sort{SortBy: jobs.SortByStage, Order: jobs.OrderDesc}),
		)
	})

	It("should place NULL salaries after every value when ascending", func() {
		board, err := SeedBoard(ctx, container.DB)
		Expect(err).ToNot(HaveOccurred())

		for _, salary := range []*int{intPtr(1), nil, intPtr(2), nil} {
			_, err := board.AddApplication(ctx, SeedApplication{Company: "Acme", SalaryMin: salary})
			Expect(err).ToNot(HaveOccurred())
		}

		walked := traverse(ctx, repo, jobs.FindInput{
			UserID: board.UserID,
			Sort:   &jobs.Sort{SortBy: jobs.SortBySalaryMin, Order: jobs.OrderAsc},
		}, 1)

		Expect(walked).To(HaveLen(4))
		Expect(walked[0].SalaryMin.Int).To(Equal(1))
		Expect(walked[1].SalaryMin.Int).To(Equal(2))
		Expect(walked[2].SalaryMin.Valid).To(BeFalse())
		Expect(walked[3].SalaryMin.Valid).To(BeFalse())
		Expect(walked[2].ID < walked[3].ID).To(BeTrue())
	})

	It("should list active applications unless archived ones are requested", func() {
		board, err := SeedBoard(ctx, container.DB)
		Expect(err).ToNot(HaveOccurred())

		active, err := board.AddApplication(ctx, SeedApplication{Company: "Acme"})
		Expect(err).ToNot(HaveOccurred())
		archived, err := board.AddApplication(ctx, SeedApplication{Company: "Globex", Archived: true})
		Expect(err).ToNot(HaveOccurred())

		page, err := repo.FindWithPagination(ctx, jobs.FindInput{UserID: board.UserID})
		Expect(err).ToNot(HaveOccurred())
		Expect(ids(page.Data)).To(Equal([]string{active}))

		page, err = repo.FindWithPagination(ctx, jobs.FindInput{
			UserID:  board.UserID,
			Filters: jobs.Filters{IsArchived: boolPtr(true)},
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(ids(page.Data)).To(Equal([]string{archived}))
	})

	Describe("custom columns", func() {
		var (
			board    *Board
			company  string
			salary   string
			status   string
			remote   string
			onsite   string
			apps     map[string]string
			matching func(jobs.Filters) []string
		)

		BeforeAll(func() {
			var err error
			board, err = SeedBoard(ctx, container.DB)
			Expect(err).ToNot(HaveOccurred())

			company, err = board.AddColumn(ctx, "Company again", filter.TypeText)
			Expect(err).ToNot(HaveOccurred())
			salary, err = board.AddColumn(ctx, "Expected salary", filter.TypeNumber)
			Expect(err).ToNot(HaveOccurred())
			status, err = board.AddColumn(ctx, "Work mode", filter.TypeSelect)
			Expect(err).ToNot(HaveOccurred())
			remote, err = board.AddOption(ctx, status, "Remote")
			Expect(err).ToNot(HaveOccurred())
			onsite, err = board.AddOption(ctx, status, "Onsite")
			Expect(err).ToNot(HaveOccurred())

			apps = make(map[string]string)
			for _, seed := range []struct {
				name   string
				salary *int
			}{
				{"Acme Rockets", intPtr(10)},
				{"Acme Labs", intPtr(20)},
				{"Globex", intPtr(15)},
				{"Initech", intPtr(25)},
				{"Umbrella", nil},
			} {
				id, err := board.AddApplication(ctx, SeedApplication{Company: seed.name, SalaryMin: seed.salary})
				Expect(err).ToNot(HaveOccurred())
				apps[seed.name] = id

				Expect(board.SetValue(ctx, id, company, seed.name)).To(Succeed())
				if seed.salary != nil {
					Expect(board.SetValue(ctx, id, salary, fmt.Sprint(*seed.salary))).To(Succeed())
				}
			}

			Expect(board.SetOption(ctx, apps["Acme Rockets"], status, remote)).To(Succeed())
			Expect(board.SetOption(ctx, apps["Globex"], status, onsite)).To(Succeed())

			matching = func(f jobs.Filters) []string {
				GinkgoHelper()

				page, err := repo.FindWithPagination(ctx, jobs.FindInput{
					UserID:  board.UserID,
					Filters: f,
					Sort:    &jobs.Sort{SortBy: jobs.SortByCompanyName, Order: jobs.OrderAsc},
				})
				Expect(err).ToNot(HaveOccurred())

				names := make([]string, len(page.Data))
				for i, r := range page.Data {
					names[i] = r.CompanyName
				}
				return names
			}
		})

		It("should match the same applications through core and custom columns", func() {
			core := matching(jobs.Filters{ColumnFilters: []filter.ColumnFilter{
				{ColumnID: "company_name", Operator: filter.Contains, Value: filter.String("acme")},
			}})
			custom := matching(jobs.Filters{ColumnFilters: []filter.ColumnFilter{
				{ColumnID: company, Operator: filter.Contains, Value: filter.String("acme"), ColumnType: filter.TypeText},
			}})

			Expect(core).To(Equal([]string{"Acme Labs", "Acme Rockets"}))
			Expect(custom).To(Equal(core))
		})

		It("should include applications without a value in is_none_of", func() {
			names := matching(jobs.Filters{ColumnFilters: []filter.ColumnFilter{
				{ColumnID: status, Operator: filter.IsNoneOf, Value: filter.Strings(remote), ColumnType: filter.TypeSelect},
			}})

			Expect(names).To(Equal([]string{"Acme Labs", "Globex", "Initech", "Umbrella"}))
		})

		It("should include both bounds of between", func() {
			core := matching(jobs.Filters{ColumnFilters: []filter.ColumnFilter{
				{ColumnID: "salary_min", Operator: filter.Between, Value: filter.List(filter.Number(10), filter.Number(20))},
			}})
			custom := matching(jobs.Filters{ColumnFilters: []filter.ColumnFilter{
				{ColumnID: salary, Operator: filter.Between, Value: filter.List(filter.Number(10), filter.Number(20)), ColumnType: filter.TypeNumber},
			}})

			Expect(core).To(Equal([]string{"Acme Labs", "Acme Rockets", "Globex"}))
			Expect(custom).To(Equal(core))
		})

		It("should page through a custom column sort without duplicates", func() {
			walked := traverse(ctx, repo, jobs.FindInput{
				UserID: board.UserID,
				Sort:   &jobs.Sort{SortBy: jobs.SortByCustomColumn, Order: jobs.OrderDesc, ColumnID: company},
			}, 2)

			names := make([]string, len(walked))
			for i, r := range walked {
				names[i] = r.CustomColumnValue.String
			}
			Expect(names).To(Equal([]string{"Umbrella", "Initech", "Globex", "Acme Rockets", "Acme Labs"}))
		})

		It("should count and offset-page with the same filters", func() {
			filters := jobs.Filters{Search: "acme"}

			total, err := repo.CountByFilters(ctx, board.UserID, filters)
			Expect(err).ToNot(HaveOccurred())
			Expect(total).To(Equal(int64(2)))

			page, err := repo.FindWithOffset(ctx, jobs.OffsetInput{
				UserID:  board.UserID,
				Filters: filters,
				Page:    paging.OffsetArgs{Take: intPtr(1)},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(page.Data).To(HaveLen(1))
			Expect(page.Data[0].ID).To(Equal(apps["Acme Labs"]))
			Expect(page.Data[0].CompanyName).To(Equal("Acme Labs"))
			Expect(page.Data[0].StageID).To(Equal(board.Stages[jobs.CategoryInitial]))
			Expect(page.Data[0].CreatedAt.IsZero()).To(BeFalse())
			Expect(page.Meta.Total).To(Equal(2))
			Expect(page.Meta.LastPage).To(Equal(2))
			Expect(page.Meta.Next).To(HaveValue(Equal(1)))

			next, err := repo.FindWithOffset(ctx, jobs.OffsetInput{
				UserID:  board.UserID,
				Filters: filters,
				Page:    paging.OffsetArgs{Skip: 1, Take: intPtr(1)},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(next.Data).To(HaveLen(1))
			Expect(next.Data[0].ID).To(Equal(apps["Acme Rockets"]))
			Expect(next.Data[0].CompanyName).To(Equal("Acme Rockets"))
		})
	})

	It("should test emptiness of boolean columns without comparing to text", func() {
		board, err := SeedBoard(ctx, container.DB)
		Expect(err).ToNot(HaveOccurred())
		_, err = board.AddApplication(ctx, SeedApplication{Company: "Acme"})
		Expect(err).ToNot(HaveOccurred())

		find := func(op filter.Operator) []*jobs.ApplicationRow {
			GinkgoHelper()

			page, err := repo.FindWithPagination(ctx, jobs.FindInput{
				UserID: board.UserID,
				Filters: jobs.Filters{ColumnFilters: []filter.ColumnFilter{
					{ColumnID: "is_archived", Operator: op},
				}},
			})
			Expect(err).ToNot(HaveOccurred())
			return page.Data
		}

		Expect(find(filter.IsNotEmpty)).To(HaveLen(1))
		Expect(find(filter.IsEmpty)).To(BeEmpty())
	})

	It("should skip non-numeric values in numeric comparisons", func() {
		board, err := SeedBoard(ctx, container.DB)
		Expect(err).ToNot(HaveOccurred())

		budget, err := board.AddColumn(ctx, "Budget", filter.TypeNumber)
		Expect(err).ToNot(HaveOccurred())

		values := map[string]string{"Acme": "12", "Globex": "n/a", "Initech": "", "Hooli": "-3.5"}
		for _, name := range []string{"Acme", "Globex", "Initech", "Hooli"} {
			id, err := board.AddApplication(ctx, SeedApplication{Company: name})
			Expect(err).ToNot(HaveOccurred())
			Expect(board.SetValue(ctx, id, budget, values[name])).To(Succeed())
		}

		companies := func(op filter.Operator, v filter.Value) []string {
			GinkgoHelper()

			page, err := repo.FindWithPagination(ctx, jobs.FindInput{
				UserID: board.UserID,
				Filters: jobs.Filters{ColumnFilters: []filter.ColumnFilter{
					{ColumnID: budget, Operator: op, Value: v, ColumnType: filter.TypeNumber},
				}},
				Sort: &jobs.Sort{SortBy: jobs.SortByCompanyName, Order: jobs.OrderAsc},
			})
			Expect(err).ToNot(HaveOccurred())

			names := make([]string, len(page.Data))
			for i, r := range page.Data {
				names[i] = r.CompanyName
			}
			return names
		}

		Expect(companies(filter.GreaterThanOrEqual, filter.Number(10))).To(Equal([]string{"Acme"}))
		Expect(companies(filter.LessThan, filter.Number(0))).To(Equal([]string{"Hooli"}))
		Expect(companies(filter.Between, filter.List(filter.Number(-5), filter.Number(20)))).To(Equal([]string{"Acme", "Hooli"}))
	})

	It("should delete an application with its dependents", func() {
		board, err := SeedBoard(ctx, container.DB)
		Expect(err).ToNot(HaveOccurred())

		app := &jobs.JobApplication{
			UserID:      board.UserID,
			StageID:     board.Stages[jobs.CategoryInterview],
			CompanyName: "Acme",
			JobTitle:    "Engineer",
		}
		Expect(repo.Create(ctx, app)).To(Succeed())
		Expect(app.CreatedAt.IsZero()).To(BeFalse())

		column, err := board.AddColumn(ctx, "Referral", filter.TypeText)
		Expect(err).ToNot(HaveOccurred())
		Expect(board.SetValue(ctx, app.ID, column, "Jamie")).To(Succeed())
		_, err = container.DB.ExecContext(ctx,
			`INSERT INTO job_interviews (job_id, type, scheduled_at) VALUES ($1, 'phone', NOW())`, app.ID)
		Expect(err).ToNot(HaveOccurred())

		service := jobs.NewService(container.DB, repo)
		found, err := service.GetApplication(ctx, app.ID)
		Expect(err).ToNot(HaveOccurred())
		Expect(found.Stage.Category).To(Equal(jobs.CategoryInterview))

		Expect(service.DeleteApplication(ctx, app.ID)).To(Succeed())

		_, err = repo.FindByIDWithStage(ctx, app.ID)
		Expect(err).To(MatchError(jobs.ErrNotFound))
		Expect(service.DeleteApplication(ctx, uuid.NewString())).To(MatchError(jobs.ErrNotFound))
	})
})
