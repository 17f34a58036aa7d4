package postgres_test

import (
	"net/http"
	"testing"

	"github.com/teamtracker/teamtracker-api/internal"
	"github.com/teamtracker/teamtracker-api/internal/employee"
	employeePostgres "github.com/teamtracker/teamtracker-api/internal/employee/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestEmployeePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Postgres Suite")
}

const (
	ownerA = "11111111-1111-1111-1111-111111111111"
	ownerB = "22222222-2222-2222-2222-222222222222"
)

var _ = Describe("Employee Repository", func() {
	var (
		db   *gorm.DB
		repo employee.Repository
	)

	BeforeEach(func() {
		var err error
		// SQLite in-memory keeps the suite self-contained; TranslateError
		// makes unique violations surface as gorm.ErrDuplicatedKey like the
		// postgres driver does.
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&employee.Employee{})
		Expect(err).NotTo(HaveOccurred())

		repo = employeePostgres.NewEmployeeRepository(db)
	})

	seed := func(userID, name, surname, email, color string) *employee.Employee {
		emp := &employee.Employee{
			Name:    name,
			Surname: surname,
			Email:   email,
			Color:   color,
			UserID:  userID,
		}
		Expect(repo.Create(emp)).To(Succeed())
		return emp
	}

	Describe("Create", func() {
		It("should create an employee for the owner", func() {
			emp := seed(ownerA, "Ada", "Lovelace", "ada@example.com", "#ff0000")
			Expect(emp.ID).To(BeNumerically(">", 0))
			Expect(emp.CreatedAt).NotTo(BeZero())
		})

		It("should reject a duplicate email within the same tenant as 400", func() {
			seed(ownerA, "Ada", "Lovelace", "ada@example.com", "")

			err := repo.Create(&employee.Employee{
				Name:    "Other",
				Surname: "Person",
				Email:   "ada@example.com",
				UserID:  ownerA,
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(appErr.Message).To(Equal("Email already exists"))
		})

		It("should allow the same email under a different tenant", func() {
			seed(ownerA, "Ada", "Lovelace", "ada@example.com", "")

			err := repo.Create(&employee.Employee{
				Name:    "Ada",
				Surname: "Lovelace",
				Email:   "ada@example.com",
				UserID:  ownerB,
			})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("GetAll", func() {
		BeforeEach(func() {
			seed(ownerA, "Grace", "Hopper", "grace@example.com", "")
			seed(ownerA, "Ada", "Lovelace", "ada@example.com", "")
			seed(ownerB, "Alan", "Turing", "alan@example.com", "")
		})

		It("should return only the caller's employees, ordered by surname then name", func() {
			employees, err := repo.GetAll(ownerA)
			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(HaveLen(2))
			Expect(employees[0].Surname).To(Equal("Hopper"))
			Expect(employees[1].Surname).To(Equal("Lovelace"))
		})

		It("should return an empty list for a tenant with no rows", func() {
			employees, err := repo.GetAll("33333333-3333-3333-3333-333333333333")
			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(BeEmpty())
		})
	})

	Describe("GetByID", func() {
		var emp *employee.Employee

		BeforeEach(func() {
			emp = seed(ownerA, "Ada", "Lovelace", "ada@example.com", "")
		})

		It("should fetch the row for its owner", func() {
			got, err := repo.GetByID(emp.ID, ownerA)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Email).To(Equal("ada@example.com"))
		})

		It("should report another tenant's row as not found", func() {
			_, err := repo.GetByID(emp.ID, ownerB)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusNotFound))
			Expect(appErr.Message).To(Equal("Employee not found"))
		})
	})

	Describe("Update", func() {
		var emp *employee.Employee

		BeforeEach(func() {
			emp = seed(ownerA, "Ada", "Lovelace", "ada@example.com", "")
		})

		It("should patch the row and return the fresh state", func() {
			got, err := repo.Update(emp.ID, ownerA, map[string]interface{}{"color": "#00ff00"})
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Color).To(Equal("#00ff00"))
			Expect(got.Name).To(Equal("Ada"))
		})

		It("should treat a cross-tenant update as not found", func() {
			_, err := repo.Update(emp.ID, ownerB, map[string]interface{}{"color": "#00ff00"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusNotFound))

			got, err := repo.GetByID(emp.ID, ownerA)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Color).To(Equal(""))
		})
	})

	Describe("Delete", func() {
		var emp *employee.Employee

		BeforeEach(func() {
			emp = seed(ownerA, "Ada", "Lovelace", "ada@example.com", "")
		})

		It("should delete the owner's row", func() {
			Expect(repo.Delete(emp.ID, ownerA)).To(Succeed())

			_, err := repo.GetByID(emp.ID, ownerA)
			Expect(err).To(HaveOccurred())
		})

		It("should treat a cross-tenant delete as not found and leave the row", func() {
			err := repo.Delete(emp.ID, ownerB)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusNotFound))

			_, err = repo.GetByID(emp.ID, ownerA)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("SearchByName", func() {
		BeforeEach(func() {
			seed(ownerA, "Ada", "Lovelace", "ada@example.com", "")
			seed(ownerA, "Grace", "Hopper", "grace@example.com", "")
			seed(ownerB, "Adalbert", "Stifter", "adalbert@example.com", "")
		})

		It("should match name or surname case-insensitively", func() {
			matches, err := repo.SearchByName(ownerA, "aDa")
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).To(HaveLen(1))
			Expect(matches[0].Name).To(Equal("Ada"))
		})

		It("should never leak another tenant's matches", func() {
			matches, err := repo.SearchByName(ownerA, "Stifter")
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).To(BeEmpty())
		})
	})

	Describe("UsedColors", func() {
		BeforeEach(func() {
			seed(ownerA, "Ada", "Lovelace", "ada@example.com", "#ff0000")
			seed(ownerA, "Grace", "Hopper", "grace@example.com", "#ff0000")
			seed(ownerA, "Edsger", "Dijkstra", "edsger@example.com", "")
			seed(ownerB, "Alan", "Turing", "alan@example.com", "#0000ff")
		})

		It("should return distinct non-empty colors for the tenant", func() {
			colors, err := repo.UsedColors(ownerA)
			Expect(err).NotTo(HaveOccurred())
			Expect(colors).To(ConsistOf("#ff0000"))
		})
	})

	Describe("EmailExists", func() {
		BeforeEach(func() {
			seed(ownerA, "Ada", "Lovelace", "ada@example.com", "")
		})

		It("should only see rows of the given tenant", func() {
			exists, err := repo.EmailExists(ownerA, "ada@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = repo.EmailExists(ownerB, "ada@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})
})
