package extraday_test

import (
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/teamtracker/teamtracker-api/internal"
	"github.com/teamtracker/teamtracker-api/internal/extraday"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestExtraDayService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ExtraDay Service Suite")
}

const testOwner = "11111111-1111-1111-1111-111111111111"

// MockRepository implements extraday.Repository for testing
type MockRepository struct {
	records     map[int64]*extraday.ExtraDay
	nextID      int64
	updateCalls int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{records: make(map[int64]*extraday.ExtraDay), nextID: 1}
}

func (m *MockRepository) Create(ed *extraday.ExtraDay) (*extraday.ExtraDayWithEmployee, error) {
	ed.ID = m.nextID
	m.nextID++
	m.records[ed.ID] = ed
	return &extraday.ExtraDayWithEmployee{
		ExtraDay:  *ed,
		Employees: &extraday.EmployeeName{Name: "Ada", Surname: "Lovelace"},
	}, nil
}

func (m *MockRepository) GetAll(userID string) ([]*extraday.ExtraDayWithEmployee, error) {
	var result []*extraday.ExtraDayWithEmployee
	for _, ed := range m.records {
		if ed.UserID == userID {
			result = append(result, &extraday.ExtraDayWithEmployee{ExtraDay: *ed})
		}
	}
	return result, nil
}

func (m *MockRepository) GetByEmployee(employeeID int64, userID string) ([]*extraday.ExtraDay, error) {
	var result []*extraday.ExtraDay
	for _, ed := range m.records {
		if ed.UserID == userID && ed.EmployeeID == employeeID {
			result = append(result, ed)
		}
	}
	return result, nil
}

func (m *MockRepository) Update(id int64, userID string, updates map[string]interface{}) (*extraday.ExtraDay, error) {
	m.updateCalls++
	ed, ok := m.records[id]
	if !ok || ed.UserID != userID {
		return nil, internal.ErrExtraDayNotFound
	}
	if r, ok := updates["reason"].(string); ok {
		ed.Reason = r
	}
	return ed, nil
}

func (m *MockRepository) Delete(id int64, userID string) error {
	ed, ok := m.records[id]
	if !ok || ed.UserID != userID {
		return internal.ErrExtraDayNotFound
	}
	delete(m.records, id)
	return nil
}

var _ = Describe("ExtraDay Service", func() {
	var (
		mockRepo *MockRepository
		service  *extraday.Service
	)

	hours := func(h float64) *float64 { return &h }

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = extraday.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		It("should record extra hours with the employee name attached", func() {
			created, err := service.Create(testOwner, extraday.CreateExtraDayDTO{
				EmployeeID: 7,
				ExtraHours: hours(3.5),
				Reason:     "release night",
				Date:       "2026-08-20",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ExtraHours).To(Equal(3.5))
			Expect(created.Employees.Name).To(Equal("Ada"))
		})

		It("should default a missing date to today", func() {
			created, err := service.Create(testOwner, extraday.CreateExtraDayDTO{
				EmployeeID: 7,
				ExtraHours: hours(2),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Date).To(Equal(time.Now().Format("2006-01-02")))
		})

		It("should accept zero extra hours when the field is present", func() {
			_, err := service.Create(testOwner, extraday.CreateExtraDayDTO{
				EmployeeID: 7,
				ExtraHours: hours(0),
			})
			Expect(err).NotTo(HaveOccurred())
		})

		Context("with missing fields", func() {
			It("should reject when employee_id is absent", func() {
				_, err := service.Create(testOwner, extraday.CreateExtraDayDTO{ExtraHours: hours(2)})
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
				Expect(appErr.Message).To(Equal("employee_id and days are required"))
			})

			It("should reject when extra_hours is absent", func() {
				_, err := service.Create(testOwner, extraday.CreateExtraDayDTO{EmployeeID: 7})
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
			})
		})
	})

	Describe("ListForEmployee", func() {
		BeforeEach(func() {
			for _, empID := range []int64{7, 7, 9} {
				_, err := service.Create(testOwner, extraday.CreateExtraDayDTO{
					EmployeeID: empID,
					ExtraHours: hours(1),
				})
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("should return only the given employee's records", func() {
			days, err := service.ListForEmployee(7, testOwner)
			Expect(err).NotTo(HaveOccurred())
			Expect(days).To(HaveLen(2))
		})
	})

	Describe("Update", func() {
		var created *extraday.ExtraDayWithEmployee

		BeforeEach(func() {
			var err error
			created, err = service.Create(testOwner, extraday.CreateExtraDayDTO{
				EmployeeID: 7,
				ExtraHours: hours(2),
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should apply an allowed patch", func() {
			ed, err := service.Update(created.ID, testOwner, map[string]interface{}{"reason": "audit"})
			Expect(err).NotTo(HaveOccurred())
			Expect(ed.Reason).To(Equal("audit"))
		})

		It("should reject an empty patch before the store", func() {
			_, err := service.Update(created.ID, testOwner, map[string]interface{}{})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Message).To(Equal("At least one field must be provided to update"))
			Expect(mockRepo.updateCalls).To(BeZero())
		})

		It("should report a cross-tenant update as not found", func() {
			_, err := service.Update(created.ID, "22222222-2222-2222-2222-222222222222",
				map[string]interface{}{"reason": "sneaky"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusNotFound))
			Expect(appErr.Message).To(Equal("Extra days record not found"))
		})
	})
})
