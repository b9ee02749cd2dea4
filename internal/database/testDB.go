package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	m "jobposter-backend/internal/model"
	"jobposter-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown TerminateFunc

// Exported test users & profiles
var (
	TestAdminUser    m.User
	TestUser1        m.User
	TestUser2        m.User
	TestUserCompany1 m.User
	TestUserCompany2 m.User
	TestCompany1     m.Company
	TestCompany2     m.Company

	// Plain password shared by every seeded account
	TestSeedPassword = "SeedPass123!"

	// Exported seeded jobs, TestJob1 and TestJob2 belong to TestCompany1
	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance seeded with fixtures, and any error encountered during setup.
func GetTestDB() (TerminateFunc, *DBinstanceStruct, error) {
	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	terminate, config, err := StartTestDB()
	if err != nil {
		return terminate, nil, err
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = terminate

	return terminate, db, nil
}

// seedTestData inserts two users, two companies, one admin and three jobs.
func seedTestData(db *DBinstanceStruct) error {
	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	userSpecs := []struct {
		email string
		role  m.Role
		dst   *m.User
	}{
		{"user1@example.com", m.RoleUser, &TestUser1},
		{"user2@example.com", m.RoleUser, &TestUser2},
		{"company1@example.com", m.RoleCompany, &TestUserCompany1},
		{"company2@example.com", m.RoleCompany, &TestUserCompany2},
		{"admin@example.com", m.RoleAdmin, &TestAdminUser},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, s := range userSpecs {
			u := m.User{
				ID:       uuid.New(),
				Email:    s.email,
				Password: hashedPwd,
				Role:     s.role,
			}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
			*s.dst = u
		}

		TestCompany1 = m.Company{UserID: TestUserCompany1.ID, Name: "Acme Co", Location: "Bangkok"}
		TestCompany2 = m.Company{UserID: TestUserCompany2.ID, Name: "Globex", Location: "Chiang Mai"}
		for _, c := range []*m.Company{&TestCompany1, &TestCompany2} {
			if err := tx.Omit("User").Create(c).Error; err != nil {
				return err
			}
		}

		now := time.Now().UTC().Truncate(time.Microsecond)
		jobs := []*m.Job{&TestJob1, &TestJob2, &TestJob3}
		*jobs[0] = m.Job{
			CompanyID: TestCompany1.UserID,
			EditableJobInfo: m.EditableJobInfo{
				Title:       "Backend Engineer",
				Description: "Work on Go services and database layers.",
				Location:    "Bangkok (Hybrid)",
			},
			PostTime: now.Add(-2 * time.Hour),
		}
		*jobs[1] = m.Job{
			CompanyID: TestCompany1.UserID,
			EditableJobInfo: m.EditableJobInfo{
				Title:       "Frontend Developer",
				Description: "Build the component library in React.",
				Location:    "Remote",
			},
			PostTime: now.Add(-1 * time.Hour),
		}
		*jobs[2] = m.Job{
			CompanyID: TestCompany2.UserID,
			EditableJobInfo: m.EditableJobInfo{
				Title:       "Data Analyst",
				Description: "Support data cleansing and dashboard creation.",
				Location:    "Chiang Mai (On-site)",
			},
			PostTime: now,
		}
		for _, j := range jobs {
			if err := tx.Omit("Company").Create(j).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
