package database

import (
	"HospitalMgmt/logger"
	"HospitalMgmt/models"
	"HospitalMgmt/utils"
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedUser struct {
	username, fullName, password, role, department string
}

var (
	seedDepartments = []models.Department{
		{Name: "Cardiology", Description: "Heart and vascular care"},
		{Name: "Pathology", Description: "Laboratory diagnostics"},
	}
	seedUsers = []seedUser{
		{"superadmin", "Super Admin", "admin123", models.RoleSuperAdmin, ""},
		{"dr_smith", "Dr. John Smith", "doctor123", models.RoleDoctor, "Cardiology"},
		{"dr_path", "Dr. Priya Path", "pathologist123", models.RolePathologist, "Pathology"},
	}
	seedOPDItems = map[string]string{
		"General Consultation":   "500.00",
		"Follow-up Consultation": "300.00",
	}
	seedPathologyTests = map[string]string{
		"CBC":   "650.00",
		"X-Ray": "800.00",
	}
)

// Seed loads the starter departments, accounts and catalog. Existing rows
// are matched by name and left untouched, so Seed can run repeatedly.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		departments := make(map[string]uint, len(seedDepartments))
		for _, d := range seedDepartments {
			dept := d
			if err := tx.Where(models.Department{Name: dept.Name}).FirstOrCreate(&dept).Error; err != nil {
				return errors.Wrapf(err, "failed to seed department %s", d.Name)
			}
			departments[dept.Name] = dept.ID
		}

		for _, u := range seedUsers {
			if err := seedAccount(tx, u, departments); err != nil {
				return err
			}
		}

		for name, price := range seedOPDItems {
			item := models.OPDItem{CatalogBase: catalogSeed(name, price)}
			if err := tx.Where("name = ?", name).FirstOrCreate(&item).Error; err != nil {
				return errors.Wrapf(err, "failed to seed OPD item %s", name)
			}
		}
		for name, price := range seedPathologyTests {
			test := models.PathologyTest{CatalogBase: catalogSeed(name, price)}
			if err := tx.Where("name = ?", name).FirstOrCreate(&test).Error; err != nil {
				return errors.Wrapf(err, "failed to seed pathology test %s", name)
			}
		}

		logger.Log.Info("Seed data loaded")
		return nil
	})
}

func seedAccount(tx *gorm.DB, u seedUser, departments map[string]uint) error {
	hashed, err := utils.HashPassword(u.password)
	if err != nil {
		return errors.Wrap(err, "failed to hash seed password")
	}
	user := models.User{Username: u.username, FullName: u.fullName, Password: hashed, Role: u.role}
	if err := tx.Where("username = ?", u.username).FirstOrCreate(&user).Error; err != nil {
		return errors.Wrapf(err, "failed to seed user %s", u.username)
	}
	if u.role == models.RoleSuperAdmin {
		return nil
	}

	profile := models.StaffProfile{UserID: user.ID}
	if id, ok := departments[u.department]; ok {
		profile.DepartmentID = &id
	}
	if err := tx.Omit("User", "Department").Where("user_id = ?", user.ID).FirstOrCreate(&profile).Error; err != nil {
		return errors.Wrapf(err, "failed to seed staff profile for %s", u.username)
	}
	return nil
}

func catalogSeed(name, price string) models.CatalogBase {
	return models.CatalogBase{Name: name, Price: decimal.RequireFromString(price), Active: true}
}
