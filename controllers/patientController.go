package controllers

import (
	"HospitalMgmt/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPatientRoutes registers the front desk routes: the dashboard,
// patients, departments and staff.
func SetupPatientRoutes(router *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler, patientHandler *handlers.PatientHandler, staffHandler *handlers.StaffHandler) {
	router.GET("/dashboard", dashboardHandler.GetDashboard)

	router.POST("/patients", patientHandler.CreatePatient)
	router.GET("/patients/:id", patientHandler.GetPatientByID)
	router.PUT("/patients/:id", patientHandler.UpdatePatient)
	router.GET("/patients", patientHandler.GetAllPatients)

	router.POST("/departments", staffHandler.CreateDepartment)
	router.GET("/departments/:id", staffHandler.GetDepartmentByID)
	router.GET("/departments", staffHandler.GetAllDepartments)

	router.POST("/staff", staffHandler.CreateStaff)
	router.GET("/staff/:id", staffHandler.GetStaffByID)
	router.GET("/staff", staffHandler.GetAllStaff)
}
