package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/controllers"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/services"
	"github.com/RachidAzrou/madrassa-sub000/internal/middleware"
)

// SetupRouter mounts every API route. Gating order is session, then
// role, then school scope.
func SetupRouter(router *gin.Engine, ctrl *controllers.Controllers, authService *services.AuthService) {
	api := router.Group("/api")

	// Public auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/login", ctrl.Auth.Login)
	}

	// Everything below requires a valid session.
	authenticated := api.Group("")
	authenticated.Use(middleware.SessionAuth(authService))

	authenticated.POST("/auth/logout", ctrl.Auth.Logout)
	authenticated.GET("/auth/me", ctrl.Auth.Me)

	// Tenant administration, superadmin only.
	schools := authenticated.Group("/schools")
	schools.Use(middleware.RequireRoles(models.RoleSuperadmin))
	{
		schools.POST("", ctrl.Schools.Create)
		schools.GET("", ctrl.Schools.List)
		schools.GET("/:id", ctrl.Schools.Get)
		schools.PUT("/:id", ctrl.Schools.Update)
		schools.DELETE("/:id", ctrl.Schools.Delete)
	}

	// Account management. The service layer narrows what an admin may
	// touch to their own school.
	users := authenticated.Group("/users")
	users.Use(middleware.RequireRoles(models.RoleSuperadmin, models.RoleAdmin))
	{
		users.POST("", ctrl.Users.Create)
		users.GET("", ctrl.Users.List)
		users.GET("/:id", ctrl.Users.Get)
		users.PUT("/:id", ctrl.Users.Update)
	}

	// School-scoped records. Reads are open to every role in the school;
	// writes are split between office staff and teaching staff below.
	scoped := authenticated.Group("")
	scoped.Use(middleware.RequireSchool())

	// Office staff: full record management.
	staff := scoped.Group("")
	staff.Use(middleware.RequireRoles(models.RoleSuperadmin, models.RoleAdmin, models.RoleSecretariat))

	// Teaching staff: attendance and grading.
	teaching := scoped.Group("")
	teaching.Use(middleware.RequireRoles(models.RoleSuperadmin, models.RoleAdmin, models.RoleSecretariat, models.RoleTeacher))

	{
		scoped.GET("/students", ctrl.Students.List)
		scoped.GET("/students/:id", ctrl.Students.Get)
		staff.POST("/students", ctrl.Students.Create)
		staff.PUT("/students/:id", ctrl.Students.Update)
		staff.DELETE("/students/:id", ctrl.Students.Delete)
	}

	{
		scoped.GET("/teachers", ctrl.Teachers.List)
		scoped.GET("/teachers/:id", ctrl.Teachers.Get)
		staff.POST("/teachers", ctrl.Teachers.Create)
		staff.PUT("/teachers/:id", ctrl.Teachers.Update)
		staff.DELETE("/teachers/:id", ctrl.Teachers.Delete)
	}

	{
		scoped.GET("/guardians", ctrl.Guardians.List)
		scoped.GET("/guardians/:id", ctrl.Guardians.Get)
		staff.POST("/guardians", ctrl.Guardians.Create)
		staff.PUT("/guardians/:id", ctrl.Guardians.Update)
		staff.DELETE("/guardians/:id", ctrl.Guardians.Delete)
	}

	{
		scoped.GET("/programs", ctrl.Programs.List)
		scoped.GET("/programs/:id", ctrl.Programs.Get)
		staff.POST("/programs", ctrl.Programs.Create)
		staff.PUT("/programs/:id", ctrl.Programs.Update)
		staff.DELETE("/programs/:id", ctrl.Programs.Delete)
	}

	{
		scoped.GET("/courses", ctrl.Courses.List)
		scoped.GET("/courses/:id", ctrl.Courses.Get)
		staff.POST("/courses", ctrl.Courses.Create)
		staff.PUT("/courses/:id", ctrl.Courses.Update)
		staff.DELETE("/courses/:id", ctrl.Courses.Delete)
	}

	{
		scoped.GET("/enrollments", ctrl.Enrollment.List)
		scoped.GET("/enrollments/:id", ctrl.Enrollment.Get)
		staff.POST("/enrollments", ctrl.Enrollment.Create)
		staff.PUT("/enrollments/:id", ctrl.Enrollment.Update)
		staff.DELETE("/enrollments/:id", ctrl.Enrollment.Delete)
	}

	{
		scoped.GET("/attendance", ctrl.Attendance.List)
		scoped.GET("/attendance/:id", ctrl.Attendance.Get)
		teaching.POST("/attendance", ctrl.Attendance.Record)
		teaching.DELETE("/attendance/:id", ctrl.Attendance.Delete)

		scoped.GET("/teacher-attendance", ctrl.Attendance.ListTeacher)
		staff.POST("/teacher-attendance", ctrl.Attendance.RecordTeacher)
		staff.DELETE("/teacher-attendance/:id", ctrl.Attendance.DeleteTeacher)
	}

	{
		scoped.GET("/grades", ctrl.Grades.List)
		scoped.GET("/grades/:id", ctrl.Grades.Get)
		teaching.POST("/grades", ctrl.Grades.Create)
		teaching.PUT("/grades/:id", ctrl.Grades.Update)
		teaching.DELETE("/grades/:id", ctrl.Grades.Delete)
	}

	{
		scoped.GET("/fees", ctrl.Billing.ListFees)
		scoped.GET("/fees/:id", ctrl.Billing.GetFee)
		staff.POST("/fees", ctrl.Billing.CreateFee)
		staff.PUT("/fees/:id", ctrl.Billing.UpdateFee)
		staff.DELETE("/fees/:id", ctrl.Billing.DeleteFee)

		scoped.GET("/invoices", ctrl.Billing.ListInvoices)
		scoped.GET("/invoices/:id", ctrl.Billing.GetInvoice)
		scoped.GET("/invoices/:id/payments", ctrl.Billing.ListPayments)
		staff.POST("/invoices", ctrl.Billing.CreateInvoice)
		staff.PUT("/invoices/:id", ctrl.Billing.UpdateInvoice)
		staff.POST("/invoices/mark-overdue", ctrl.Billing.MarkOverdue)

		staff.POST("/payments", ctrl.Billing.RecordPayment)
	}

	{
		scoped.GET("/rooms", ctrl.Schedule.ListRooms)
		scoped.GET("/rooms/:id", ctrl.Schedule.GetRoom)
		staff.POST("/rooms", ctrl.Schedule.CreateRoom)
		staff.PUT("/rooms/:id", ctrl.Schedule.UpdateRoom)
		staff.DELETE("/rooms/:id", ctrl.Schedule.DeleteRoom)

		scoped.GET("/events", ctrl.Schedule.ListEvents)
		scoped.GET("/events/:id", ctrl.Schedule.GetEvent)
		staff.POST("/events", ctrl.Schedule.CreateEvent)
		staff.PUT("/events/:id", ctrl.Schedule.UpdateEvent)
		staff.DELETE("/events/:id", ctrl.Schedule.DeleteEvent)
	}

	teaching.GET("/dashboard/stats", ctrl.Dashboard.Stats)

	// Health check endpoint (public)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
